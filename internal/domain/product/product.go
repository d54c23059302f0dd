package product

import (
	"context"
	"errors"
)

// ErrNotFound 找不到對應的產品
var ErrNotFound = errors.New("product not found")

// Category 定義產品類別
type Category string

const (
	Frame     Category = "frame"
	Door      Category = "door"
	Drawer    Category = "drawer"
	Shelf     Category = "shelf"
	Hanging   Category = "hanging"
	Accessory Category = "accessory"
)

// Valid 回報類別是否為已知類別
func (c Category) Valid() bool {
	switch c {
	case Frame, Door, Drawer, Shelf, Hanging, Accessory:
		return true
	}
	return false
}

// Swatch 產品可選用的顏色或材質
type Swatch struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	HexColor   string `json:"hex_color" yaml:"hex_color"`
	TextureURL string `json:"texture_url,omitempty" yaml:"texture_url"`
}

// Product 代表型錄中的一個可放置單位
type Product struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Category   Category `json:"category" yaml:"category"`
	WidthMM    int      `json:"width_mm" yaml:"width_mm"`
	HeightMM   int      `json:"height_mm" yaml:"height_mm"`
	DepthMM    int      `json:"depth_mm" yaml:"depth_mm"`
	PriceCents int64    `json:"price_cents" yaml:"price_cents"`
	ModelURL   string   `json:"model_url" yaml:"model_url"` // 3D 引擎載入的 GLB 模型
	Swatches   []Swatch `json:"swatches" yaml:"swatches"`
}

// Swatch 依 ID 找出顏色選項
func (p *Product) Swatch(id string) (Swatch, bool) {
	for _, s := range p.Swatches {
		if s.ID == id {
			return s, true
		}
	}
	return Swatch{}, false
}

// Repository 定義 Product 的讀取介面
type Repository interface {
	GetByID(ctx context.Context, id string) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category Category) ([]*Product, error)
}
