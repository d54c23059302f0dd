package design

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNotFound 找不到對應的設計
	ErrNotFound = errors.New("design not found")
	// ErrCodeConflict 設計代碼已被其他設計使用
	ErrCodeConflict = errors.New("design code already in use")
	// ErrInvalidDesign 設計內容不合法
	ErrInvalidDesign = errors.New("invalid design")
)

// Room 衣櫃所在空間的尺寸 (毫米)
type Room struct {
	WidthMM  int `json:"width_mm"`
	HeightMM int `json:"height_mm"`
	DepthMM  int `json:"depth_mm"`
}

// PlacedItem 放置在設計中的單一產品
type PlacedItem struct {
	ProductID   string  `json:"product_id"`
	SwatchID    string  `json:"swatch_id,omitempty"`
	PositionX   float64 `json:"position_x"`
	PositionY   float64 `json:"position_y"`
	PositionZ   float64 `json:"position_z"`
	RotationDeg float64 `json:"rotation_deg"`
	Quantity    int     `json:"quantity"`
}

// Metadata 儲存前端需要還原的額外狀態，例如：
// "camera": {"x": 0, "y": 1.6, "z": 3}
type Metadata map[string]interface{}

// Design 代表使用者儲存的完整衣櫃設計
type Design struct {
	ID         string       `json:"id"`
	Code       string       `json:"code"` // 分享用的設計代碼，建立後不可變
	Name       string       `json:"name"`
	Email      string       `json:"email,omitempty"`
	Room       Room         `json:"room"`
	Items      []PlacedItem `json:"items"`
	Properties Metadata     `json:"properties,omitempty"`
	CreatedAt  int64        `json:"created_at"`
	UpdatedAt  int64        `json:"updated_at"`
}

// Clone 回傳深層複製，Items 與 Properties (含巢狀的 map 與 slice) 不與原設計共用
func (d *Design) Clone() *Design {
	cp := *d
	if d.Items != nil {
		cp.Items = slices.Clone(d.Items)
	}
	if d.Properties != nil {
		cp.Properties = cloneValue(map[string]interface{}(d.Properties)).(map[string]interface{})
	}
	return &cp
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = cloneValue(val)
		}
		return m
	case Metadata:
		return Metadata(cloneValue(map[string]interface{}(t)).(map[string]interface{}))
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = cloneValue(val)
		}
		return out
	default:
		return v
	}
}

// Validate 檢查空間尺寸與放置項目是否合法
func (d *Design) Validate() error {
	if d.Room.WidthMM <= 0 || d.Room.HeightMM <= 0 || d.Room.DepthMM <= 0 {
		return fmt.Errorf("%w: room dimensions must be positive", ErrInvalidDesign)
	}
	for i, item := range d.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: item %d has no product", ErrInvalidDesign, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidDesign, i)
		}
	}
	return nil
}

// Repository 定義 Design 的持久化介面
type Repository interface {
	Save(ctx context.Context, design *Design) error
	GetByID(ctx context.Context, id string) (*Design, error)
	GetByCode(ctx context.Context, code string) (*Design, error)
	ListByEmail(ctx context.Context, email string) ([]*Design, error)
}
