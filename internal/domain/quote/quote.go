package quote

import "context"

// Line 代表報價中的單一產品項目
type Line struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	SwatchID       string `json:"swatch_id,omitempty"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// Quote 是針對一份衣櫃設計的價格與尺寸評估
type Quote struct {
	DesignID   string `json:"design_id"`
	DesignCode string `json:"design_code"`
	Lines      []Line `json:"lines"`
	TotalCents int64  `json:"total_cents"`

	OccupiedWidthMM  int      `json:"occupied_width_mm"` // 框架佔用的總寬度
	AvailableWidthMM int      `json:"available_width_mm"`
	Fits             bool     `json:"fits"`
	Warnings         []string `json:"warnings"` // 未知產品、顏色或超出空間等提示
	CreatedAt        int64    `json:"created_at"`
}

// Engine 定義報價引擎的介面
type Engine interface {
	Quote(ctx context.Context, designCode string) (*Quote, error)
}
