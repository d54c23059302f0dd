package persistence

import (
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
)

var woodSwatches = []product.Swatch{
	{ID: "white", Name: "Arctic White", HexColor: "#F4F4F2"},
	{ID: "oak", Name: "Natural Oak", HexColor: "#C8A27A", TextureURL: "/textures/oak.jpg"},
	{ID: "walnut", Name: "Walnut", HexColor: "#5D4130", TextureURL: "/textures/walnut.jpg"},
}

// DefaultProducts 回傳內建的產品型錄 (未設定型錄檔案時使用)
func DefaultProducts() []product.Product {
	return []product.Product{
		{
			ID:         "frame-500",
			Name:       "Frame 500",
			Category:   product.Frame,
			WidthMM:    500,
			HeightMM:   2010,
			DepthMM:    580,
			PriceCents: 14900,
			ModelURL:   "/models/frame-500.glb",
			Swatches:   woodSwatches,
		},
		{
			ID:         "frame-1000",
			Name:       "Frame 1000",
			Category:   product.Frame,
			WidthMM:    1000,
			HeightMM:   2010,
			DepthMM:    580,
			PriceCents: 21900,
			ModelURL:   "/models/frame-1000.glb",
			Swatches:   woodSwatches,
		},
		{
			ID:         "door-hinged-500",
			Name:       "Hinged Door 500",
			Category:   product.Door,
			WidthMM:    497,
			HeightMM:   2004,
			DepthMM:    20,
			PriceCents: 8900,
			ModelURL:   "/models/door-hinged-500.glb",
			Swatches:   woodSwatches,
		},
		{
			ID:         "drawer-500",
			Name:       "Drawer 500",
			Category:   product.Drawer,
			WidthMM:    464,
			HeightMM:   200,
			DepthMM:    520,
			PriceCents: 4500,
			ModelURL:   "/models/drawer-500.glb",
			Swatches:   woodSwatches[:1],
		},
		{
			ID:         "shelf-1000",
			Name:       "Shelf 1000",
			Category:   product.Shelf,
			WidthMM:    964,
			HeightMM:   18,
			DepthMM:    560,
			PriceCents: 2500,
			ModelURL:   "/models/shelf-1000.glb",
		},
		{
			ID:         "rail-1000",
			Name:       "Hanging Rail 1000",
			Category:   product.Hanging,
			WidthMM:    964,
			HeightMM:   30,
			DepthMM:    30,
			PriceCents: 1200,
			ModelURL:   "/models/rail-1000.glb",
		},
		{
			ID:         "led-strip",
			Name:       "LED Strip",
			Category:   product.Accessory,
			WidthMM:    900,
			HeightMM:   10,
			DepthMM:    10,
			PriceCents: 3900,
		},
	}
}
