package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/quote"
)

// SimpleEngine 是一個基礎的報價引擎實作
type SimpleEngine struct {
	designRepo  design.Repository
	productRepo product.Repository
	now         func() time.Time
}

func NewSimpleEngine(dr design.Repository, pr product.Repository) *SimpleEngine {
	return &SimpleEngine{
		designRepo:  dr,
		productRepo: pr,
		now:         time.Now,
	}
}

// Quote 依設計代碼計算價格與空間使用
func (e *SimpleEngine) Quote(ctx context.Context, designCode string) (*quote.Quote, error) {
	d, err := e.designRepo.GetByCode(ctx, designCode)
	if err != nil {
		return nil, err
	}
	return e.QuoteDesign(ctx, d)
}

// QuoteDesign 對已載入的設計計算報價
func (e *SimpleEngine) QuoteDesign(ctx context.Context, d *design.Design) (*quote.Quote, error) {
	q := &quote.Quote{
		DesignID:         d.ID,
		DesignCode:       d.Code,
		Lines:            []quote.Line{},
		Warnings:         []string{},
		AvailableWidthMM: d.Room.WidthMM,
		CreatedAt:        e.now().Unix(),
	}

	// 1. 同一產品與顏色合併為一行
	index := make(map[string]int)
	for _, item := range d.Items {
		p, err := e.productRepo.GetByID(ctx, item.ProductID)
		if errors.Is(err, product.ErrNotFound) {
			q.Warnings = append(q.Warnings, fmt.Sprintf("unknown product %q skipped", item.ProductID))
			continue
		}
		if err != nil {
			return nil, err
		}

		if item.SwatchID != "" {
			if _, ok := p.Swatch(item.SwatchID); !ok {
				q.Warnings = append(q.Warnings, fmt.Sprintf("swatch %q not offered for %s", item.SwatchID, p.ID))
			}
		}

		key := p.ID + "|" + item.SwatchID
		i, ok := index[key]
		if !ok {
			q.Lines = append(q.Lines, quote.Line{
				ProductID:      p.ID,
				Name:           p.Name,
				SwatchID:       item.SwatchID,
				UnitPriceCents: p.PriceCents,
			})
			i = len(q.Lines) - 1
			index[key] = i
		}
		q.Lines[i].Quantity += item.Quantity
		q.Lines[i].LineTotalCents += p.PriceCents * int64(item.Quantity)
		q.TotalCents += p.PriceCents * int64(item.Quantity)

		// 2. 只有框架會佔用牆面寬度
		if p.Category == product.Frame {
			q.OccupiedWidthMM += p.WidthMM * item.Quantity
		}
	}

	// 3. 檢查是否放得進空間
	q.Fits = q.OccupiedWidthMM <= q.AvailableWidthMM
	if !q.Fits {
		q.Warnings = append(q.Warnings, fmt.Sprintf("frames need %dmm but the room is %dmm wide", q.OccupiedWidthMM, q.AvailableWidthMM))
	}

	return q, nil
}
