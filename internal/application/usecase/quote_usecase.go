package usecase

import (
	"context"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/quote"
)

// QuoteUseCase 處理設計報價的業務流程
type QuoteUseCase struct {
	engine quote.Engine
}

func NewQuoteUseCase(e quote.Engine) *QuoteUseCase {
	return &QuoteUseCase{engine: e}
}

// Quote 依設計代碼計算報價
func (uc *QuoteUseCase) Quote(ctx context.Context, rawCode string) (*quote.Quote, error) {
	code := designcode.Normalize(rawCode)
	if err := designcode.Validate(code); err != nil {
		return nil, err
	}
	return uc.engine.Quote(ctx, code)
}
