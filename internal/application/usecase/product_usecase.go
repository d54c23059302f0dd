package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
)

// ErrUnknownCategory 查詢的產品類別不存在
var ErrUnknownCategory = errors.New("unknown product category")

// ProductUseCase 處理產品型錄瀏覽的業務流程
type ProductUseCase struct {
	repo product.Repository
}

func NewProductUseCase(repo product.Repository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetProduct 獲取指定的產品
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// ListProducts 列出產品，category 為空時列出全部
func (uc *ProductUseCase) ListProducts(ctx context.Context, category string) ([]*product.Product, error) {
	if category == "" {
		return uc.repo.ListAll(ctx)
	}
	c := product.Category(category)
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return uc.repo.ListByCategory(ctx, c)
}
