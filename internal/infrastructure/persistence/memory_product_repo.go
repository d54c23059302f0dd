package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
)

// InMemProductRepository 記憶體實作的 Product Repository
type InMemProductRepository struct {
	mu       sync.RWMutex
	products map[string]*product.Product
	ordered  []*product.Product
}

// NewInMemProductRepository 建立型錄，products 為空時載入內建型錄
func NewInMemProductRepository(products ...product.Product) *InMemProductRepository {
	repo := &InMemProductRepository{}
	if len(products) == 0 {
		products = DefaultProducts()
	}
	repo.Replace(products)
	return repo
}

// Replace 以新的產品列表整批取代目前型錄
func (r *InMemProductRepository) Replace(products []product.Product) {
	m := make(map[string]*product.Product, len(products))
	ordered := make([]*product.Product, 0, len(products))
	for i := range products {
		p := products[i]
		m[p.ID] = &p
		ordered = append(ordered, &p)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = m
	r.ordered = ordered
}

func (r *InMemProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", product.ErrNotFound, id)
	}
	return p, nil
}

func (r *InMemProductRepository) ListAll(_ context.Context) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*product.Product, len(r.ordered))
	copy(result, r.ordered)
	return result, nil
}

func (r *InMemProductRepository) ListByCategory(_ context.Context, category product.Category) ([]*product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := []*product.Product{}
	for _, p := range r.ordered {
		if p.Category == category {
			result = append(result, p)
		}
	}
	return result, nil
}

var _ product.Repository = (*InMemProductRepository)(nil)
