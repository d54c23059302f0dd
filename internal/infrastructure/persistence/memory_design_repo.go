package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
)

// InMemDesignRepository 記憶體實作的 Design Repository (開發與測試使用)
type InMemDesignRepository struct {
	mu      sync.RWMutex
	designs map[string]*design.Design
	byCode  map[string]string // code -> design ID
}

func NewInMemDesignRepository() *InMemDesignRepository {
	return &InMemDesignRepository{
		designs: make(map[string]*design.Design),
		byCode:  make(map[string]string),
	}
}

func (r *InMemDesignRepository) Save(_ context.Context, d *design.Design) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byCode[d.Code]; ok && owner != d.ID {
		return fmt.Errorf("%w: %s", design.ErrCodeConflict, d.Code)
	}
	if prev, ok := r.designs[d.ID]; ok && prev.Code != d.Code {
		delete(r.byCode, prev.Code)
	}

	r.designs[d.ID] = d.Clone()
	r.byCode[d.Code] = d.ID
	return nil
}

func (r *InMemDesignRepository) GetByID(_ context.Context, id string) (*design.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.designs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", design.ErrNotFound, id)
	}
	return d.Clone(), nil
}

func (r *InMemDesignRepository) GetByCode(_ context.Context, code string) (*design.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", design.ErrNotFound, code)
	}
	return r.designs[id].Clone(), nil
}

func (r *InMemDesignRepository) ListByEmail(_ context.Context, email string) ([]*design.Design, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []*design.Design
	for _, d := range r.designs {
		if d.Email == email {
			result = append(result, d.Clone())
		}
	}
	return result, nil
}

var _ design.Repository = (*InMemDesignRepository)(nil)
