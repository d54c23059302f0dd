package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
)

const reloadDebounce = 100 * time.Millisecond

type catalogFile struct {
	Products []product.Product `yaml:"products"`
}

// FileProductRepository 從 YAML 型錄檔載入產品，可選擇監看檔案變更後重新載入
type FileProductRepository struct {
	*InMemProductRepository
	path   string
	logger *zap.Logger
}

// NewFileProductRepository 讀取型錄檔並建立 Repository
func NewFileProductRepository(path string, logger *zap.Logger) (*FileProductRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	products, err := LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	r := &FileProductRepository{
		InMemProductRepository: &InMemProductRepository{},
		path:                   filepath.Clean(path),
		logger:                 logger,
	}
	r.Replace(products)
	return r, nil
}

// LoadCatalogFile 解析並驗證型錄檔
func LoadCatalogFile(path string) ([]product.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if len(cf.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}

	seen := make(map[string]bool, len(cf.Products))
	for i, p := range cf.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog %s: product %d has no id", path, i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog %s: duplicate product id %s", path, p.ID)
		}
		if !p.Category.Valid() {
			return nil, fmt.Errorf("catalog %s: product %s has unknown category %q", path, p.ID, p.Category)
		}
		seen[p.ID] = true
	}
	return cf.Products, nil
}

// Reload 重新讀取型錄檔；失敗時保留原本的型錄
func (r *FileProductRepository) Reload() error {
	products, err := LoadCatalogFile(r.path)
	if err != nil {
		return err
	}
	r.Replace(products)
	r.logger.Info("catalog reloaded", zap.String("path", r.path), zap.Int("products", len(products)))
	return nil
}

// Watch 監看型錄檔所在目錄，直到 ctx 結束
func (r *FileProductRepository) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// 編輯器常以取代檔案的方式存檔，因此監看目錄而非檔案本身
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				if err := r.Reload(); err != nil {
					r.logger.Error("catalog reload failed, keeping previous catalog", zap.Error(err))
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Error("catalog watcher error", zap.Error(err))
		}
	}
}
