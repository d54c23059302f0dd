package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
)

// DefaultMaxAttempts 代碼衝突時最多重新產生的次數
const DefaultMaxAttempts = 5

// ErrCodeExhausted 多次重新產生後仍無法取得未使用的代碼
var ErrCodeExhausted = errors.New("could not allocate a unique design code")

// DesignUseCase 處理設計儲存與以代碼續接設計的業務流程
type DesignUseCase struct {
	repo        design.Repository
	codes       *designcode.Generator
	maxAttempts int
	now         func() time.Time
	logger      *zap.Logger
}

func NewDesignUseCase(repo design.Repository, codes *designcode.Generator, maxAttempts int, logger *zap.Logger) *DesignUseCase {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DesignUseCase{
		repo:        repo,
		codes:       codes,
		maxAttempts: maxAttempts,
		now:         time.Now,
		logger:      logger,
	}
}

// SaveDesign 儲存使用者的設計並確保其擁有唯一的設計代碼。
// 既有設計沿用原本的代碼；新設計可帶入前端產生的代碼，衝突時由伺服器重新產生。
func (uc *DesignUseCase) SaveDesign(ctx context.Context, d *design.Design) error {
	if err := d.Validate(); err != nil {
		return err
	}

	now := uc.now().Unix()
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	existing, err := uc.repo.GetByID(ctx, d.ID)
	switch {
	case err == nil:
		d.Code = existing.Code
		d.CreatedAt = existing.CreatedAt
	case errors.Is(err, design.ErrNotFound):
		d.CreatedAt = now
		if d.Code == "" {
			d.Code = uc.codes.New()
		} else {
			d.Code = designcode.Normalize(d.Code)
			if err := designcode.Validate(d.Code); err != nil {
				return err
			}
		}
	default:
		return err
	}
	d.UpdatedAt = now

	for attempt := 1; ; attempt++ {
		err := uc.repo.Save(ctx, d)
		if err == nil {
			uc.logger.Info("design saved",
				zap.String("id", d.ID),
				zap.String("code", d.Code),
				zap.Int("items", len(d.Items)),
			)
			return nil
		}
		if !errors.Is(err, design.ErrCodeConflict) {
			return err
		}
		if attempt >= uc.maxAttempts {
			return fmt.Errorf("%w after %d attempts", ErrCodeExhausted, attempt)
		}
		uc.logger.Warn("design code collision, regenerating",
			zap.String("code", d.Code),
			zap.Int("attempt", attempt),
		)
		d.Code = uc.codes.New()
	}
}

// ResumeDesign 以使用者輸入的代碼找回設計。
// 只檢查格式，長度不符目前設定的舊代碼交由 Repository 判斷是否存在。
func (uc *DesignUseCase) ResumeDesign(ctx context.Context, rawCode string) (*design.Design, error) {
	code := designcode.Normalize(rawCode)
	if err := designcode.Validate(code); err != nil {
		return nil, err
	}
	return uc.repo.GetByCode(ctx, code)
}

// GetDesign 獲取指定的設計
func (uc *DesignUseCase) GetDesign(ctx context.Context, id string) (*design.Design, error) {
	return uc.repo.GetByID(ctx, id)
}

// ListDesignsByEmail 列出同一位使用者儲存過的設計
func (uc *DesignUseCase) ListDesignsByEmail(ctx context.Context, email string) ([]*design.Design, error) {
	return uc.repo.ListByEmail(ctx, email)
}

// NewCode 產生指定總長度的設計代碼 (供無法安全產生亂數的前端使用)，長度小於 1 時只有前綴
func (uc *DesignUseCase) NewCode(length int) string {
	return uc.codes.Generate(length)
}

// CodeLength 回傳新設計預設的代碼長度
func (uc *DesignUseCase) CodeLength() int {
	return uc.codes.Length()
}
