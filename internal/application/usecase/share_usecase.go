package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
)

// ShareUseCase 以電子郵件分享設計代碼
type ShareUseCase struct {
	designs   *DesignUseCase
	mailer    share.Mailer
	publicURL string
	logger    *zap.Logger
}

func NewShareUseCase(designs *DesignUseCase, mailer share.Mailer, publicURL string, logger *zap.Logger) *ShareUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShareUseCase{
		designs:   designs,
		mailer:    mailer,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}
}

// ResumeURL 回傳開啟指定設計的連結
func (uc *ShareUseCase) ResumeURL(code string) string {
	return uc.publicURL + "/resume/" + code
}

// ShareDesign 確認設計存在後寄出分享郵件
func (uc *ShareUseCase) ShareDesign(ctx context.Context, rawCode string, req share.Request) error {
	d, err := uc.designs.ResumeDesign(ctx, rawCode)
	if err != nil {
		return err
	}

	msg, err := share.ComposeDesignMessage(d.Code, uc.ResumeURL(d.Code), req)
	if err != nil {
		return err
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.logger.Error("share mail failed", zap.String("code", d.Code), zap.Error(err))
		return err
	}
	uc.logger.Info("design shared", zap.String("code", d.Code))
	return nil
}
