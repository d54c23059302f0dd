package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/application/usecase"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/config"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/engine"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
	apphttp "github.com/Zenexus/wardrobe-planner-au-sub001/internal/handler/http"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/infrastructure/mail"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/infrastructure/persistence"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/logging"
)

// app 組合完成的服務元件
type app struct {
	handler http.Handler
	catalog *persistence.FileProductRepository // 未設定型錄檔時為 nil
	close   func() error
}

// buildApp 依設定組合各層元件 (組合根)
func buildApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	// 基礎設施層 (Infrastructure Layer)
	src, err := designcode.SelectSource(cfg.Code.Source, nil)
	if err != nil {
		return nil, err
	}
	logger.Info("design code source selected", zap.String("source", fmt.Sprintf("%T", src)))
	codes := designcode.NewGenerator(src, cfg.Code.Length)

	designRepo, closeDB, err := openDesignRepository(cfg.Storage)
	if err != nil {
		return nil, err
	}

	var productRepo product.Repository = persistence.NewInMemProductRepository()
	var catalog *persistence.FileProductRepository
	if cfg.Catalog.File != "" {
		catalog, err = persistence.NewFileProductRepository(cfg.Catalog.File, logger)
		if err != nil {
			_ = closeDB()
			return nil, err
		}
		productRepo = catalog
	}

	mailer, err := newMailer(cfg.Mail, logger)
	if err != nil {
		_ = closeDB()
		return nil, err
	}

	// 領域層 (Domain Layer) - 領域服務
	quoteEngine := engine.NewSimpleEngine(designRepo, productRepo)

	// 應用層 (Application Layer) - 用例 (Use Cases)
	designUC := usecase.NewDesignUseCase(designRepo, codes, cfg.Code.MaxAttempts, logger)
	productUC := usecase.NewProductUseCase(productRepo)
	quoteUC := usecase.NewQuoteUseCase(quoteEngine)
	shareUC := usecase.NewShareUseCase(designUC, mailer, cfg.Server.PublicURL, logger)

	// 介面層 (Interfaces / Presenters) - Handlers
	sessionStore := sessions.NewCookieStore([]byte(cfg.Server.SessionSecret))
	sessionStore.MaxAge(86400 * 30)
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	designHandler := apphttp.NewDesignHandler(designUC, quoteUC, shareUC, sessionStore, logger)
	productHandler := apphttp.NewProductHandler(productUC)

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinMiddleware(logger))
	apphttp.SetupRoutes(r, designHandler, productHandler)

	return &app{handler: r, catalog: catalog, close: closeDB}, nil
}

func openDesignRepository(cfg config.StorageConfig) (design.Repository, func() error, error) {
	if cfg.Driver == "memory" {
		return persistence.NewInMemDesignRepository(), func() error { return nil }, nil
	}

	db, dialect, err := openStorage(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := persistence.Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return persistence.NewSQLDesignRepository(db, dialect), db.Close, nil
}

func openStorage(cfg config.StorageConfig) (*sql.DB, persistence.Dialect, error) {
	var dialect persistence.Dialect
	switch cfg.Driver {
	case "sqlite":
		dialect = persistence.DialectSQLite
	case "postgres":
		dialect = persistence.DialectPostgres
	default:
		return nil, "", fmt.Errorf("storage driver %q has no database", cfg.Driver)
	}
	db, err := persistence.OpenDB(dialect, cfg.DSN)
	if err != nil {
		return nil, "", err
	}
	return db, dialect, nil
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) (share.Mailer, error) {
	if cfg.Driver == "smtp" {
		return mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			TLS:      cfg.TLS,
		}, logger)
	}
	return mail.NewLogMailer(logger), nil
}
