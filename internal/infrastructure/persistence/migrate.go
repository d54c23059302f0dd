package persistence

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrations embed.FS

// Migrate 執行指定方言的所有待處理 migration
func Migrate(db *sql.DB, dialect Dialect) error {
	gooseDialect, dir, err := dialect.migrationTarget()
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// MigrationVersion 回傳目前資料庫的 migration 版本
func MigrationVersion(db *sql.DB, dialect Dialect) (int64, error) {
	gooseDialect, _, err := dialect.migrationTarget()
	if err != nil {
		return 0, err
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}
