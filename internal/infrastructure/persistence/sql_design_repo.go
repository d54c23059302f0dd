package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
)

// Dialect 支援的 SQL 方言
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) driverName() (string, error) {
	switch d {
	case DialectSQLite:
		return "sqlite", nil
	case DialectPostgres:
		return "pgx", nil
	}
	return "", fmt.Errorf("unsupported dialect: %s", d)
}

func (d Dialect) migrationTarget() (gooseDialect, dir string, err error) {
	switch d {
	case DialectSQLite:
		return "sqlite3", "migrations/sqlite", nil
	case DialectPostgres:
		return "postgres", "migrations/postgres", nil
	}
	return "", "", fmt.Errorf("unsupported dialect: %s", d)
}

// rebind 將 ? 佔位符轉為 postgres 的 $n 形式
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// OpenDB 依方言開啟資料庫連線並確認可用
func OpenDB(dialect Dialect, dsn string) (*sql.DB, error) {
	driver, err := dialect.driverName()
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		if dsn == "" {
			dsn = ":memory:"
		}
		if !strings.Contains(dsn, "_pragma") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// 記憶體資料庫每條連線各自獨立，寫入也需序列化
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dialect, err)
	}
	return db, nil
}

// SQLDesignRepository 以 database/sql 實作的 Design Repository。
// 每份設計以 JSON 文件存放於 document 欄位，code 欄位具唯一性約束。
type SQLDesignRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLDesignRepository(db *sql.DB, dialect Dialect) *SQLDesignRepository {
	return &SQLDesignRepository{db: db, dialect: dialect}
}

func (r *SQLDesignRepository) Save(ctx context.Context, d *design.Design) error {
	doc, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode design: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.dialect.rebind(
		`INSERT INTO designs (id, code, email, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			code = excluded.code,
			email = excluded.email,
			document = excluded.document,
			updated_at = excluded.updated_at`),
		d.ID, d.Code, d.Email, string(doc), d.CreatedAt, d.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", design.ErrCodeConflict, d.Code)
	}
	if err != nil {
		return fmt.Errorf("failed to save design: %w", err)
	}
	return nil
}

func (r *SQLDesignRepository) GetByID(ctx context.Context, id string) (*design.Design, error) {
	return r.getOne(ctx, `SELECT document FROM designs WHERE id = ?`, id)
}

func (r *SQLDesignRepository) GetByCode(ctx context.Context, code string) (*design.Design, error) {
	return r.getOne(ctx, `SELECT document FROM designs WHERE code = ?`, code)
}

func (r *SQLDesignRepository) getOne(ctx context.Context, query, key string) (*design.Design, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx, r.dialect.rebind(query), key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", design.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get design: %w", err)
	}
	return decodeDesign(doc)
}

func (r *SQLDesignRepository) ListByEmail(ctx context.Context, email string) ([]*design.Design, error) {
	rows, err := r.db.QueryContext(ctx, r.dialect.rebind(
		`SELECT document FROM designs WHERE email = ? ORDER BY updated_at DESC`), email)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	defer rows.Close()

	var result []*design.Design
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan design: %w", err)
		}
		d, err := decodeDesign(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

func decodeDesign(doc []byte) (*design.Design, error) {
	var d design.Design
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, fmt.Errorf("failed to decode design: %w", err)
	}
	return &d, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqliteErr.Error(), "UNIQUE"))
	}
	return false
}

var _ design.Repository = (*SQLDesignRepository)(nil)
