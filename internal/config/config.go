// Package config 載入服務設定。
// 優先順序 (低到高)：預設值 < 設定檔 < 環境變數 < 明確指定的命令列參數
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
)

const (
	// FileName 預設設定檔名稱
	FileName = "wardrobe.yaml"
	// EnvPrefix 環境變數前綴，巢狀鍵以 "__" 分隔，例如 WARDROBE_MAIL__HOST
	EnvPrefix = "WARDROBE_"
)

type ServerConfig struct {
	Addr          string `koanf:"addr"`
	SessionSecret string `koanf:"session_secret"`
	PublicURL     string `koanf:"public_url"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"` // memory, sqlite, postgres
	DSN    string `koanf:"dsn"`
}

type CatalogConfig struct {
	File  string `koanf:"file"`
	Watch bool   `koanf:"watch"`
}

type CodeConfig struct {
	Length      int    `koanf:"length"`
	MaxAttempts int    `koanf:"max_attempts"`
	Source      string `koanf:"source"` // auto, crypto, math
}

type MailConfig struct {
	Driver   string `koanf:"driver"` // log, smtp
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
	TLS      bool   `koanf:"tls"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

// Config 服務的完整設定
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Storage StorageConfig `koanf:"storage"`
	Catalog CatalogConfig `koanf:"catalog"`
	Code    CodeConfig    `koanf:"code"`
	Mail    MailConfig    `koanf:"mail"`
	Log     LogConfig     `koanf:"log"`
}

// Defaults 回傳所有設定的預設值
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.addr":           ":8080",
		"server.session_secret": "change-me-in-production",
		"server.public_url":     "http://localhost:8080",
		"storage.driver":        "memory",
		"storage.dsn":           "wardrobe.db",
		"catalog.file":          "",
		"catalog.watch":         false,
		"code.length":           designcode.DefaultLength,
		"code.max_attempts":     5,
		"code.source":           designcode.ModeAuto,
		"mail.driver":           "log",
		"mail.port":             587,
		"mail.from":             "no-reply@wardrobe.local",
		"mail.tls":              true,
		"log.level":             "info",
		"log.development":       false,
	}
}

// flagKeys 命令列參數名稱對應的設定鍵
var flagKeys = map[string]string{
	"addr":          "server.addr",
	"public-url":    "server.public_url",
	"storage":       "storage.driver",
	"dsn":           "storage.dsn",
	"catalog":       "catalog.file",
	"watch-catalog": "catalog.watch",
	"code-length":   "code.length",
	"code-source":   "code.source",
	"mail-driver":   "mail.driver",
	"log-level":     "log.level",
	"log-dev":       "log.development",
}

// Load 依優先順序合併設定來源。cfgFile 為空時嘗試讀取目前目錄的 wardrobe.yaml。
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. 預設值
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. 設定檔
	if cfgFile == "" {
		if _, err := os.Stat(FileName); err == nil {
			cfgFile = FileName
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// 3. 環境變數：WARDROBE_MAIL__HOST -> mail.host
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. 只載入明確指定的參數
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 檢查設定值是否合法
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid storage.driver %q (memory|sqlite|postgres)", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for postgres")
	}

	switch c.Mail.Driver {
	case "log":
	case "smtp":
		if c.Mail.Host == "" {
			return fmt.Errorf("mail.host is required for the smtp driver")
		}
	default:
		return fmt.Errorf("invalid mail.driver %q (log|smtp)", c.Mail.Driver)
	}

	if c.Code.Length < 1 || c.Code.Length > designcode.MaxLength {
		return fmt.Errorf("code.length must be between 1 and %d, got %d", designcode.MaxLength, c.Code.Length)
	}
	if c.Code.MaxAttempts < 1 {
		return fmt.Errorf("code.max_attempts must be at least 1, got %d", c.Code.MaxAttempts)
	}
	switch c.Code.Source {
	case designcode.ModeAuto, designcode.ModeCrypto, designcode.ModeMath:
	default:
		return fmt.Errorf("invalid code.source %q (auto|crypto|math)", c.Code.Source)
	}
	return nil
}
