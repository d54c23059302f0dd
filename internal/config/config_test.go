package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("addr", "", "")
	fs.String("storage", "", "")
	fs.Int("code-length", 0, "")
	fs.Bool("watch-catalog", false, "")
	fs.Int("count", 1, "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, 8, cfg.Code.Length)
	assert.Equal(t, 5, cfg.Code.MaxAttempts)
	assert.Equal(t, "auto", cfg.Code.Source)
	assert.Equal(t, "log", cfg.Mail.Driver)
	assert.True(t, cfg.Mail.TLS)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yamlCfg := `server:
  addr: ":9000"
  public_url: "https://plan.example"
storage:
  driver: sqlite
  dsn: planner.db
code:
  length: 10
mail:
  driver: smtp
  host: smtp.example.com
`
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlCfg), 0o644))

	t.Setenv("WARDROBE_CODE__LENGTH", "12")
	t.Setenv("WARDROBE_MAIL__PORT", "2525")
	t.Setenv("WARDROBE_SERVER__ADDR", ":9100")

	fs := newFlags()
	require.NoError(t, fs.Parse([]string{"--addr", ":9200", "--count", "3"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, ":9200", cfg.Server.Addr, "flag beats env and file")
	assert.Equal(t, 12, cfg.Code.Length, "env beats file")
	assert.Equal(t, 2525, cfg.Mail.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Driver, "file beats defaults")
	assert.Equal(t, "planner.db", cfg.Storage.DSN)
	assert.Equal(t, "https://plan.example", cfg.Server.PublicURL)
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
}

func TestLoad_UnchangedFlagsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	fs := newFlags()
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Code.Length)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("code:\n  source: math\n"), 0o644))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "math", cfg.Code.Source)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := Load("does-not-exist.yaml", nil)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Driver: "memory"},
			Mail:    MailConfig{Driver: "log"},
			Code:    CodeConfig{Length: 8, MaxAttempts: 5, Source: "auto"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }},
		{name: "smtp without host", mutate: func(c *Config) { c.Mail.Driver = "smtp" }},
		{name: "unknown mail driver", mutate: func(c *Config) { c.Mail.Driver = "pigeon" }},
		{name: "zero length", mutate: func(c *Config) { c.Code.Length = 0 }},
		{name: "length over limit", mutate: func(c *Config) { c.Code.Length = 65 }},
		{name: "zero attempts", mutate: func(c *Config) { c.Code.MaxAttempts = 0 }},
		{name: "unknown source", mutate: func(c *Config) { c.Code.Source = "dice" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}
