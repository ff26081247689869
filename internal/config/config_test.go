package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seabearDEV/hlwords/internal/fileutil"
	"github.com/seabearDEV/hlwords/internal/logging"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the data directory and XDG config at fresh temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HLWORDS_DIR", dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	fileutil.ResetDataDirectory()
	t.Cleanup(fileutil.ResetDataDirectory)
	return dir
}

func load(t *testing.T, cfgFile string) (*Config, error) {
	t.Helper()
	v := viper.New()
	require.NoError(t, Init(v, cfgFile))
	return Load(v)
}

func TestDefaultsWithoutConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "04", cfg.ColorCode())
}

func TestConfigFileInDataDirectory(t *testing.T) {
	dir := isolate(t)
	content := `words:
  - cat
  - "c++"
color: lightblue
whole_words: true
mode: combined
console:
  render: never
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0600))

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "c++"}, cfg.Words)
	assert.Equal(t, "12", cfg.ColorCode())
	assert.True(t, cfg.WholeWords)
	assert.Equal(t, "combined", cfg.Mode)
	assert.Equal(t, RenderNever, cfg.Console.Render)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Logging.MaxBackups, "unset keys keep defaults")
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("HLWORDS_WORDS", "alpha,beta")
	t.Setenv("HLWORDS_COLOR", "9")
	t.Setenv("HLWORDS_LOGGING_LEVEL", "warn")

	cfg, err := load(t, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, cfg.Words)
	assert.Equal(t, "09", cfg.ColorCode())
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	isolate(t)
	v := viper.New()
	err := Init(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestInvalidConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words: [unterminated\n"), 0600))

	err := Init(viper.New(), path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantFields []string
	}{
		{"defaults are valid", func(*Config) {}, nil},
		{"empty word list is valid", func(c *Config) { c.Words = nil }, nil},
		{"blank word", func(c *Config) { c.Words = []string{"ok", "  "} }, []string{"words[1]"}},
		{"unknown color", func(c *Config) { c.Color = "16" }, []string{"color"}},
		{"color name", func(c *Config) { c.Color = "Orange" }, nil},
		{"unknown mode", func(c *Config) { c.Mode = "parallel" }, []string{"mode"}},
		{"unknown render", func(c *Config) { c.Console.Render = "sometimes" }, []string{"console.render"}},
		{"bad logging", func(c *Config) {
			c.Logging.Level = "trace"
			c.Logging.MaxSizeMB = -1
			c.Logging.MaxBackups = -1
			c.Logging.MaxAgeDays = -1
		}, []string{"logging.level", "logging.max_size_mb", "logging.max_backups", "logging.max_age_days"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			var fields []string
			for _, e := range cfg.Validate() {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestLoadReturnsValidationErrors(t *testing.T) {
	isolate(t)
	t.Setenv("HLWORDS_COLOR", "crimson")
	t.Setenv("HLWORDS_MODE", "bogus")

	_, err := load(t, "")
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.True(t, strings.HasPrefix(err.Error(), "2 validation errors:"))
}

func TestNewHighlighter(t *testing.T) {
	cfg := Default()
	cfg.Color = "red"

	h, err := cfg.NewHighlighter()
	require.NoError(t, err)
	assert.Equal(t, []string{"example", "highlight"}, h.Words())

	out, ok := h.Apply("this is an Example of highlighting")
	assert.True(t, ok)
	assert.Equal(t, "this is an \x0304Example\x0f of \x0304highlight\x0fing", out)
}

func TestLogConfig(t *testing.T) {
	dir := isolate(t)
	cfg := Default()

	lc := cfg.LogConfig(false)
	assert.Equal(t, filepath.Join(dir, "hlwords.log"), lc.File)
	assert.Equal(t, "info", lc.Level)
	assert.False(t, lc.Stderr)

	lc = cfg.LogConfig(true)
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.True(t, lc.Stderr)

	cfg.Logging.Enabled = false
	assert.Empty(t, cfg.LogConfig(false).File)
}

func TestStarterFileLoadsAsDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(StarterFile()), 0600))

	cfg, err := load(t, path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
