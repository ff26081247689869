package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seabearDEV/hlwords/internal/fileutil"
	"github.com/seabearDEV/hlwords/internal/highlight"
	"github.com/seabearDEV/hlwords/internal/logging"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. HLWORDS_WHOLE_WORDS.
const EnvPrefix = "HLWORDS"

// Render modes for console output.
const (
	RenderAuto   = "auto"
	RenderAlways = "always"
	RenderNever  = "never"
)

// Config is the complete hlwords configuration. It is loaded once at
// startup and never written back.
type Config struct {
	// Words are highlighted in this order.
	Words []string `mapstructure:"words"`
	// Color is a mIRC color code ("04") or palette name ("red").
	Color string `mapstructure:"color"`
	// WholeWords restricts matches to ASCII word boundaries.
	WholeWords bool `mapstructure:"whole_words"`
	// Mode is "sequential" (default) or "combined".
	Mode string `mapstructure:"mode"`
	// Attrs uses the attribute-preserving host API when the host offers it.
	Attrs bool `mapstructure:"attrs"`

	Console ConsoleConfig `mapstructure:"console"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ConsoleConfig controls how the console host displays lines.
type ConsoleConfig struct {
	// Render is "auto" (when stdout is a terminal), "always" or "never".
	Render string `mapstructure:"render"`
	// Timestamps prefixes displayed lines with the event time.
	Timestamps bool `mapstructure:"timestamps"`
}

// LoggingConfig controls the addon log file.
type LoggingConfig struct {
	// Enabled writes a rotated log file in the data directory (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is "debug", "info", "warn" or "error" (default: "info")
	Level string `mapstructure:"level"`
	// File overrides the log file path.
	File string `mapstructure:"file"`
	// MaxSizeMB is the size at which the log is rotated (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated files kept (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
	// MaxAgeDays removes rotated files older than this (default: 30)
	MaxAgeDays int `mapstructure:"max_age_days"`
	// Compress gzips rotated files (default: true)
	Compress bool `mapstructure:"compress"`
}

// Default returns a Config with the addon's stock settings.
func Default() *Config {
	return &Config{
		Words:      []string{"example", "highlight"},
		Color:      "04",
		WholeWords: false,
		Mode:       string(highlight.ModeSequential),
		Attrs:      true,
		Console: ConsoleConfig{
			Render:     RenderAuto,
			Timestamps: false,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// SetDefaults registers default values with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("words", defaults.Words)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("whole_words", defaults.WholeWords)
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("attrs", defaults.Attrs)

	v.SetDefault("console.render", defaults.Console.Render)
	v.SetDefault("console.timestamps", defaults.Console.Timestamps)

	v.SetDefault("logging.enabled", defaults.Logging.Enabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	v.SetDefault("logging.compress", defaults.Logging.Compress)
}

// Init prepares v: defaults, config file location and environment
// overrides. A missing config file is not an error unless cfgFile names it
// explicitly.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(fileutil.GetDataDirectory())
		v.AddConfigPath(xdgConfigDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	// e.g. HLWORDS_LOGGING_LEVEL for logging.level
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func xdgConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hlwords")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hlwords"
	}
	return filepath.Join(home, ".config", "hlwords")
}

// Load reads the configuration from v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ColorCode returns the two digit code for Color. Call after Validate.
func (c *Config) ColorCode() string {
	if col, ok := highlight.LookupColor(c.Color); ok {
		return col.Code
	}
	return c.Color
}

// NewHighlighter builds the Highlighter described by the config.
func (c *Config) NewHighlighter() (*highlight.Highlighter, error) {
	return highlight.New(c.Words, c.ColorCode(), c.WholeWords, highlight.WithMode(highlight.Mode(c.Mode)))
}

// LogConfig translates the logging section for package logging. debug
// forces debug level with stderr output.
func (c *Config) LogConfig(debug bool) logging.Config {
	lc := logging.Config{
		Level:      c.Logging.Level,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
	if c.Logging.Enabled {
		lc.File = c.Logging.File
		if lc.File == "" {
			lc.File = fileutil.GetLogFilePath()
		}
	}
	if debug {
		lc.Level = logging.LevelDebug
		lc.Stderr = true
	}
	return lc
}

// StarterFile is the YAML written by "hlw config init".
func StarterFile() string {
	d := Default()
	var sb strings.Builder
	sb.WriteString("# hlwords configuration\n")
	sb.WriteString("# Words are matched case-insensitively, in this order.\n")
	sb.WriteString("words:\n")
	for _, w := range d.Words {
		sb.WriteString(fmt.Sprintf("  - %q\n", w))
	}
	sb.WriteString("# mIRC color code (00-15) or name, see \"hlw config palette\".\n")
	sb.WriteString(fmt.Sprintf("color: %q\n", d.Color))
	sb.WriteString(fmt.Sprintf("whole_words: %t\n", d.WholeWords))
	sb.WriteString("# sequential: each word is applied to the previous word's output.\n")
	sb.WriteString("# combined: all words in one pass.\n")
	sb.WriteString(fmt.Sprintf("mode: %s\n", d.Mode))
	sb.WriteString(fmt.Sprintf("attrs: %t\n", d.Attrs))
	sb.WriteString("console:\n")
	sb.WriteString(fmt.Sprintf("  render: %s\n", d.Console.Render))
	sb.WriteString(fmt.Sprintf("  timestamps: %t\n", d.Console.Timestamps))
	sb.WriteString("logging:\n")
	sb.WriteString(fmt.Sprintf("  enabled: %t\n", d.Logging.Enabled))
	sb.WriteString(fmt.Sprintf("  level: %s\n", d.Logging.Level))
	sb.WriteString(fmt.Sprintf("  max_size_mb: %d\n", d.Logging.MaxSizeMB))
	sb.WriteString(fmt.Sprintf("  max_backups: %d\n", d.Logging.MaxBackups))
	sb.WriteString(fmt.Sprintf("  max_age_days: %d\n", d.Logging.MaxAgeDays))
	sb.WriteString(fmt.Sprintf("  compress: %t\n", d.Logging.Compress))
	return sb.String()
}
