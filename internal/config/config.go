package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the patcher configuration. Relative directories are resolved
// against ModRoot.
type Config struct {
	ModRoot    string `yaml:"mod_root" env:"MOD_ROOT"`
	BackupDir  string `yaml:"backup_dir" env:"BACKUP_DIR"`
	ItemsDir   string `yaml:"items_dir" env:"ITEMS_DIR"`
	ReportPath string `yaml:"report_path" env:"REPORT_PATH"`
	SourceName string `yaml:"source_name" env:"SOURCE_NAME"` // named in the report disclaimer
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL"`     // debug, info, warn or error
}

// EnvPrefix prefixes every environment override, e.g. MORESTACKS_MOD_ROOT.
const EnvPrefix = "MORESTACKS_"

// DefaultConfig returns a Config for running from inside the mod directory.
func DefaultConfig() *Config {
	return &Config{
		ModRoot:    ".",
		BackupDir:  "items_backup",
		ItemsDir:   "items",
		ReportPath: "More Stacks (2025).md",
		SourceName: "morestacks",
		LogLevel:   "info",
	}
}

// Load builds a Config from defaults, the YAML file at path, then environment
// overrides. A missing file is not an error; an empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Merge copies values from flags into cfg, but only for flags that were
// explicitly set on the command line. explicitFlags contains those flag names.
func Merge(cfg *Config, flags *Config, explicitFlags map[string]bool) {
	if explicitFlags["mod-root"] {
		cfg.ModRoot = flags.ModRoot
	}
	if explicitFlags["log-level"] {
		cfg.LogLevel = flags.LogLevel
	}
}

// Backup returns the resolved backup directory.
func (c *Config) Backup() string { return c.resolve(c.BackupDir) }

// Items returns the resolved working items directory.
func (c *Config) Items() string { return c.resolve(c.ItemsDir) }

// Report returns the resolved report path.
func (c *Config) Report() string { return c.resolve(c.ReportPath) }

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.ModRoot, p)
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Validate reports configuration that cannot work.
func (c *Config) Validate() error {
	if c.BackupDir == "" || c.ItemsDir == "" || c.ReportPath == "" {
		return errors.New("backup_dir, items_dir and report_path are required")
	}
	backup, err := filepath.Abs(c.Backup())
	if err != nil {
		return fmt.Errorf("resolve backup dir: %w", err)
	}
	items, err := filepath.Abs(c.Items())
	if err != nil {
		return fmt.Errorf("resolve items dir: %w", err)
	}
	// Restoring removes the items dir, so it must not hold the backup.
	if within(backup, items) || within(items, backup) {
		return fmt.Errorf("backup dir %s and items dir %s must not overlap", backup, items)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// within reports whether path is base or lies below it.
func within(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
