package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// DataDir holds the letters database.
	DataDir string `toml:"data_dir"`
	// StorageDir holds envelope images, letter PDFs, and the raw OCR
	// annotation spool. The store records paths into it and removes
	// files from it on cascading deletes, nothing more.
	StorageDir string `toml:"storage_dir"`
	LogDir     string `toml:"log_dir"`
}

// Logging contains log output configuration.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Roster points at the externally maintained person table.
type Roster struct {
	CSVPath string `toml:"csv_path"`
}

// Config is the root configuration for lettermgt.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Roster  Roster  `toml:"roster"`
}

// DatabasePath returns the letters SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "letters.db")
}

// OCRSpoolDir returns where raw OCR annotation blobs are written.
func (c *Config) OCRSpoolDir() string {
	return filepath.Join(c.Paths.StorageDir, "ocr")
}

// ResyncLockPath returns the cross-process lock file guarding bulk
// pseudonym reconciliation.
func (c *Config) ResyncLockPath() string {
	return filepath.Join(c.Paths.DataDir, "resync.lock")
}

// EnsureDirectories creates the configured directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.StorageDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultConfigPath returns the standard config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lettermgt", "config.toml"), nil
}

// Load reads configuration from path, falling back to the default config
// location and then to built-in defaults when no file exists. A .env file
// in the working directory and LETTERMGT_* variables override the result.
func Load(path string) (*Config, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	resolved := strings.TrimSpace(path)
	explicit := resolved != ""
	if !explicit {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		resolved = defaultPath
	}

	data, err := os.ReadFile(expandPath(resolved))
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// No config file: defaults plus environment.
	default:
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}

	applyEnvOverrides(&cfg)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		key    string
		target *string
	}{
		{"LETTERMGT_DATA_DIR", &cfg.Paths.DataDir},
		{"LETTERMGT_STORAGE_DIR", &cfg.Paths.StorageDir},
		{"LETTERMGT_LOG_DIR", &cfg.Paths.LogDir},
		{"LETTERMGT_LOG_LEVEL", &cfg.Logging.Level},
		{"LETTERMGT_LOG_FORMAT", &cfg.Logging.Format},
		{"LETTERMGT_ROSTER_CSV", &cfg.Roster.CSVPath},
	}
	for _, o := range overrides {
		if value := strings.TrimSpace(os.Getenv(o.key)); value != "" {
			*o.target = value
		}
	}
}

func (c *Config) normalize() {
	c.Paths.DataDir = expandPath(c.Paths.DataDir)
	c.Paths.StorageDir = expandPath(c.Paths.StorageDir)
	c.Paths.LogDir = expandPath(c.Paths.LogDir)
	c.Roster.CSVPath = expandPath(c.Roster.CSVPath)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// WriteSample writes the annotated sample config to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	path = expandPath(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
