package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir" validate:"required"`
}

// Decode contains payload interpretation and extraction settings.
type Decode struct {
	// MaxDepth bounds how many base64 layers may wrap a bit-string.
	MaxDepth     int    `toml:"max_depth" validate:"min=1,max=8"`
	TryHarder    bool   `toml:"try_harder"`
	CharacterSet string `toml:"character_set"`
}

// Output contains settings for persisted payloads.
type Output struct {
	FileMode           string `toml:"file_mode" validate:"required"`
	LockTimeoutSeconds int    `toml:"lock_timeout_seconds" validate:"min=0,max=300"`
}

// History contains configuration for the run history database.
type History struct {
	Enabled   bool `toml:"enabled"`
	Retention int  `toml:"retention" validate:"min=0"` // 0 keeps every run
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" validate:"oneof=console json"`
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for qrpayload.
//
// Configuration sections:
//   - Paths: state directory (history database, output locks)
//   - Decode: nesting bound and extraction hints
//   - Output: persisted file permissions and lock wait
//   - History: run history toggle and retention
//   - Logging: log format, level, and optional file
type Config struct {
	Paths   Paths   `toml:"paths"`
	Decode  Decode  `toml:"decode"`
	Output  Output  `toml:"output"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/qrpayload/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("qrpayload.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the log file's parent.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.LockDir()}
	if c.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.File))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the SQLite database path for run history.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockDir returns the directory holding per-output advisory lock files.
func (c *Config) LockDir() string {
	return filepath.Join(c.Paths.StateDir, "locks")
}

// OutputFileMode returns the permission bits applied to persisted payloads.
func (c *Config) OutputFileMode() os.FileMode {
	mode, err := parseFileMode(c.Output.FileMode)
	if err != nil {
		return defaultOutputFileMode
	}
	return mode
}

// LockTimeout returns how long a run waits for another run writing the same output.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.Output.LockTimeoutSeconds) * time.Second
}

func parseFileMode(value string) (os.FileMode, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "0o")
	parsed, err := strconv.ParseUint(trimmed, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("parse file mode %q: %w", value, err)
	}
	if parsed > 0o777 {
		return 0, fmt.Errorf("file mode %q exceeds 0777", value)
	}
	return os.FileMode(parsed), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
