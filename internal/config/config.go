package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed sample_config.json
var sampleConfig string

// Config encapsulates all configuration values for fileninja. The wire format
// is a JSON object; keys mirror the on-disk config file.
type Config struct {
	// WatchedFolders lists the source directories monitored for new files.
	WatchedFolders []string `json:"watched_folders"`
	// OrganizedFolder is the destination root the organizer moves files into.
	OrganizedFolder string `json:"organized_folder"`
	// AutoOrganize enables relocation of files as notifications arrive.
	AutoOrganize bool `json:"auto_organize"`
	// DelaySeconds is the debounce quiet period applied per path.
	DelaySeconds float64 `json:"delay_seconds"`
	// MaxFileSizeMB caps the size of files the organizer will touch.
	MaxFileSizeMB int64 `json:"max_file_size_mb"`
	// IgnorePatterns holds prefix-glob, suffix-glob, or substring patterns.
	IgnorePatterns []string `json:"ignore_patterns"`
	// RulesFile optionally points at a TOML classification-rules override.
	RulesFile string `json:"rules_file,omitempty"`

	DataDir   string `json:"data_dir"`
	LogDir    string `json:"log_dir"`
	APIBind   string `json:"api_bind"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/fileninja/config.json")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
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

	defaultPath, err := expandPath("~/.config/fileninja/config.json")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("fileninja.json")
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

// EnsureDirectories creates required directories for daemon operation.
// The organized folder is created on a best-effort basis so the daemon can run
// when external storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.OrganizedFolder) != "" {
		_ = os.MkdirAll(c.OrganizedFolder, 0o755)
	}
	return nil
}

// QuietPeriod returns the per-path debounce window as a duration.
func (c *Config) QuietPeriod() time.Duration {
	return time.Duration(c.DelaySeconds * float64(time.Second))
}

// MaxFileSizeBytes returns the size ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

// DatabasePath returns the location of the movement history database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "fileninja.db")
}

// LockPath returns the daemon single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "fileninja.lock")
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
