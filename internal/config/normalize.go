package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePatterns()
	c.normalizeLimits()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	folders := make([]string, 0, len(c.WatchedFolders))
	seen := make(map[string]struct{}, len(c.WatchedFolders))
	for _, folder := range c.WatchedFolders {
		trimmed := strings.TrimSpace(folder)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("watched_folders: %w", err)
		}
		if _, ok := seen[expanded]; ok {
			continue
		}
		seen[expanded] = struct{}{}
		folders = append(folders, expanded)
	}
	c.WatchedFolders = folders

	if c.OrganizedFolder, err = expandPath(c.OrganizedFolder); err != nil {
		return fmt.Errorf("organized_folder: %w", err)
	}
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = defaultDataDir
	}
	if c.DataDir, err = expandPath(c.DataDir); err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = defaultLogDir
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	if strings.TrimSpace(c.RulesFile) != "" {
		if c.RulesFile, err = expandPath(c.RulesFile); err != nil {
			return fmt.Errorf("rules_file: %w", err)
		}
	}
	c.APIBind = strings.TrimSpace(c.APIBind)
	if c.APIBind == "" {
		c.APIBind = defaultAPIBind
	}
	return nil
}

func (c *Config) normalizePatterns() {
	patterns := make([]string, 0, len(c.IgnorePatterns))
	for _, pattern := range c.IgnorePatterns {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		patterns = append(patterns, trimmed)
	}
	c.IgnorePatterns = patterns
}

func (c *Config) normalizeLimits() {
	if c.DelaySeconds <= 0 {
		c.DelaySeconds = defaultDelaySeconds
	}
	if c.MaxFileSizeMB <= 0 {
		c.MaxFileSizeMB = defaultMaxFileSizeMB
	}
}

func (c *Config) normalizeLogging() {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "", "console":
		c.LogFormat = "console"
	case "json":
	default:
		c.LogFormat = "console"
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
}
