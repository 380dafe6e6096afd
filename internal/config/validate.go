package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OrganizedFolder) == "" {
		return errors.New("organized_folder must be set")
	}
	if c.DelaySeconds <= 0 {
		return errors.New("delay_seconds must be positive")
	}
	if c.MaxFileSizeMB <= 0 {
		return errors.New("max_file_size_mb must be positive")
	}
	for _, folder := range c.WatchedFolders {
		if folder == c.OrganizedFolder {
			return fmt.Errorf("watched folder %q must not be the organized folder", folder)
		}
	}
	return nil
}
