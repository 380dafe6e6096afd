package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Rules holds the classification rule set: extension to category mapping,
// keyword tag rules, and the ordered list of priority tags that override
// category-based routing.
type Rules struct {
	DefaultCategory string
	Extensions      map[string]string
	Tags            map[string][]string
	PriorityTags    []string
}

type rulesFile struct {
	DefaultCategory string              `toml:"default_category"`
	PriorityTags    []string            `toml:"priority_tags"`
	Extensions      map[string]string   `toml:"extensions"`
	Tags            map[string][]string `toml:"tags"`
}

// DefaultRules returns the built-in classification rule set.
func DefaultRules() Rules {
	return Rules{
		DefaultCategory: "Other",
		Extensions: map[string]string{
			"pdf":  "PDFs",
			"doc":  "Documents",
			"docx": "Documents",
			"txt":  "Documents",
			"rtf":  "Documents",
			"odt":  "Documents",
			"xls":  "Documents",
			"xlsx": "Documents",
			"csv":  "Documents",
			"ppt":  "Documents",
			"pptx": "Documents",
			"jpg":  "Images",
			"jpeg": "Images",
			"png":  "Images",
			"gif":  "Images",
			"bmp":  "Images",
			"svg":  "Images",
			"webp": "Images",
			"tiff": "Images",
		},
		Tags: map[string][]string{
			"finance":   {"invoice", "receipt", "bill", "payment", "tax", "bank", "statement"},
			"work":      {"project", "meeting", "presentation", "report", "proposal", "contract"},
			"personal":  {"family", "vacation", "holiday", "birthday", "photo", "travel"},
			"education": {"homework", "assignment", "exam", "notes", "lecture", "study"},
		},
		PriorityTags: []string{"finance", "work", "personal", "education"},
	}
}

// LoadRules returns the classification rules for cfg: the defaults, overlaid
// with the optional TOML rules file when one is configured.
func LoadRules(cfg *Config) (Rules, error) {
	rules := DefaultRules()
	if cfg == nil || strings.TrimSpace(cfg.RulesFile) == "" {
		return rules, nil
	}

	data, err := os.ReadFile(cfg.RulesFile)
	if err != nil {
		return Rules{}, fmt.Errorf("open rules file: %w", err)
	}

	var file rulesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return Rules{}, fmt.Errorf("parse rules file: %w", err)
	}

	if trimmed := strings.TrimSpace(file.DefaultCategory); trimmed != "" {
		rules.DefaultCategory = trimmed
	}
	for ext, category := range file.Extensions {
		key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if key == "" || strings.TrimSpace(category) == "" {
			continue
		}
		rules.Extensions[key] = strings.TrimSpace(category)
	}
	for tag, keywords := range file.Tags {
		name := strings.ToLower(strings.TrimSpace(tag))
		if name == "" {
			continue
		}
		cleaned := make([]string, 0, len(keywords))
		for _, keyword := range keywords {
			if trimmed := strings.ToLower(strings.TrimSpace(keyword)); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) == 0 {
			delete(rules.Tags, name)
			continue
		}
		rules.Tags[name] = cleaned
	}
	if len(file.PriorityTags) > 0 {
		priority := make([]string, 0, len(file.PriorityTags))
		for _, tag := range file.PriorityTags {
			if trimmed := strings.ToLower(strings.TrimSpace(tag)); trimmed != "" {
				priority = append(priority, trimmed)
			}
		}
		rules.PriorityTags = priority
	}

	if err := rules.validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func (r Rules) validate() error {
	for _, tag := range r.PriorityTags {
		if _, ok := r.Tags[tag]; !ok {
			return fmt.Errorf("priority tag %q has no keyword rule", tag)
		}
	}
	return nil
}

// TagNames returns the configured tag labels in sorted order.
func (r Rules) TagNames() []string {
	names := make([]string, 0, len(r.Tags))
	for name := range r.Tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
