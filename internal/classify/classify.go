package classify

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"fileninja/internal/config"
)

// Classification is the result of classifying a single filename.
type Classification struct {
	Category string
	Tags     []string
}

// HasTag reports whether tag is present in the classification's tag set.
func (c Classification) HasTag(tag string) bool {
	for _, candidate := range c.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

var (
	yearPattern  = regexp.MustCompile(`(19|20)\d{2}`)
	monthPattern = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
)

// Classifier maps filenames to a category and a set of semantic tags. It holds
// no mutable state and is safe for concurrent use.
type Classifier struct {
	rules config.Rules
}

// New builds a Classifier from the supplied rule set.
func New(rules config.Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Classify inspects the filename portion of path and returns its category and
// sorted tag set. Only the name is consulted, never file contents.
func (c *Classifier) Classify(path string) Classification {
	name := filepath.Base(path)
	ext := Extension(name)

	category := c.rules.DefaultCategory
	if ext != "" {
		if mapped, ok := c.rules.Extensions[ext]; ok {
			category = mapped
		}
	}

	stem := name
	if ext != "" {
		stem = strings.TrimSuffix(name, filepath.Ext(name))
	}
	lowered := strings.ToLower(stem)

	tagSet := make(map[string]struct{})
	for tag, keywords := range c.rules.Tags {
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				tagSet[tag] = struct{}{}
				break
			}
		}
	}
	if ext != "" {
		tagSet["type_"+ext] = struct{}{}
	}
	if yearPattern.MatchString(stem) || monthPattern.MatchString(stem) {
		tagSet["dated"] = struct{}{}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	return Classification{Category: category, Tags: tags}
}

// PriorityTag returns the first configured priority tag present in the
// classification, in the order the rules list them. The second return value is
// false when no priority tag matched.
func (c *Classifier) PriorityTag(result Classification) (string, bool) {
	for _, tag := range c.rules.PriorityTags {
		if result.HasTag(tag) {
			return tag, true
		}
	}
	return "", false
}

// Categories returns every category label the rule set can produce, sorted,
// including the default catch-all.
func (c *Classifier) Categories() []string {
	set := map[string]struct{}{c.rules.DefaultCategory: {}}
	for _, category := range c.rules.Extensions {
		set[category] = struct{}{}
	}
	categories := make([]string, 0, len(set))
	for category := range set {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// Extension returns the lowercased extension of name without the leading dot,
// or the empty string when name has none.
func Extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if ext == "" || ext == "." {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
