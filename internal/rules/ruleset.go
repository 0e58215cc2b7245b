package rules

import (
	"fmt"
	"slices"
	"strings"
)

// KeywordCategory is a named group of fraud-indicator keywords.
type KeywordCategory struct {
	// Name identifies the category (e.g. "scholarship").
	Name string `yaml:"name" json:"name"`

	// Keywords are matched as lowercase substrings of the URL and content.
	Keywords []string `yaml:"keywords" json:"keywords"`

	// Weight is the per-match weight. Zero means the RuleSet's KeywordCategory weight.
	Weight int `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// RuleSet is the complete detection catalogue handed to the engine.
// Treat it as immutable once built; use Clone before modifying a shared one.
type RuleSet struct {
	Weights                   Weights           `yaml:"weights" json:"weights"`
	SuspiciousTLDs            []string          `yaml:"suspicious_tlds" json:"suspicious_tlds"`
	URLShorteners             []string          `yaml:"url_shorteners" json:"url_shorteners"`
	KeywordCategories         []KeywordCategory `yaml:"keyword_categories" json:"keyword_categories"`
	GenericSuspiciousPatterns []string          `yaml:"generic_patterns" json:"generic_patterns"`
}

// Extension is the part of a configuration file that extends the built-in
// catalogue. Tables are appended; weights replace the ones they set.
type Extension struct {
	Weights                   WeightOverrides   `yaml:"weights"`
	SuspiciousTLDs            []string          `yaml:"suspicious_tlds"`
	URLShorteners             []string          `yaml:"url_shorteners"`
	KeywordCategories         []KeywordCategory `yaml:"keyword_categories"`
	GenericSuspiciousPatterns []string          `yaml:"generic_patterns"`
}

// Default returns the built-in catalogue with the canonical weights.
func Default() *RuleSet {
	rs := &RuleSet{
		Weights:                   DefaultWeights(),
		SuspiciousTLDs:            slices.Clone(defaultSuspiciousTLDs),
		URLShorteners:             slices.Clone(defaultURLShorteners),
		KeywordCategories:         make([]KeywordCategory, len(defaultKeywordCategories)),
		GenericSuspiciousPatterns: slices.Clone(defaultGenericSuspiciousPatterns),
	}
	for i, c := range defaultKeywordCategories {
		rs.KeywordCategories[i] = c.clone()
	}
	return rs
}

// Clone returns a deep copy of rs.
func (rs *RuleSet) Clone() *RuleSet {
	out := &RuleSet{
		Weights:                   rs.Weights,
		SuspiciousTLDs:            slices.Clone(rs.SuspiciousTLDs),
		URLShorteners:             slices.Clone(rs.URLShorteners),
		KeywordCategories:         make([]KeywordCategory, len(rs.KeywordCategories)),
		GenericSuspiciousPatterns: slices.Clone(rs.GenericSuspiciousPatterns),
	}
	for i, c := range rs.KeywordCategories {
		out.KeywordCategories[i] = c.clone()
	}
	return out
}

// CategoryWeight returns the effective per-match weight of c.
func (rs *RuleSet) CategoryWeight(c KeywordCategory) int {
	if c.Weight != 0 {
		return c.Weight
	}
	return rs.Weights.KeywordCategory
}

// Category returns the category named name, if present.
func (rs *RuleSet) Category(name string) (KeywordCategory, bool) {
	for _, c := range rs.KeywordCategories {
		if c.Name == name {
			return c, true
		}
	}
	return KeywordCategory{}, false
}

// Extend appends the entries of other to rs. Categories with an existing name
// receive the new keywords; new categories are appended at the end. Weights
// set in other replace those of rs. Duplicate table entries are dropped.
func (rs *RuleSet) Extend(other *Extension) {
	if other == nil {
		return
	}
	rs.Weights = rs.Weights.Apply(other.Weights)
	rs.SuspiciousTLDs = appendUnique(rs.SuspiciousTLDs, normalizeTLDs(other.SuspiciousTLDs)...)
	rs.URLShorteners = appendUnique(rs.URLShorteners, lowerAll(other.URLShorteners)...)
	rs.GenericSuspiciousPatterns = appendUnique(rs.GenericSuspiciousPatterns, lowerAll(other.GenericSuspiciousPatterns)...)

	for _, oc := range other.KeywordCategories {
		idx := slices.IndexFunc(rs.KeywordCategories, func(c KeywordCategory) bool {
			return c.Name == oc.Name
		})
		if idx < 0 {
			c := oc.clone()
			c.Keywords = lowerAll(c.Keywords)
			rs.KeywordCategories = append(rs.KeywordCategories, c)
			continue
		}
		rs.KeywordCategories[idx].Keywords = appendUnique(rs.KeywordCategories[idx].Keywords, lowerAll(oc.Keywords)...)
		if oc.Weight != 0 {
			rs.KeywordCategories[idx].Weight = oc.Weight
		}
	}
}

// Validate checks the catalogue for negative weights and malformed categories.
func (rs *RuleSet) Validate() error {
	if err := rs.Weights.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(rs.KeywordCategories))
	for _, c := range rs.KeywordCategories {
		if strings.TrimSpace(c.Name) == "" {
			return ErrEmptyCategoryName
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, c.Name)
		}
		seen[c.Name] = struct{}{}
		if c.Weight < 0 {
			return fmt.Errorf("%w: category %s=%d", ErrNegativeWeight, c.Name, c.Weight)
		}
	}
	return nil
}

func (c KeywordCategory) clone() KeywordCategory {
	c.Keywords = slices.Clone(c.Keywords)
	return c
}

// normalizeTLDs lowercases entries and ensures the leading dot.
func normalizeTLDs(tlds []string) []string {
	out := make([]string, 0, len(tlds))
	for _, t := range tlds {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if !strings.HasPrefix(t, ".") {
			t = "." + t
		}
		out = append(out, t)
	}
	return out
}

func lowerAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}

func appendUnique(dst []string, xs ...string) []string {
	for _, x := range xs {
		if !slices.Contains(dst, x) {
			dst = append(dst, x)
		}
	}
	return dst
}
