package config

import (
	"fmt"

	"github.com/nao1215/scamguard/internal/domain"
	"github.com/nao1215/scamguard/internal/rules"
)

// File represents the structure of the .scamguard configuration file.
type File struct {
	// Settings are the host settings. Missing keys keep their defaults.
	Settings Settings `yaml:"settings"`

	// Whitelist seeds the trusted-domain list.
	Whitelist []string `yaml:"whitelist,omitempty"`

	// Blacklist seeds the known-scam list.
	Blacklist []string `yaml:"blacklist,omitempty"`

	// Rules extends the built-in detection catalogue.
	Rules *rules.Extension `yaml:"rules,omitempty"`
}

// NewFile returns a File holding the default settings and no list entries.
func NewFile() *File {
	return &File{Settings: DefaultSettings()}
}

// Lists returns the configured list entries.
func (f *File) Lists() domain.Lists {
	return domain.Lists{
		Whitelist: f.Whitelist,
		Blacklist: f.Blacklist,
	}.Clone()
}

// RuleSet returns the built-in catalogue extended with the file's rules.
func (f *File) RuleSet() (*rules.RuleSet, error) {
	rs := rules.Default()
	rs.Extend(f.Rules)
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules in configuration file: %w", err)
	}
	return rs, nil
}
