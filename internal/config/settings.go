package config

import (
	"fmt"
	"time"

	"github.com/nao1215/scamguard/internal/blocking"
	"github.com/nao1215/scamguard/internal/model"
)

// Default host settings.
const (
	// DefaultScanCooldown suppresses a rescan of the same URL within this window.
	DefaultScanCooldown = 10 * time.Second

	// DefaultRetention is how long a scan record stays visible in history.
	DefaultRetention = 24 * time.Hour

	// DefaultCleanupSchedule is the cron spec of the expired-record cleanup.
	DefaultCleanupSchedule = "@hourly"
)

// Settings controls what the host does with a scan result.
type Settings struct {
	// Notifications enables user notifications for risky pages.
	Notifications bool `yaml:"notifications"`

	// NotifyThreshold is the lowest status that triggers a notification.
	NotifyThreshold model.Status `yaml:"notify_threshold"`

	// AutoBlock redirects pages classified as danger.
	AutoBlock bool `yaml:"auto_block"`

	// AutoBlacklistOnReport adds a reported URL's domain to the blacklist.
	AutoBlacklistOnReport bool `yaml:"auto_blacklist_on_report"`

	// Redirect is the target of blocked navigations. Nil selects the
	// bundled warning page.
	Redirect *blocking.Redirect `yaml:"redirect,omitempty"`

	// ScanCooldown suppresses automatic rescans of unchanged pages.
	ScanCooldown time.Duration `yaml:"scan_cooldown"`

	// Retention is how long scan records are kept.
	Retention time.Duration `yaml:"retention"`

	// CleanupSchedule is a cron spec for removing expired records.
	CleanupSchedule string `yaml:"cleanup_schedule"`

	// RulesFile is where compiled blocking rules are written. Empty disables it.
	RulesFile string `yaml:"rules_file,omitempty"`
}

// DefaultSettings returns the settings used when the config file has none.
func DefaultSettings() Settings {
	return Settings{
		Notifications:         true,
		NotifyThreshold:       model.StatusWarning,
		AutoBlock:             true,
		AutoBlacklistOnReport: true,
		ScanCooldown:          DefaultScanCooldown,
		Retention:             DefaultRetention,
		CleanupSchedule:       DefaultCleanupSchedule,
	}
}

// Validate checks the settings.
func (s Settings) Validate() error {
	if s.NotifyThreshold != model.StatusWarning && s.NotifyThreshold != model.StatusDanger {
		return fmt.Errorf("%w: %q", ErrInvalidThreshold, s.NotifyThreshold)
	}
	if s.ScanCooldown < 0 {
		return ErrInvalidCooldown
	}
	if s.Retention <= 0 {
		return ErrInvalidRetention
	}
	if s.Redirect != nil {
		if err := s.Redirect.Validate(); err != nil {
			return fmt.Errorf("invalid redirect: %w", err)
		}
	}
	return nil
}

// BlockRedirect returns the configured redirect target or the default one.
func (s Settings) BlockRedirect() blocking.Redirect {
	if s.Redirect == nil {
		return blocking.DefaultRedirect()
	}
	return *s.Redirect
}
