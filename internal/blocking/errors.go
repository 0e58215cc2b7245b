package blocking

import "errors"

var (
	// ErrNoRedirectTarget is returned when a Redirect has neither a URL nor an extension path.
	ErrNoRedirectTarget = errors.New("redirect target requires a URL or an extension path")

	// ErrConflictingRedirectTarget is returned when a Redirect sets both a URL and an extension path.
	ErrConflictingRedirectTarget = errors.New("redirect target must not set both a URL and an extension path")

	// ErrCorruptRuleSet is returned by a Sink whose stored rules cannot be
	// decoded. Updater.Replace overwrites such a rule set.
	ErrCorruptRuleSet = errors.New("installed rule set is corrupt")
)
