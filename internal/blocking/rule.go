package blocking

import "strings"

// Rule values used for every compiled rule.
const (
	ActionRedirect        = "redirect"
	ResourceTypeMainFrame = "main_frame"
	DefaultPriority       = 1

	// DefaultExtensionPath is the warning page shown instead of a blocked site.
	DefaultExtensionPath = "/blocked.html"
)

// Rule matches the declarativeNetRequest rule schema.
type Rule struct {
	ID        int       `json:"id"`
	Priority  int       `json:"priority"`
	Action    Action    `json:"action"`
	Condition Condition `json:"condition"`
}

// Action describes what happens to a matched request.
type Action struct {
	Type     string    `json:"type"`
	Redirect *Redirect `json:"redirect,omitempty"`
}

// Redirect is where a blocked navigation is sent. Exactly one field is set.
type Redirect struct {
	URL           string `json:"url,omitempty" yaml:"url,omitempty"`
	ExtensionPath string `json:"extensionPath,omitempty" yaml:"extension_path,omitempty"`
}

// DefaultRedirect sends blocked navigations to the bundled warning page.
func DefaultRedirect() Redirect {
	return Redirect{ExtensionPath: DefaultExtensionPath}
}

// Validate checks that exactly one target is set.
func (r Redirect) Validate() error {
	hasURL := strings.TrimSpace(r.URL) != ""
	hasPath := strings.TrimSpace(r.ExtensionPath) != ""
	switch {
	case hasURL && hasPath:
		return ErrConflictingRedirectTarget
	case !hasURL && !hasPath:
		return ErrNoRedirectTarget
	default:
		return nil
	}
}

// Target returns whichever of URL and ExtensionPath is set.
func (r Redirect) Target() string {
	if u := strings.TrimSpace(r.URL); u != "" {
		return u
	}
	return strings.TrimSpace(r.ExtensionPath)
}

// Condition selects the requests a rule applies to.
type Condition struct {
	URLFilter     string   `json:"urlFilter"`
	ResourceTypes []string `json:"resourceTypes,omitempty"`
}

// IDs returns the identifiers of rs in order.
func IDs(rs []Rule) []int {
	ids := make([]int, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}
