package model

// Status is the classification of a scanned page.
// The zero value is not a valid status; use ParseStatus for external input.
type Status string

// Status constants. Their string values are persisted and reported, so they
// must not change.
const (
	// StatusSafe means the score stayed below the warning threshold.
	StatusSafe Status = "safe"
	// StatusWarning means the page shows enough signals to warn the user.
	StatusWarning Status = "warning"
	// StatusDanger means the page should be treated as a scam.
	StatusDanger Status = "danger"
)

// statusUnknownStr is the string representation for unknown status values.
const statusUnknownStr = "unknown"

// String returns the status name, or "unknown" for invalid values.
func (s Status) String() string {
	if !s.IsValid() {
		return statusUnknownStr
	}
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusSafe, StatusWarning, StatusDanger:
		return true
	default:
		return false
	}
}

// Rank orders statuses by risk: safe < warning < danger.
// Invalid statuses rank below safe.
func (s Status) Rank() int {
	switch s {
	case StatusSafe:
		return 1
	case StatusWarning:
		return 2
	case StatusDanger:
		return 3
	default:
		return 0
	}
}

// ParseStatus converts a string to a Status.
// Unknown values return the empty Status.
func ParseStatus(s string) Status {
	switch s {
	case "safe":
		return StatusSafe
	case "warning", "warn":
		return StatusWarning
	case "danger", "dangerous":
		return StatusDanger
	default:
		return ""
	}
}

// ScanSource describes what triggered a scan.
type ScanSource string

// Scan source constants.
const (
	// SourcePageLoad is a scan triggered by a page navigation event.
	SourcePageLoad ScanSource = "page_load"
	// SourceManual is a scan requested explicitly by the user.
	SourceManual ScanSource = "manual"
	// SourceContentChange is a rescan triggered by changed page content.
	SourceContentChange ScanSource = "content_change"
	// SourceBatch is a scan performed as part of a CLI batch.
	SourceBatch ScanSource = "batch"
)
