package model

import "time"

// Report is a user submission flagging a URL as a scam.
type Report struct {
	// ID is the database identifier. Zero for reports not yet stored.
	ID int64 `json:"id,omitempty"`

	// ReportedURL is the URL the user flagged.
	ReportedURL string `json:"reported_url"`

	// Reason is the free-form explanation supplied by the reporter.
	Reason string `json:"reason"`

	// ReporterEmail is the optional contact address of the reporter.
	ReporterEmail string `json:"reporter_email,omitempty"`

	// Domain is the hostname extracted from ReportedURL.
	Domain string `json:"domain"`

	// Blacklisted is true when the report caused Domain to be added to the blacklist.
	Blacklisted bool `json:"blacklisted"`

	// ReportedAt is when the report was received.
	ReportedAt time.Time `json:"reported_at"`
}

// ActivityKind classifies entries of the activity log.
type ActivityKind string

// Activity kinds.
const (
	// ActivityListAdd records a pattern added to a list.
	ActivityListAdd ActivityKind = "list_add"
	// ActivityListRemove records a pattern removed from a list.
	ActivityListRemove ActivityKind = "list_remove"
	// ActivityReport records a received scam report.
	ActivityReport ActivityKind = "report"
	// ActivityBlock records a navigation that was redirected.
	ActivityBlock ActivityKind = "block"
	// ActivityNotify records a warning shown to the user.
	ActivityNotify ActivityKind = "notify"
	// ActivityRulesCompiled records a blocking rule recompilation.
	ActivityRulesCompiled ActivityKind = "rules_compiled"
)

// Activity is one entry of the host activity log.
type Activity struct {
	ID      int64        `json:"id,omitempty"`
	Kind    ActivityKind `json:"kind"`
	Subject string       `json:"subject"`
	Detail  string       `json:"detail,omitempty"`
	At      time.Time    `json:"at"`
}
