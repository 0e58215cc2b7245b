package report

import (
	"time"

	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/model"
	"github.com/nao1215/scamguard/internal/pipeline"
)

// Entry is the report view of one scanned page.
type Entry struct {
	URL         string            `json:"url"`
	Domain      string            `json:"domain,omitempty"`
	Title       string            `json:"title,omitempty"`
	Excerpt     string            `json:"excerpt,omitempty"`
	Result      *model.ScanResult `json:"result,omitempty"`
	Decision    *guard.Decision   `json:"decision,omitempty"`
	SecretForms int               `json:"secret_forms,omitempty"`
	Source      model.ScanSource  `json:"source,omitempty"`
	ScannedAt   time.Time         `json:"scanned_at"`
	Error       string            `json:"error,omitempty"`
}

// Status returns the entry's status, or the empty Status when it was not scored.
func (e Entry) Status() model.Status {
	if e.Result == nil {
		return ""
	}
	return e.Result.Status
}

// EntryFromJob converts a finished pipeline job.
func EntryFromJob(job *pipeline.Job) Entry {
	e := Entry{URL: job.URL(), Source: job.Source}
	if job.Document != nil {
		e.Title = job.Document.Title
		e.Excerpt = job.Document.Excerpt
		e.SecretForms = len(job.Document.SecretForms())
	}
	if job.Record != nil {
		e.Domain = job.Record.Domain
		e.ScannedAt = job.Record.ScannedAt
		result := job.Record.Result.Clone()
		e.Result = &result
		decision := job.Decision
		e.Decision = &decision
	}
	if job.Err != nil {
		e.Error = job.Err.Error()
	}
	return e
}

// EntryFromRecord converts a stored scan record.
func EntryFromRecord(r *model.ScanRecord) Entry {
	result := r.Result.Clone()
	return Entry{
		URL:       r.URL,
		Domain:    r.Domain,
		Result:    &result,
		Source:    r.Source,
		ScannedAt: r.ScannedAt,
	}
}

// Summary groups entries with their status counts.
type Summary struct {
	GeneratedAt time.Time `json:"generated_at"`
	Entries     []Entry   `json:"entries"`
	Safe        int       `json:"safe"`
	Warning     int       `json:"warning"`
	Danger      int       `json:"danger"`
	Failed      int       `json:"failed"`
}

// NewSummary counts entries by status. Entries without a result count as failed.
func NewSummary(entries []Entry, generatedAt time.Time) *Summary {
	s := &Summary{GeneratedAt: generatedAt, Entries: entries}
	if s.Entries == nil {
		s.Entries = make([]Entry, 0)
	}
	for _, e := range s.Entries {
		switch e.Status() {
		case model.StatusSafe:
			s.Safe++
		case model.StatusWarning:
			s.Warning++
		case model.StatusDanger:
			s.Danger++
		default:
			s.Failed++
		}
	}
	return s
}

// Total returns the number of entries.
func (s *Summary) Total() int {
	return len(s.Entries)
}

// Worst returns the riskiest status among the entries, or the empty
// Status when nothing was scored.
func (s *Summary) Worst() model.Status {
	switch {
	case s.Danger > 0:
		return model.StatusDanger
	case s.Warning > 0:
		return model.StatusWarning
	case s.Safe > 0:
		return model.StatusSafe
	default:
		return ""
	}
}
