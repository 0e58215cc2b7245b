package pipeline

import (
	"strings"

	"github.com/nao1215/scamguard/internal/crawler"
	"github.com/nao1215/scamguard/internal/guard"
	"github.com/nao1215/scamguard/internal/model"
)

// Job carries one scan through the pipeline.
type Job struct {
	// Target is the URL to scan.
	Target string

	// Source tells what requested the scan.
	Source model.ScanSource

	// Content is the page text. When set before execution, loading and
	// extraction are skipped and this text is scored as is.
	Content string

	// Page is the loaded page, if the pipeline loaded one.
	Page *crawler.Page

	// Document is the extracted text view of Page.
	Document *crawler.Document

	// Input is what the engine scored.
	Input model.ScanInput

	// Result is the engine's verdict.
	Result model.ScanResult

	// Record is the persisted form of Result.
	Record *model.ScanRecord

	// Decision is what the host should do about the page.
	Decision guard.Decision

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string

	// Err is the error that stopped the pipeline, if any.
	Err error
}

// NewJob creates a job for target.
func NewJob(target string, source model.ScanSource) *Job {
	return &Job{
		Target:         strings.TrimSpace(target),
		Source:         source,
		PerformedSteps: make([]string, 0),
	}
}

// URL returns the page's final URL after redirects when a page was loaded,
// otherwise Target. ScoreStep also scores Target when the two hosts differ.
func (j *Job) URL() string {
	if j.Page != nil {
		return j.Page.EffectiveURL()
	}
	return j.Target
}

// Scored reports whether the job reached the scoring step.
func (j *Job) Scored() bool {
	return j.Record != nil
}
