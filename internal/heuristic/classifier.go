package heuristic

import "github.com/nao1215/scamguard/internal/model"

// Classification thresholds. Stored and reported scores were computed against
// these values, so they must not change.
const (
	// ThresholdDanger is the lowest score classified as danger.
	ThresholdDanger = 70
	// ThresholdWarning is the lowest score classified as warning.
	ThresholdWarning = 40
)

// Classify maps a score to a status.
func Classify(score int) model.Status {
	switch {
	case score >= ThresholdDanger:
		return model.StatusDanger
	case score >= ThresholdWarning:
		return model.StatusWarning
	default:
		return model.StatusSafe
	}
}
