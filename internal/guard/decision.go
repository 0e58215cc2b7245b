package guard

import (
	"github.com/nao1215/scamguard/internal/config"
	"github.com/nao1215/scamguard/internal/model"
)

// Decision is what the host should do about a scanned page.
type Decision struct {
	// Notify asks the host to warn the user.
	Notify bool `json:"notify"`

	// Block asks the host to stop the navigation.
	Block bool `json:"block"`

	// RedirectTo is where a blocked navigation goes. Empty unless Block is set.
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Decide maps result to host actions under settings.
//
// A nil or invalid result yields the zero Decision. Notifications fire
// when enabled and the status reaches settings.NotifyThreshold (warning
// when unset). Blocking applies to danger only and needs AutoBlock.
func Decide(settings config.Settings, result *model.ScanResult) Decision {
	if !result.IsValid() {
		return Decision{}
	}

	threshold := settings.NotifyThreshold
	if !threshold.IsValid() {
		threshold = model.StatusWarning
	}

	var d Decision
	if settings.Notifications && result.Status != model.StatusSafe && result.Status.Rank() >= threshold.Rank() {
		d.Notify = true
	}
	if settings.AutoBlock && result.Status == model.StatusDanger {
		d.Block = true
		d.RedirectTo = settings.BlockRedirect().Target()
	}
	return d
}
