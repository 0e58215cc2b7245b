package guard

import "errors"

var (
	// ErrInvalidReport is returned when a submitted report fails validation.
	ErrInvalidReport = errors.New("invalid report")

	// ErrMonitorClosed is returned when an event is submitted after Close
	// or after Run has returned.
	ErrMonitorClosed = errors.New("monitor is closed")

	// ErrNilScanFunc is returned by NewMonitor without a scan function.
	ErrNilScanFunc = errors.New("monitor requires a scan function")
)
