package types

import (
	"time"

	"github.com/google/uuid"
)

// ScanRequest is the root directory chosen by the user
type ScanRequest struct {
	ID      uuid.UUID
	Root    string
	Started time.Time
}

// NewScanRequest stamps a root directory with a fresh scan ID
func NewScanRequest(root string) ScanRequest {
	return ScanRequest{
		ID:      uuid.New(),
		Root:    root,
		Started: time.Now(),
	}
}

// ScanReport is everything one scan produced. It is built by the worker
// and read by the UI loop only after the handoff.
type ScanReport struct {
	Request   ScanRequest
	Matches   []string
	Errors    []string
	Dirs      int // directories listed successfully
	Completed time.Time
}

// FileResult is the outcome of looking at a single directory entry
type FileResult struct {
	Path    string
	Matched bool
	Err     error
}

// Messages
type ScanCompleteMsg struct {
	Report ScanReport
}

type ErrMsg struct{ Err error }

func (e ErrMsg) Error() string { return e.Err.Error() }
