package scan

import (
	"errors"
	"fmt"
)

// ErrUnresolvedScanID reports that no scan identifier could be derived
// from the input filename while more than one system was requested. The
// pipeline fails before constructing any per-system path.
var ErrUnresolvedScanID = errors.New("scan identifier could not be resolved from filename")

// ErrNoPairOverlap reports that none of the merged channel rows matched
// the canonical source-detector pair list during alignment.
var ErrNoPairOverlap = errors.New("merged channels have no overlap with canonical pairs")

// FrameDriftError reports that the per-system frame counts disagree by
// more than the reconciliation tolerance.
type FrameDriftError struct {
	Min       int
	Max       int
	Tolerance int
}

// Drift returns the measured frame-count discrepancy.
func (e *FrameDriftError) Drift() int { return e.Max - e.Min }

func (e *FrameDriftError) Error() string {
	return fmt.Sprintf("frame count drift %d exceeds tolerance %d (min %d frames, max %d frames)",
		e.Drift(), e.Tolerance, e.Min, e.Max)
}
