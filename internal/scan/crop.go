package scan

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// CropToSync trims the record's data, aux channels, and timestamps to
// the inclusive span bracketed by its first and last synchronization
// pulse, and rebases the pulse indices onto the cropped frame axis.
//
// Records with fewer than two pulses are left uncropped; pulse-free
// bench captures are legitimate input.
func (r *SystemRecord) CropToSync() error {
	if len(r.Sync.Frames) < 2 {
		return nil
	}

	first := r.Sync.Frames[0]
	last := r.Sync.Frames[len(r.Sync.Frames)-1]
	frames := r.Frames()
	if first < 0 || last >= frames || first > last {
		return fmt.Errorf("sync span [%d, %d] out of range for %d frames", first, last, frames)
	}

	r.Data = cropColumns(r.Data, first, last)
	r.Aux = cropColumns(r.Aux, first, last)
	if len(r.Timestamps) >= last+1 {
		r.Timestamps = r.Timestamps[first : last+1]
	}

	rebased := make([]int, len(r.Sync.Frames))
	for i, f := range r.Sync.Frames {
		rebased[i] = f - first
	}
	r.Sync.Frames = rebased

	return nil
}

// cropColumns returns the [first, last] column span of m, or nil for a
// nil matrix.
func cropColumns(m *mat.Dense, first, last int) *mat.Dense {
	if m == nil {
		return nil
	}
	rows, _ := m.Dims()
	return m.Slice(0, rows, first, last+1).(*mat.Dense)
}
