package scan

// FrameDriftTolerance is the maximum frame-count discrepancy between
// systems absorbed by truncation. Anything larger is a fatal error.
const FrameDriftTolerance = 10

// reconcileFrames aligns the per-system frame counts to their common
// minimum L. Every record is truncated to its first L frames, an
// order-preserving tail drop, never a resample. Returns the measured
// drift, or a FrameDriftError when it exceeds the tolerance.
func reconcileFrames(records []*SystemRecord) (frames, drift int, err error) {
	min, max := records[0].Frames(), records[0].Frames()
	for _, rec := range records[1:] {
		n := rec.Frames()
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	drift = max - min
	if drift > FrameDriftTolerance {
		return 0, 0, &FrameDriftError{Min: min, Max: max, Tolerance: FrameDriftTolerance}
	}

	for _, rec := range records {
		if rec.Frames() == min {
			continue
		}
		rec.Data = cropColumns(rec.Data, 0, min-1)
		rec.Aux = cropColumns(rec.Aux, 0, min-1)
		if len(rec.Timestamps) > min {
			rec.Timestamps = rec.Timestamps[:min]
		}
	}
	return min, drift, nil
}
