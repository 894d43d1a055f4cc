package scan

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// mergeMeasurements concatenates the per-system channel data onto one
// measurement axis.
//
// A single system passes through unchanged. For two or three systems,
// each system's channel axis is factored into per-wavelength blocks
// using that system's own wavelength count, and the blocks are
// concatenated wavelength-major: for each wavelength index, each
// system's block of pair channels in letter order. This reproduces the
// reshape-to-[pairs, wavelengths, frames], concatenate, flatten-back
// semantics of the acquisition convention, and matches the canonical
// pairing only when every raw layout was already built in canonical
// order; otherwise the result must pass through alignPairs.
func mergeMeasurements(records []*SystemRecord, frames int) (*mat.Dense, error) {
	if len(records) == 1 {
		return records[0].Data, nil
	}

	nwl := records[0].Meta.Wavelengths
	total := 0
	for _, rec := range records {
		if rec.Meta.Wavelengths != nwl {
			return nil, fmt.Errorf("system %s wavelength count %d disagrees with system %s (%d)",
				rec.Letter, rec.Meta.Wavelengths, records[0].Letter, nwl)
		}
		if nwl < 1 || rec.Channels()%nwl != 0 {
			return nil, fmt.Errorf("system %s channel count %d not divisible by wavelength count %d",
				rec.Letter, rec.Channels(), nwl)
		}
		total += rec.Channels()
	}

	out := mat.NewDense(total, frames, nil)
	row := 0
	for w := 0; w < nwl; w++ {
		for _, rec := range records {
			block := rec.Channels() / nwl
			for p := 0; p < block; p++ {
				out.SetRow(row, rec.Data.RawRowView(w*block+p))
				row++
			}
		}
	}
	return out, nil
}
