package scan

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// alignPairs reconciles the merged channel ordering against the
// canonical source-detector pair list.
//
// Data whose row count already equals the canonical pair count is
// returned unchanged, which makes the operation an idempotent identity
// on aligned input. Otherwise the merged rows are assumed to enumerate
// the full Cartesian candidate pairing (detector-major outer, source
// minor inner, one block of Ns*Nd rows per wavelength) and the rows
// whose (source, detector) combination appears in the de-duplicated
// canonical list are kept in that fixed enumeration order. Rows absent
// from the canonical list are discarded. This is a filter, not a sort.
func alignPairs(data *mat.Dense, meta *Metadata) (*mat.Dense, error) {
	rows, cols := data.Dims()
	if rows == meta.PairCount() {
		return data, nil
	}

	ns := meta.Optodes.SourceCount()
	nd := meta.Optodes.DetectorCount()
	if ns == 0 || nd == 0 {
		return nil, fmt.Errorf("alignment requires optode positions (have %d sources, %d detectors)", ns, nd)
	}

	// InfoList: unique canonical (source, detector) rows, first-seen
	// order preserved. Only membership matters for the filter.
	canonical := meta.pairRows()
	present := make(map[PairRow]struct{}, len(canonical))
	for _, row := range canonical {
		present[row] = struct{}{}
	}

	// Dlist: the full Cartesian candidate pairing. Detector varies
	// slowest, source fastest. keep holds the candidate indices whose
	// combination the canonical list contains.
	block := ns * nd
	keep := make([]int, 0, block)
	for d := 1; d <= nd; d++ {
		for s := 1; s <= ns; s++ {
			if _, ok := present[PairRow{Source: s, Detector: d}]; ok {
				keep = append(keep, (d-1)*ns+(s-1))
			}
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: %d merged channels, %d canonical pairs", ErrNoPairOverlap, rows, len(canonical))
	}

	if rows%block != 0 {
		return nil, fmt.Errorf("cannot align %d merged channels onto %d source-detector candidates", rows, block)
	}
	blocks := rows / block

	out := mat.NewDense(len(keep)*blocks, cols, nil)
	for b := 0; b < blocks; b++ {
		for k, idx := range keep {
			out.SetRow(b*len(keep)+k, data.RawRowView(b*block+idx))
		}
	}
	return out, nil
}
