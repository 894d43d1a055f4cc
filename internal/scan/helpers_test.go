package scan

import (
	"gonum.org/v1/gonum/mat"
)

// seqDense builds a rows×cols matrix whose row i is filled with
// base+i, making row provenance visible after merging and filtering.
func seqDense(rows, cols int, base float64) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, base+float64(i))
		}
	}
	return m
}

// testRecord builds a minimal record with sequential data rows.
func testRecord(letter string, channels, frames, nwl int) *SystemRecord {
	return &SystemRecord{
		Letter:    letter,
		Data:      seqDense(channels, frames, 0),
		Meta:      Metadata{Wavelengths: nwl},
		RawFrames: frames,
	}
}

// rowValues returns the first column of every row, identifying which
// input rows ended up where.
func rowValues(m *mat.Dense) []float64 {
	rows, _ := m.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = m.At(i, 0)
	}
	return out
}
