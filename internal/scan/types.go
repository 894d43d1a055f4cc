package scan

import (
	"gonum.org/v1/gonum/mat"
)

// systemLetters enumerates the subsystem slots in merge order. The list
// is sized down to the configured system count at pipeline entry.
var systemLetters = [3]string{"a", "b", "c"}

// MaxSystems is the largest supported number of acquisition subsystems.
const MaxSystems = len(systemLetters)

// DefaultSystems is the system count used when the caller does not
// specify one.
const DefaultSystems = 2

// PairRow is one row of a table-shaped source-detector pair list as it
// may appear in a raw file. Table-shaped pair lists are normalized to
// the Pairs struct-of-arrays form during metadata aggregation; nothing
// downstream of that stage observes this type.
type PairRow struct {
	Source   int
	Detector int
}

// Pairs is the canonical ordered source-detector assignment list in
// struct-of-arrays form. Sources and Detectors are parallel; their
// shared length defines the canonical measurement count.
type Pairs struct {
	Sources   []int
	Detectors []int
}

// Len returns the canonical measurement count.
func (p Pairs) Len() int { return len(p.Sources) }

// Rows expands the struct-of-arrays form into row tuples.
func (p Pairs) Rows() []PairRow {
	rows := make([]PairRow, len(p.Sources))
	for i := range p.Sources {
		rows[i] = PairRow{Source: p.Sources[i], Detector: p.Detectors[i]}
	}
	return rows
}

// pairsFromRows builds the struct-of-arrays form from row tuples.
func pairsFromRows(rows []PairRow) Pairs {
	p := Pairs{
		Sources:   make([]int, len(rows)),
		Detectors: make([]int, len(rows)),
	}
	for i, row := range rows {
		p.Sources[i] = row.Source
		p.Detectors[i] = row.Detector
	}
	return p
}

// Optodes holds the 3-D source and detector positions for one system.
// The pipeline uses only the counts, to reconstruct the full Cartesian
// candidate pairing during alignment.
type Optodes struct {
	SourcePos   [][3]float64
	DetectorPos [][3]float64
}

// SourceCount returns Ns.
func (o Optodes) SourceCount() int { return len(o.SourcePos) }

// DetectorCount returns Nd.
func (o Optodes) DetectorCount() int { return len(o.DetectorPos) }

// SystemDiag captures per-system diagnostic counters collected during
// aggregation. Purely for traceability; it never influences the merged
// measurement ordering.
type SystemDiag struct {
	Wavelengths   int
	Channels      int
	RawFrames     int
	CroppedFrames int
	SyncPulses    int
}

// Metadata describes one system's recording, or the merged result after
// aggregation.
type Metadata struct {
	ScanID      string
	Wavelengths int // Nwl, internally uniform per system

	// Pairs holds the canonical pair list in struct-of-arrays form.
	// PairRows holds a table-shaped list as decoded from a raw file;
	// exactly one of the two is populated until aggregation normalizes
	// the metadata, after which only Pairs is set.
	Pairs    Pairs
	PairRows []PairRow

	Optodes Optodes

	// Diag is keyed by system letter on the merged metadata. Nil on
	// per-system metadata.
	Diag map[string]SystemDiag
}

// PairCount returns the canonical measurement count regardless of which
// pair representation is populated.
func (m *Metadata) PairCount() int {
	if m.Pairs.Len() > 0 {
		return m.Pairs.Len()
	}
	return len(m.PairRows)
}

// pairRows returns the pair list as row tuples regardless of which
// representation is populated.
func (m *Metadata) pairRows() []PairRow {
	if m.Pairs.Len() > 0 {
		return m.Pairs.Rows()
	}
	return m.PairRows
}

// SyncEvents holds the frame indices of detected synchronization pulses
// for one system, in recording order.
type SyncEvents struct {
	Frames []int
}

// SystemRecord owns everything decoded from one subsystem's raw file.
// Records are created once per load and mutated only by the sync crop
// and frame truncation steps of the owning pipeline invocation.
type SystemRecord struct {
	Letter string

	// Data is the channel-by-frame measurement array.
	Data *mat.Dense

	Meta Metadata
	Sync SyncEvents

	// Aux carries auxiliary channels (stimulus, accelerometer, ...) on
	// the same frame axis as Data. May be nil.
	Aux *mat.Dense

	// Timestamps holds one per-frame acquisition timestamp in seconds.
	Timestamps []float64

	// RawFrames is the frame count before sync cropping.
	RawFrames int
}

// Channels returns the channel (row) count of the record's data array.
func (r *SystemRecord) Channels() int {
	if r.Data == nil {
		return 0
	}
	rows, _ := r.Data.Dims()
	return rows
}

// Frames returns the current frame (column) count of the record's data
// array.
func (r *SystemRecord) Frames() int {
	if r.Data == nil {
		return 0
	}
	_, cols := r.Data.Dims()
	return cols
}

// diag summarizes the record for the aggregated metadata.
func (r *SystemRecord) diag() SystemDiag {
	return SystemDiag{
		Wavelengths:   r.Meta.Wavelengths,
		Channels:      r.Channels(),
		RawFrames:     r.RawFrames,
		CroppedFrames: r.Frames(),
		SyncPulses:    len(r.Sync.Frames),
	}
}

// Result is the output of one merge invocation.
type Result struct {
	// Data is the merged measurement-by-frame array. Its row count
	// equals the canonical pair count whenever alignment was required.
	Data *mat.Dense

	// Meta is the aggregated metadata: the baseline (first) system's
	// metadata with normalized pairs and letter-keyed diagnostics.
	Meta Metadata

	// Sync and Aux are keyed by system letter.
	Sync map[string]SyncEvents
	Aux  map[string]*mat.Dense

	// Timestamps is the baseline system's frame timestamp axis after
	// cropping and truncation; its length matches the Data columns.
	Timestamps []float64

	// Drift is the frame-count discrepancy absorbed by truncation.
	Drift int

	// Aligned reports whether the merged rows were reordered onto the
	// canonical pairing.
	Aligned bool
}
