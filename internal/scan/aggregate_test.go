package scan

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAggregateAdoptsBaseline(t *testing.T) {
	a := testRecord("a", 4, 20, 2)
	a.Meta.ScanID = "240115"
	a.Meta.Pairs = Pairs{Sources: []int{1, 2}, Detectors: []int{1, 1}}
	b := testRecord("b", 2, 20, 2)
	b.Meta.Pairs = Pairs{Sources: []int{3}, Detectors: []int{2}}

	meta := aggregateInfo([]*SystemRecord{a, b})

	if meta.ScanID != "240115" {
		t.Errorf("ScanID = %q, want baseline 240115", meta.ScanID)
	}
	if diff := cmp.Diff(a.Meta.Pairs, meta.Pairs); diff != "" {
		t.Errorf("merged pairs are not the baseline's (-want +got):\n%s", diff)
	}
	if meta.Wavelengths != 2 {
		t.Errorf("Wavelengths = %d, want 2", meta.Wavelengths)
	}
}

func TestAggregateLetterKeyedDiagnostics(t *testing.T) {
	a := testRecord("a", 4, 20, 2)
	a.Sync = SyncEvents{Frames: []int{0, 19}}
	b := testRecord("b", 6, 18, 2)
	b.RawFrames = 25

	meta := aggregateInfo([]*SystemRecord{a, b})

	if len(meta.Diag) != 2 {
		t.Fatalf("got %d diagnostic entries, want 2", len(meta.Diag))
	}
	da := meta.Diag["a"]
	if da.Channels != 4 || da.CroppedFrames != 20 || da.SyncPulses != 2 {
		t.Errorf("diag a = %+v", da)
	}
	db := meta.Diag["b"]
	if db.Channels != 6 || db.RawFrames != 25 || db.CroppedFrames != 18 {
		t.Errorf("diag b = %+v", db)
	}
}

func TestAggregateSingleSystem(t *testing.T) {
	a := testRecord("a", 3, 15, 1)
	meta := aggregateInfo([]*SystemRecord{a})

	if len(meta.Diag) != 1 {
		t.Fatalf("got %d diagnostic entries, want only the one system", len(meta.Diag))
	}
	if _, ok := meta.Diag["a"]; !ok {
		t.Error("missing diag entry for system a")
	}
}

func TestAggregateNormalizesTableShapedPairs(t *testing.T) {
	a := testRecord("a", 2, 10, 1)
	a.Meta.PairRows = []PairRow{
		{Source: 1, Detector: 1},
		{Source: 2, Detector: 1},
		{Source: 1, Detector: 2},
	}

	meta := aggregateInfo([]*SystemRecord{a})

	want := Pairs{Sources: []int{1, 2, 1}, Detectors: []int{1, 1, 2}}
	if diff := cmp.Diff(want, meta.Pairs); diff != "" {
		t.Errorf("normalized pairs mismatch (-want +got):\n%s", diff)
	}
	if meta.PairRows != nil {
		t.Error("table shape must not survive aggregation")
	}
}

func TestAggregateKeepsStructOfArraysPairs(t *testing.T) {
	a := testRecord("a", 2, 10, 1)
	a.Meta.Pairs = Pairs{Sources: []int{1, 2}, Detectors: []int{1, 1}}

	meta := aggregateInfo([]*SystemRecord{a})

	if diff := cmp.Diff(a.Meta.Pairs, meta.Pairs); diff != "" {
		t.Errorf("pairs changed during aggregation (-want +got):\n%s", diff)
	}
}
