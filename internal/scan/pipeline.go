package scan

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Loader decodes one subsystem's raw file into a SystemRecord. A load
// error is propagated unchanged through the pipeline.
type Loader interface {
	Load(path string) (*SystemRecord, error)
}

// Options control one merge invocation.
type Options struct {
	// Systems is the acquisition subsystem count, 1..3. Zero selects
	// DefaultSystems.
	Systems int

	// Loader decodes per-system raw files. Required.
	Loader Loader

	// DefaultExtension is assumed when the filename carries none.
	// Empty selects DefaultExtension (the primary raw format).
	DefaultExtension string
}

// LoadScan runs the merge pipeline for one scan: resolve the on-disk
// layout, load and sync-crop every system concurrently, reconcile frame
// counts, merge the channel data onto one measurement axis, align onto
// the canonical pairing when the merged layout disagrees with it, and
// aggregate metadata.
//
// Any per-system load error, an unresolved identifier, excess frame
// drift, or an empty alignment overlap aborts the whole call; no
// partial result is returned.
func LoadScan(filename, dir string, opts Options) (*Result, error) {
	systems := opts.Systems
	if systems == 0 {
		systems = DefaultSystems
	}
	if opts.Loader == nil {
		return nil, fmt.Errorf("no raw file loader configured")
	}

	layout, err := ResolveLayout(filename, dir, systems, opts.DefaultExtension)
	if err != nil {
		return nil, err
	}

	// Per-system load and crop legs touch disjoint files and records;
	// run them concurrently and join before reconciliation.
	records := make([]*SystemRecord, len(layout.Paths))
	errs := make([]error, len(layout.Paths))
	var wg sync.WaitGroup
	for i, sp := range layout.Paths {
		wg.Add(1)
		go func(i int, sp SystemPath) {
			defer wg.Done()
			rec, err := opts.Loader.Load(sp.Path)
			if err != nil {
				errs[i] = fmt.Errorf("system %s: %w", sp.Letter, err)
				return
			}
			rec.Letter = sp.Letter
			if err := rec.CropToSync(); err != nil {
				errs[i] = fmt.Errorf("system %s: %w", sp.Letter, err)
				return
			}
			records[i] = rec
		}(i, sp)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	frames, drift, err := reconcileFrames(records)
	if err != nil {
		return nil, err
	}

	data, err := mergeMeasurements(records, frames)
	if err != nil {
		return nil, err
	}

	// The baseline system's canonical pair count decides whether the
	// merged layout needs reconciling. This runs for every system
	// count, single and triple included.
	aligned := false
	baseline := records[0].Meta
	if rows, _ := data.Dims(); rows != baseline.PairCount() {
		data, err = alignPairs(data, &baseline)
		if err != nil {
			return nil, err
		}
		aligned = true
	}

	meta := aggregateInfo(records)
	if meta.ScanID == "" {
		meta.ScanID = layout.ScanID
	}

	res := &Result{
		Data:       data,
		Meta:       meta,
		Sync:       make(map[string]SyncEvents, len(records)),
		Aux:        make(map[string]*mat.Dense, len(records)),
		Timestamps: records[0].Timestamps,
		Drift:      drift,
		Aligned:    aligned,
	}
	for _, rec := range records {
		res.Sync[rec.Letter] = rec.Sync
		res.Aux[rec.Letter] = rec.Aux
	}
	return res, nil
}
