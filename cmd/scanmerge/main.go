// Command scanmerge merges the per-system raw files of one scan into a
// single temporally aligned, channel-ordered measurement container.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/optode-data/scanmerge/internal/catalog"
	"github.com/optode-data/scanmerge/internal/config"
	"github.com/optode-data/scanmerge/internal/scan"
	"github.com/optode-data/scanmerge/internal/scan/rawnir"
	"github.com/optode-data/scanmerge/internal/version"
)

var (
	dir         = flag.String("dir", "", "Root directory containing the per-system subfolders")
	file        = flag.String("file", "", "Raw filename of the scan to merge")
	systems     = flag.Int("systems", 0, "Acquisition system count 1..3 (0 = config default)")
	configPath  = flag.String("config", "", "Optional JSON tool configuration file")
	catalogPath = flag.String("catalog", "", "Optional SQLite merge-run catalog (overrides config)")
	outPath     = flag.String("out", "", "Optional output path for the merged container")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("scanmerge %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *dir == "" {
		log.Fatal("Root directory is required (-dir)")
	}
	if *file == "" {
		log.Fatal("Scan filename is required (-file)")
	}

	cfg := &config.ToolConfig{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	count := *systems
	if count == 0 {
		count = cfg.GetSystems()
	}

	res, err := scan.LoadScan(*file, *dir, scan.Options{
		Systems:          count,
		Loader:           rawnir.Loader{},
		DefaultExtension: cfg.GetRawExtension(),
	})
	if err != nil {
		log.Fatalf("Merge failed: %v", err)
	}

	rows, cols := res.Data.Dims()
	log.Printf("Merged scan %s: %d systems, %d measurements x %d frames (drift %d, aligned=%v)",
		res.Meta.ScanID, count, rows, cols, res.Drift, res.Aligned)
	log.Printf("Per-system diagnostics: %s", diagSummary(res.Meta.Diag))

	if *outPath != "" {
		if err := writeResult(*outPath, res); err != nil {
			log.Fatalf("Failed to write merged container: %v", err)
		}
		log.Printf("Wrote merged container to %s", *outPath)
	}

	dbPath := *catalogPath
	if dbPath == "" {
		dbPath = cfg.GetCatalogPath()
	}
	if dbPath != "" {
		if err := recordRun(dbPath, res, count); err != nil {
			log.Fatalf("Failed to record merge run: %v", err)
		}
	}
}

// writeResult re-encodes the merged result as a raw container.
func writeResult(path string, res *scan.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rec := &scan.SystemRecord{
		Data:       res.Data,
		Meta:       res.Meta,
		Timestamps: res.Timestamps,
	}
	return rawnir.Encode(f, rec)
}

// recordRun appends one row to the merge-run catalog.
func recordRun(path string, res *scan.Result, count int) error {
	store, err := catalog.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, cols := res.Data.Dims()
	run := &catalog.Run{
		ScanID:         res.Meta.ScanID,
		Systems:        count,
		MergedFrames:   cols,
		MergedChannels: rows,
		Drift:          res.Drift,
		Aligned:        res.Aligned,
		Diag:           res.Meta.Diag,
	}
	if err := store.RecordRun(run); err != nil {
		return err
	}
	log.Printf("Recorded merge run %s in %s", run.ID, path)
	return nil
}

// diagSummary renders the letter-keyed diagnostics in letter order.
func diagSummary(diag map[string]scan.SystemDiag) string {
	letters := make([]string, 0, len(diag))
	for letter := range diag {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	parts := make([]string, 0, len(letters))
	for _, letter := range letters {
		d := diag[letter]
		parts = append(parts, fmt.Sprintf("%s: %d ch, %d->%d frames, %d pulses",
			letter, d.Channels, d.RawFrames, d.CroppedFrames, d.SyncPulses))
	}
	return strings.Join(parts, "; ")
}
