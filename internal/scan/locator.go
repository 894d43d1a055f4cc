package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/optode-data/scanmerge/internal/security"
)

// DefaultExtension is the primary supported raw format, assumed when the
// input filename carries no extension.
const DefaultExtension = ".nirb"

// scanIDLength is the length of a valid date-code scan identifier.
const scanIDLength = 6

// SystemPath is one resolved per-system file location.
type SystemPath struct {
	Letter string
	Path   string
}

// Layout describes the resolved on-disk locations for one scan.
type Layout struct {
	// ScanID is the date-derived identifier naming the per-system
	// subfolders. Empty when unresolved (permitted only for a single
	// system).
	ScanID string

	// Paths lists one entry per system in letter order.
	Paths []SystemPath
}

// ResolveLayout derives the scan identifier and per-system file paths
// from a filename and root directory.
//
// The identifier is the first dash-delimited token of the filename root
// and is valid only when it is exactly six numeric characters. For more
// than one system an unresolved identifier is a contract violation and
// no path is constructed. Multi-system files live at
// {dir}/{id}{letter}/{root}{letter}{ext}; a single system loads
// {dir}/{root}{ext} directly.
func ResolveLayout(filename, dir string, systems int, defaultExt string) (*Layout, error) {
	if systems < 1 || systems > MaxSystems {
		return nil, fmt.Errorf("unsupported system count %d (want 1..%d)", systems, MaxSystems)
	}
	if dir == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if err := security.ValidateScanFilename(filename); err != nil {
		return nil, err
	}
	if defaultExt == "" {
		defaultExt = DefaultExtension
	}

	ext := filepath.Ext(filename)
	root := strings.TrimSuffix(filename, ext)
	if ext == "" {
		ext = defaultExt
	}
	if root == "" {
		return nil, fmt.Errorf("filename %q has no root", filename)
	}

	id := scanIDFromRoot(root)

	if systems == 1 {
		return &Layout{
			ScanID: id,
			Paths: []SystemPath{
				{Letter: systemLetters[0], Path: filepath.Join(dir, root+ext)},
			},
		}, nil
	}

	if id == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedScanID, filename)
	}

	paths := make([]SystemPath, 0, systems)
	for _, letter := range systemLetters[:systems] {
		paths = append(paths, SystemPath{
			Letter: letter,
			Path:   filepath.Join(dir, id+letter, root+letter+ext),
		})
	}
	return &Layout{ScanID: id, Paths: paths}, nil
}

// scanIDFromRoot extracts the date-code identifier from the first
// dash-delimited token of a filename root. Returns "" when the token is
// not a pure six-digit numeric code.
func scanIDFromRoot(root string) string {
	token, _, _ := strings.Cut(root, "-")
	if len(token) != scanIDLength {
		return ""
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return token
}
