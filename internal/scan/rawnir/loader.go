package rawnir

import (
	"fmt"

	"github.com/optode-data/scanmerge/internal/fsutil"
	"github.com/optode-data/scanmerge/internal/scan"
)

// Loader decodes raw container files through a FileSystem. The zero
// value reads from the operating system.
type Loader struct {
	FS fsutil.FileSystem
}

// Load opens and decodes one raw container file.
func (l Loader) Load(path string) (*scan.SystemRecord, error) {
	fsys := l.FS
	if fsys == nil {
		fsys = fsutil.OSFileSystem{}
	}

	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open raw file: %w", err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return rec, nil
}
