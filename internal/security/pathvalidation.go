// Package security holds input validation helpers for caller-supplied
// names that end up in filesystem paths.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateScanFilename checks that a scan filename is a bare file name
// suitable for per-system path construction. The name is combined with
// subfolder names derived from it, so separators, traversal components,
// and absolute paths are all rejected before any path is built.
func ValidateScanFilename(name string) error {
	if name == "" {
		return fmt.Errorf("scan filename is empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("scan filename %q contains a path separator", name)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("scan filename %q is a relative path component", name)
	}
	if filepath.IsAbs(name) {
		return fmt.Errorf("scan filename %q is an absolute path", name)
	}
	return nil
}
