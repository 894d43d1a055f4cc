// Package version carries build identification injected at link time.
package version

var (
	// Version is the scanmerge release version.
	Version = "dev"
	// GitSHA is the git commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)
