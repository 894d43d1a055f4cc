// Package config loads the JSON tool configuration for the scanmerge
// CLI. Fields omitted from the file keep their built-in defaults, so
// partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults applied for fields absent from the config file.
const (
	DefaultSystems      = 2
	DefaultRawExtension = ".nirb"
)

// ToolConfig is the root configuration for the scanmerge CLI.
type ToolConfig struct {
	// Systems is the acquisition subsystem count, 1..3.
	Systems *int `json:"systems,omitempty"`

	// RawExtension is the raw format extension assumed when the input
	// filename carries none.
	RawExtension *string `json:"raw_extension,omitempty"`

	// CatalogPath points at the SQLite merge-run catalog. Empty
	// disables catalog recording.
	CatalogPath *string `json:"catalog_path,omitempty"`
}

// Load reads a ToolConfig from a JSON file. The path must carry a
// .json extension and the file must stay under the size cap.
func Load(path string) (*ToolConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &ToolConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field ranges.
func (c *ToolConfig) Validate() error {
	if c.Systems != nil && (*c.Systems < 1 || *c.Systems > 3) {
		return fmt.Errorf("systems must be 1..3, got %d", *c.Systems)
	}
	if c.RawExtension != nil && !strings.HasPrefix(*c.RawExtension, ".") {
		return fmt.Errorf("raw_extension must start with a dot, got %q", *c.RawExtension)
	}
	return nil
}

// GetSystems returns the configured system count or the default.
func (c *ToolConfig) GetSystems() int {
	if c != nil && c.Systems != nil {
		return *c.Systems
	}
	return DefaultSystems
}

// GetRawExtension returns the configured raw extension or the default.
func (c *ToolConfig) GetRawExtension() string {
	if c != nil && c.RawExtension != nil {
		return *c.RawExtension
	}
	return DefaultRawExtension
}

// GetCatalogPath returns the configured catalog path or "".
func (c *ToolConfig) GetCatalogPath() string {
	if c != nil && c.CatalogPath != nil {
		return *c.CatalogPath
	}
	return ""
}
