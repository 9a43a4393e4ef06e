package utils

import (
	"os"
	"path/filepath"
	"strings"
)

const DefaultOutputSubdir = "zoomies"

// GetDefaultWorkDir returns the directory rescaled output is written under.
func GetDefaultWorkDir() string {
	wd, err := os.Getwd()
	if err != nil {
		// Fall back to a relative path so the output still lands somewhere predictable
		return "."
	}
	return wd
}

// SplitName breaks a file path into its directory, stem and extension.
// The extension keeps its leading dot.
func SplitName(path string) (dir, stem, ext string) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	return dir, stem, ext
}
