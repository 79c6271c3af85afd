//go:build !windows
// +build !windows

// Package xos provides atomic file writes. Rendered images and generated
// config files are written through a temp file and a rename so a crash never
// leaves a truncated file behind.
package xos

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFile writes data to the named file atomically, creating missing
// parent directories.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return renameio.WriteFile(filename, data, perm)
}

// WriteFileWithBackup writes data to a file, first copying any existing
// content to filename.bak.
func WriteFileWithBackup(filename string, data []byte, perm os.FileMode) error {
	if err := backup(filename, perm); err != nil {
		return err
	}
	return WriteFile(filename, data, perm)
}
