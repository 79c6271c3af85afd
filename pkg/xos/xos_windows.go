//go:build windows
// +build windows

// Package xos provides atomic file writes. Windows has no renameio support,
// so the temp file is moved into place with os.Rename, which replaces the
// target through MoveFileEx.
package xos

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file through a temp file in the same
// directory, creating missing parent directories.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := writeTemp(dir, data, perm)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// writeTemp stores data in a fresh file under dir and returns its name. The
// file is removed again on any failure.
func writeTemp(dir string, data []byte, perm os.FileMode) (name string, err error) {
	f, err := os.CreateTemp(dir, ".vncard-*")
	if err != nil {
		return "", err
	}
	name = f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(name)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return "", err
	}
	if err = f.Sync(); err != nil {
		return "", err
	}
	if err = f.Chmod(perm); err != nil {
		return "", err
	}
	return name, f.Close()
}

// WriteFileWithBackup writes data to a file, first copying any existing
// content to filename.bak.
func WriteFileWithBackup(filename string, data []byte, perm os.FileMode) error {
	if err := backup(filename, perm); err != nil {
		return err
	}
	return WriteFile(filename, data, perm)
}
