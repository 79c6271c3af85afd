package xos

import (
	"errors"
	"io/fs"
	"os"
)

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func backup(filename string, perm os.FileMode) error {
	original, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return WriteFile(filename+".bak", original, perm)
}
