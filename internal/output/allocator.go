// Package output turns names into unique file identifiers and stores the
// rendered images.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dosanma1/vncard-cli/pkg/xos"
)

// DefaultID replaces a name that sanitizes to nothing.
const DefaultID = "student"

const unsafeChars = "\\/:*?\"<>|\n\r\t"

// Sanitize strips characters that are not allowed in file names on common
// platforms and trims the result.
func Sanitize(name string) string {
	safe := strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return -1
		}
		return r
	}, name)
	safe = strings.TrimSpace(safe)
	if safe == "" {
		return DefaultID
	}
	return safe
}

// Allocator hands out file identifiers that are unique within one run,
// compared case-insensitively, and that do not collide with existing files.
type Allocator struct {
	used   map[string]struct{}
	exists func(id string) bool
}

// NewAllocator creates an allocator. exists may be nil when there is nothing
// on disk to avoid.
func NewAllocator(exists func(id string) bool) *Allocator {
	if exists == nil {
		exists = func(string) bool { return false }
	}
	return &Allocator{used: make(map[string]struct{}), exists: exists}
}

// Allocate returns Sanitize(name), or the first free base_2, base_3, ...
func (a *Allocator) Allocate(name string) string {
	base := Sanitize(name)
	candidate := base
	for suffix := 1; a.taken(candidate); {
		suffix++
		candidate = fmt.Sprintf("%s_%d", base, suffix)
	}
	a.used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (a *Allocator) taken(id string) bool {
	if _, ok := a.used[strings.ToLower(id)]; ok {
		return true
	}
	return a.exists(id)
}

// DirExists reports whether dir/<id><ext> exists.
func DirExists(dir, ext string) func(id string) bool {
	return func(id string) bool {
		return xos.Exists(filepath.Join(dir, id+ext))
	}
}
