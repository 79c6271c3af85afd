// Package history persists the names emitted by previous runs so later runs
// never repeat them. The log is plain UTF-8 text, one name per line, and is
// only ever appended to.
package history

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// ErrDegraded marks a history file that exists but could not be used. The run
// continues with an empty history.
var ErrDegraded = errors.New("history degraded")

// Store reads and appends the history log at a fixed path.
type Store struct {
	path string
}

// New creates a store for the log at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the log location.
func (s *Store) Path() string { return s.path }

// Load returns every name recorded so far. A missing file is an empty history.
// An unreadable or corrupt file also yields an empty set, together with an
// error wrapping ErrDegraded that the caller should log.
func (s *Store) Load() (names.Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return names.NewSet(), nil
		}
		return names.NewSet(), fmt.Errorf("%w: failed to read %s: %v", ErrDegraded, s.path, err)
	}
	if !utf8.Valid(data) {
		return names.NewSet(), fmt.Errorf("%w: %s is not valid UTF-8", ErrDegraded, s.path)
	}

	set := names.NewSet()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			set.Add(line)
		}
	}
	if err := sc.Err(); err != nil {
		return names.NewSet(), fmt.Errorf("%w: failed to scan %s: %v", ErrDegraded, s.path, err)
	}
	return set, nil
}

// Append adds names to the end of the log in the given order. The file is
// opened in append mode so concurrent runs never truncate each other.
func (s *Store) Append(items []string) error {
	if len(items) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(it)
		buf.WriteByte('\n')
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append history: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	return nil
}

// Count returns the number of distinct names recorded.
func (s *Store) Count() (int, error) {
	set, err := s.Load()
	return set.Len(), err
}

// Recent returns the last n recorded lines in log order, blank lines skipped.
// A non-positive n returns every line. A missing file yields nothing.
func (s *Store) Recent(n int) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
