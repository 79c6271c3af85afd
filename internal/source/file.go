package source

import (
	"bufio"
	"bytes"
	"context"
	"os"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// File reads a local word list, one full name per line.
type File struct {
	path string
}

// NewFile creates a word-list source.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Name() string { return string(KindFile) }

// Fetch returns every distinct name in the file in first-seen order,
// truncated to req.Count when positive.
func (f *File) Fetch(_ context.Context, req Request) ([]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, unavailable(f.Name(), "failed to read %s: %v", f.path, err)
	}
	return truncate(ParseList(data), req.Count), nil
}

// ParseList splits newline-delimited text into normalized, de-duplicated
// entries.
func ParseList(data []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, names.Normalize(sc.Text()))
	}
	return names.Dedupe(lines)
}
