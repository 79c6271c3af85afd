package source_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/vncard-cli/internal/source"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileNormalizesAndDedupes(t *testing.T) {
	path := writeFile(t, "students.txt", "Nguyễn  Văn An\n\n  Trần Thị\tLan \nNguyễn Văn An\nLê Minh Anh\n")

	got, err := source.NewFile(path).Fetch(context.Background(), source.Request{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Nguyễn Văn An", "Trần Thị Lan", "Lê Minh Anh"}, got)
}

func TestFileTruncates(t *testing.T) {
	path := writeFile(t, "students.txt", "A B\nC D\nE F\n")

	got, err := source.NewFile(path).Fetch(context.Background(), source.Request{Count: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"A B", "C D"}, got)
}

func TestFileMissingIsUnavailable(t *testing.T) {
	got, err := source.NewFile(filepath.Join(t.TempDir(), "missing.txt")).Fetch(context.Background(), source.Request{Count: 3})
	require.ErrorIs(t, err, source.ErrUnavailable)
	assert.Empty(t, got)
}
