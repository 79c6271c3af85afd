package xos_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/vncard-cli/pkg/xos"
)

func TestWriteFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "cards", "An.png")

	require.NoError(t, xos.WriteFile(path, []byte("png"), 0o644))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.True(t, xos.Exists(path))
}

func TestWriteFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vncard.yaml")
	require.NoError(t, xos.WriteFile(path, []byte("old"), 0o644))
	require.NoError(t, xos.WriteFile(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestWriteFileWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vncard.yaml")

	require.NoError(t, xos.WriteFileWithBackup(path, []byte("first"), 0o644))
	assert.False(t, xos.Exists(path+".bak"))

	require.NoError(t, xos.WriteFileWithBackup(path, []byte("second"), 0o644))
	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, "first", string(bak))
}

func TestExists(t *testing.T) {
	assert.False(t, xos.Exists(filepath.Join(t.TempDir(), "missing")))
	assert.True(t, xos.Exists(t.TempDir()))
}
