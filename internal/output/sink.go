package output

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dosanma1/vncard-cli/pkg/xos"
)

// Ext is the extension of every rendered image.
const Ext = ".png"

// Sink stores one rendered image under id and returns where it went.
type Sink interface {
	Put(ctx context.Context, id string, data []byte) (string, error)
}

// DirSink writes images into a local directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a sink rooted at dir. The directory is created on the
// first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the output directory.
func (d *DirSink) Dir() string { return d.dir }

// Path returns the file an id maps to.
func (d *DirSink) Path(id string) string {
	return filepath.Join(d.dir, id+Ext)
}

// Exists is the allocator predicate for this directory.
func (d *DirSink) Exists(id string) bool {
	return DirExists(d.dir, Ext)(id)
}

// Put writes data atomically to <dir>/<id>.png.
func (d *DirSink) Put(ctx context.Context, id string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := d.Path(id)
	if err := xos.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
