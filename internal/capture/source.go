package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// SourceKind selects where a photo comes from. Camera and gallery share
// one contract: both produce an opaque handle, a cancellation, or a
// failure.
type SourceKind string

const (
	SourceCamera  SourceKind = "camera"
	SourceGallery SourceKind = "gallery"
)

// Source acquires one photo for a slot. It returns an opaque handle the
// session stores and forwards without interpreting, ErrCancelled when the
// user backed out, or an error describing the acquisition failure.
type Source interface {
	Acquire(ctx context.Context, kind SourceKind, slotID string) (string, error)
}

// imageExtensions are probed in order by DirSource.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

// DirSource resolves slot photos from a directory, expecting one file per
// slot named <slotID>.<ext>. A missing file is treated as a cancellation:
// the user has no photo to offer for that slot.
type DirSource struct {
	Dir string
}

func (d DirSource) Acquire(ctx context.Context, kind SourceKind, slotID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, ext := range imageExtensions {
		path := filepath.Join(d.Dir, slotID+ext)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return "", fmt.Errorf("expected image file, got directory: %s", path)
		}
		return path, nil
	}
	return "", fmt.Errorf("%w: no image for slot %q in %s", ErrCancelled, slotID, d.Dir)
}
