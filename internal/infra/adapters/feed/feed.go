// feed is the local file adapter for the feed document. It implements
// the ports.ForFeeding interface.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sa6mwa/mkfeed/internal/app/humanreadable"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

const lockSuffix = ".lock"

type forFeeding struct {
	path string
}

// feed.New returns a ports.ForFeeding for the feed document at path.
func New(path string) ports.ForFeeding {
	return &forFeeding{path: path}
}

func (f *forFeeding) Path() string {
	return f.path
}

func (f *forFeeding) Exists(_ context.Context) bool {
	fi, err := os.Stat(f.path)
	return err == nil && fi.Mode().IsRegular()
}

func (f *forFeeding) Read(_ context.Context) (string, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ports.ErrFeedNotFound, f.path)
		}
		return "", err
	}
	return string(b), nil
}

// Write overwrites the feed document, keeping its permissions.
func (f *forFeeding) Write(ctx context.Context, document string) error {
	l := logger.FromContext(ctx)
	perm := fs.FileMode(0o644)
	if fi, err := os.Stat(f.path); err == nil {
		perm = fi.Mode().Perm()
	}
	if err := os.WriteFile(f.path, []byte(document), perm); err != nil {
		return fmt.Errorf("unable to write %s: %w", f.path, err)
	}
	l.Debug("Wrote feed", "file", f.path, "size", len(document), "humanSize", humanreadable.IEC(int64(len(document))))
	return nil
}

// Lock takes a non-blocking flock on <feed>.lock. The lock file stays
// on disk after unlock, removing it would let two runs lock different
// inodes.
func (f *forFeeding) Lock(ctx context.Context) (func(), error) {
	l := logger.FromContext(ctx)
	lock := flock.New(f.path + lockSuffix)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lock.Path(), err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrFeedLocked, lock.Path())
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			l.Warn("Failed to release feed lock", "lock", lock.Path(), "error", err)
		}
	}, nil
}

func (f *forFeeding) Diff(_ context.Context, current, updated string) string {
	edits := myers.ComputeEdits(span.URIFromPath(f.path), current, updated)
	return fmt.Sprint(gotextdiff.ToUnified(f.path, f.path+" (updated)", current, edits))
}
