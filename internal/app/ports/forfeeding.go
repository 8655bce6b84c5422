package ports

import (
	"context"
	"errors"
)

var (
	// ErrFeedNotFound is returned by ForFeeding adapters when the feed
	// document does not exist.
	ErrFeedNotFound error = errors.New("feed document not found")
	// ErrFeedLocked is returned by Lock if another run holds the feed.
	ErrFeedLocked error = errors.New("feed document is locked by another run")
)

// ForFeeding reads and writes the feed document as text.
type ForFeeding interface {
	Path() string
	Exists(ctx context.Context) bool
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, document string) error
	// Lock takes an exclusive advisory lock on the feed. The returned
	// function releases it.
	Lock(ctx context.Context) (unlock func(), err error)
	// Diff returns a unified diff between the current and the updated
	// document.
	Diff(ctx context.Context, current, updated string) string
}
