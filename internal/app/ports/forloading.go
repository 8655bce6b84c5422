package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// ForLoading reads episode records.
type ForLoading interface {
	// Load returns every record in the episodes directory in filename
	// order. A record that does not parse fails the whole load.
	Load(ctx context.Context) ([]model.Record, error)
	// Patch sets top-level keys in a single record file, leaving all
	// other keys untouched.
	Patch(ctx context.Context, file string, fields map[string]any) error
	// Create writes a new record file. An existing file is never
	// overwritten.
	Create(ctx context.Context, file string, episode *model.Episode) error
}
