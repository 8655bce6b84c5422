package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// ForProbing inspects local media files.
type ForProbing interface {
	Probe(ctx context.Context, mediaFile string) (*model.MediaInfo, error)
}
