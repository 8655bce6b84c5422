package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// ForRendering turns an episode into an RSS <item> fragment.
type ForRendering interface {
	Render(ctx context.Context, episode *model.Episode) (string, error)
}
