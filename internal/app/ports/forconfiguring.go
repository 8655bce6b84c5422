package ports

import (
	"context"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

type ForConfiguring interface {
	// Load returns the configuration with defaults applied.
	Load(ctx context.Context) (*model.Config, error)
	Save(ctx context.Context, config *model.Config) error
}
