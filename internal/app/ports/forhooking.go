package ports

import "context"

// HookValues are available to the post-publish command template.
type HookValues struct {
	Feed  string
	GUIDs []string
	Files []string
	Count int
}

type ForHooking interface {
	// PostPublish runs after the feed has been written. Adapters without
	// a configured command return nil.
	PostPublish(ctx context.Context, values HookValues) error
}
