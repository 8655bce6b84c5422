package ports

import "context"

type ForAsking interface {
	// Ask a yes/no question, usually before a side effect such as
	// overwriting the feed. Returns true for "yes". Adapters may
	// answer without asking based on dry-run or non-interactive mode
	// and may exit the program if the user chooses to. ctx should/could
	// hold a slog.Logger set with the logger package using
	// logger.WithLogger or logger.WithDefaultLogger.
	Ask(ctx context.Context, format string, a ...any) bool
}
