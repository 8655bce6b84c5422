// publisher splices the episodes selected by a policy into the feed
// document. It only talks to ports, adapters are wired in by the
// caller.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/feedtext"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/app/selection"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

var (
	ErrUnknownPolicy error = errors.New("unknown selection policy")
)

type Policy string

const (
	// PolicyDue publishes episodes whose pubDate lies within the
	// window before now.
	PolicyDue Policy = "due"
	// PolicyNext publishes the next episodes by their Nummer.
	PolicyNext Policy = "next"
)

type Options struct {
	Policy Policy
	// Max caps the number of items added in one run.
	Max int
	// Window only applies to PolicyDue.
	Window time.Duration
	// DryRun prints the items that would be added and leaves the feed
	// alone.
	DryRun bool
	// Diff prints a unified diff of the feed before it is written (and
	// against the uploaded copy if Upload is set).
	Diff bool
	// Upload, if not nil, uploads the written feed. From is set to the
	// feed path.
	Upload *ports.ForUploadingRequest
}

// Result describes what a run did.
type Result struct {
	Selected []model.Record
	Items    []string
	Written  bool
	Uploaded bool
}

// GUIDs of the selected records.
func (r *Result) GUIDs() []string {
	guids := make([]string, 0, len(r.Selected))
	for _, rec := range r.Selected {
		guids = append(guids, rec.Episode.GUID)
	}
	return guids
}

// Files the selected records were loaded from.
func (r *Result) Files() []string {
	files := make([]string, 0, len(r.Selected))
	for _, rec := range r.Selected {
		files = append(files, rec.File)
	}
	return files
}

type Publisher struct {
	Loader   ports.ForLoading
	Feed     ports.ForFeeding
	Renderer ports.ForRendering
	Asker    ports.ForAsking
	// Hooks and Uploader are optional.
	Hooks    ports.ForHooking
	Uploader ports.ForUploading
	// Now defaults to time.Now.
	Now func() time.Time
	// Stdout receives dry-run items and diffs, defaults to os.Stdout.
	Stdout io.Writer
}

func (p *Publisher) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func (p *Publisher) stdout() io.Writer {
	if p.Stdout == nil {
		return os.Stdout
	}
	return p.Stdout
}

// Publish runs one selection, render and merge cycle. Nothing
// qualifying is not an error, the returned Result is then empty.
func (p *Publisher) Publish(ctx context.Context, opts Options) (*Result, error) {
	l := logger.FromContext(ctx)
	result := &Result{}

	if !p.Feed.Exists(ctx) {
		return result, fmt.Errorf("%w: %s", ports.ErrFeedNotFound, p.Feed.Path())
	}
	if !opts.DryRun {
		unlock, err := p.Feed.Lock(ctx)
		if err != nil {
			return result, err
		}
		defer unlock()
	}

	document, err := p.Feed.Read(ctx)
	if err != nil {
		return result, err
	}
	published := feedtext.GUIDSet(document)
	l.Debug("Scanned feed", "file", p.Feed.Path(), "guids", len(published))

	records, err := p.Loader.Load(ctx)
	if err != nil {
		return result, err
	}

	switch opts.Policy {
	case PolicyDue:
		result.Selected = selection.Due(records, published, p.now(), opts.Window, opts.Max)
	case PolicyNext:
		result.Selected = selection.Next(records, published, opts.Max)
	default:
		return result, fmt.Errorf("%w %q", ErrUnknownPolicy, string(opts.Policy))
	}
	if len(result.Selected) == 0 {
		l.Info("No episodes to publish", "policy", opts.Policy, "records", len(records), "published", len(published))
		return result, nil
	}

	for _, rec := range result.Selected {
		item, err := p.Renderer.Render(ctx, &rec.Episode)
		if err != nil {
			return result, fmt.Errorf("unable to render %s: %w", rec.File, err)
		}
		result.Items = append(result.Items, item)
		l.Info("Selected episode", "file", rec.File, "guid", rec.Episode.GUID, "title", rec.Episode.Title)
	}

	updated, err := feedtext.Merge(document, result.Items)
	if err != nil {
		return result, fmt.Errorf("%s: %w", p.Feed.Path(), err)
	}

	if opts.DryRun {
		l.Info(fmt.Sprintf("Dry-run, would add %d item(s)", len(result.Items)), "feed", p.Feed.Path())
		fmt.Fprintln(p.stdout(), strings.Join(result.Items, "\n\n"))
		if opts.Diff {
			fmt.Fprintln(p.stdout(), p.Feed.Diff(ctx, document, updated))
		}
		return result, nil
	}

	if opts.Diff {
		fmt.Fprintln(p.stdout(), p.Feed.Diff(ctx, document, updated))
	}
	if !p.Asker.Ask(ctx, "Add %d item(s) to %s?", len(result.Items), p.Feed.Path()) {
		l.Info("Feed left unchanged", "feed", p.Feed.Path())
		return result, nil
	}
	if err := p.Feed.Write(ctx, updated); err != nil {
		return result, err
	}
	result.Written = true
	l.Info(fmt.Sprintf("Added %d item(s)", len(result.Items)), "feed", p.Feed.Path(), "guids", strings.Join(result.GUIDs(), ","))

	if p.Hooks != nil {
		if err := p.Hooks.PostPublish(ctx, ports.HookValues{
			Feed:  p.Feed.Path(),
			GUIDs: result.GUIDs(),
			Files: result.Files(),
			Count: len(result.Items),
		}); err != nil {
			return result, err
		}
	}

	if opts.Upload != nil && p.Uploader != nil {
		uploaded, err := p.upload(ctx, opts)
		if err != nil {
			return result, err
		}
		result.Uploaded = uploaded
	}
	return result, nil
}

func (p *Publisher) upload(ctx context.Context, opts Options) (bool, error) {
	r := *opts.Upload
	r.From = p.Feed.Path()
	if opts.Diff {
		to := r.To
		if strings.TrimSpace(to) == "" {
			to = filepath.Base(r.From)
		}
		if err := p.Uploader.Diff(ctx, r.Store, to, r.From); err != nil {
			return false, err
		}
	}
	if !p.Asker.Ask(ctx, "Upload %s to bucket %s?", r.From, r.Store) {
		return false, nil
	}
	if err := p.Uploader.Upload(ctx, &r); err != nil {
		return false, err
	}
	return true, nil
}
