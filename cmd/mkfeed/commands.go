package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/app/publisher"
	"github.com/sa6mwa/mkfeed/internal/app/selection"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/asker"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/configurator"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/feed"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/hook"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/loader"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/prober"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/renderer"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/uploader"
	"github.com/urfave/cli/v2"
)

var (
	ErrUploadNotConfigured error = errors.New("--upload requires aws.bucket in the configuration")
)

// setup returns a context carrying the logger and the configuration
// with command line overrides applied.
func setup(c *cli.Context) (context.Context, *model.Config, error) {
	ctx := logger.WithLogger(c.Context, logger.New(c.App.ErrWriter, c.Bool("verbose")))
	config, err := configurator.New(c.String("config")).Load(ctx)
	if err != nil {
		return ctx, nil, err
	}
	if v := strings.TrimSpace(c.String("episodes")); v != "" {
		config.Episodes = v
	}
	if v := strings.TrimSpace(c.String("feed")); v != "" {
		config.Feed = v
	}
	return ctx, config, nil
}

func newPublisher(c *cli.Context, config *model.Config) (*publisher.Publisher, error) {
	r, err := renderer.New(config.Render)
	if err != nil {
		return nil, err
	}
	p := &publisher.Publisher{
		Loader:   loader.New(config.EpisodesExpanded()),
		Feed:     feed.New(config.FeedExpanded()),
		Renderer: r,
		Asker:    asker.New(c.Bool("dry-run"), c.Bool("interactive")),
		Hooks:    hook.New(config.Hooks.PostPublish),
		Stdout:   c.App.Writer,
	}
	if c.Bool("upload") && !c.Bool("dry-run") {
		p.Uploader = uploader.New(config.Aws)
	}
	return p, nil
}

func publishOptions(c *cli.Context, config *model.Config) (publisher.Options, error) {
	opts := publisher.Options{
		DryRun: c.Bool("dry-run"),
		Diff:   c.Bool("diff"),
	}
	if c.Bool("upload") {
		if !config.Aws.Enabled() {
			return opts, ErrUploadNotConfigured
		}
		opts.Upload = &ports.ForUploadingRequest{
			Store:        config.Aws.Bucket,
			To:           config.Aws.Key,
			ContentType:  uploader.FeedContentType,
			StorageClass: config.Aws.GetStorageClass(),
		}
	}
	return opts, nil
}

func publish(ctx context.Context, c *cli.Context, config *model.Config, opts publisher.Options) error {
	p, err := newPublisher(c, config)
	if err != nil {
		return err
	}
	if _, err := p.Publish(ctx, opts); err != nil {
		if errors.Is(err, ports.ErrFeedNotFound) {
			return cli.Exit(err.Error(), 1)
		}
		return err
	}
	return nil
}

func due(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	if c.Int("max") > 0 {
		config.Due.Max = c.Int("max")
	}
	if c.Int("window") > 0 {
		config.Due.WindowDays = c.Int("window")
	}
	opts, err := publishOptions(c, config)
	if err != nil {
		return err
	}
	opts.Policy = publisher.PolicyDue
	opts.Max = config.Due.Max
	opts.Window = time.Duration(config.Due.WindowDays) * selection.Day
	return publish(ctx, c, config, opts)
}

func next(c *cli.Context) error {
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	if c.Int("max") > 0 {
		config.Next.Max = c.Int("max")
	}
	opts, err := publishOptions(c, config)
	if err != nil {
		return err
	}
	opts.Policy = publisher.PolicyNext
	opts.Max = config.Next.Max
	return publish(ctx, c, config, opts)
}

func probe(c *cli.Context) error {
	if c.Args().Len() != 2 {
		return cli.Exit("usage: mkfeed probe RECORD.json MEDIAFILE", 1)
	}
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	info, err := prober.New().Probe(ctx, c.Args().Get(1))
	if err != nil {
		return err
	}
	fields := info.Fields()
	if c.Bool("dry-run") {
		for _, k := range []string{"Duration", "Sound bites", "File Type"} {
			fmt.Fprintf(c.App.Writer, "%s: %v\n", k, fields[k])
		}
		return nil
	}
	return loader.New(config.EpisodesExpanded()).Patch(ctx, c.Args().Get(0), fields)
}

// scaffold returns a new episode with a random guid and now as
// pubDate.
func scaffold(now time.Time, title, nummer string) *model.Episode {
	return &model.Episode{
		GUID:     uuid.NewString(),
		Title:    title,
		Sequence: nummer,
		PubDate:  now.Format(time.RFC1123Z),
	}
}

func newRecord(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return cli.Exit("usage: mkfeed new RECORD.json", 1)
	}
	ctx, config, err := setup(c)
	if err != nil {
		return err
	}
	episode := scaffold(time.Now(), c.String("title"), c.String("nummer"))
	if c.Bool("dry-run") {
		logger.FromContext(ctx).Info("Dry-run, not creating record", "file", c.Args().First(), "guid", episode.GUID)
		return nil
	}
	return loader.New(config.EpisodesExpanded()).Create(ctx, c.Args().First(), episode)
}

func initConfig(c *cli.Context) error {
	ctx := logger.WithLogger(c.Context, logger.New(c.App.ErrWriter, c.Bool("verbose")))
	filename := c.String("config")
	if filename == "" {
		filename = configurator.DefaultConfigFile
	}
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("%s: %w", filename, fs.ErrExist)
	}
	if c.Bool("dry-run") {
		logger.FromContext(ctx).Info("Dry-run, not writing configuration", "file", filename)
		return nil
	}
	return configurator.New(filename).Save(ctx, model.DefaultConfig())
}
