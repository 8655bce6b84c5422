package main

import (
	"fmt"
	"os"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/configurator"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.DefaultLogger().Error(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "mkfeed",
		Usage: "Publish podcast episode records into an existing RSS feed.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("Configuration file, %s is used if it exists", configurator.DefaultConfigFile),
			},
			&cli.StringFlag{
				Name:    "episodes",
				Aliases: []string{"e"},
				Usage:   fmt.Sprintf("Directory of JSON episode records (default %q)", model.DefaultEpisodesDir),
			},
			&cli.StringFlag{
				Name:    "feed",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("Feed document to add items to (default %q)", model.DefaultFeed),
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Print the items that would be added to stdout, do not modify anything",
			},
			&cli.BoolFlag{
				Name:    "interactive",
				Aliases: []string{"i"},
				Usage:   "Ask before writing the feed and before uploading",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Print a unified diff of the feed before writing it (and against the bucket when uploading)",
			},
			&cli.BoolFlag{
				Name:    "upload",
				Aliases: []string{"u"},
				Usage:   "Upload the feed to the Amazon S3 bucket configured under aws after writing it",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "due",
				Usage:  "Add unpublished episodes whose pubDate is within the window (oldest first)",
				Action: due,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   fmt.Sprintf("Maximum number of items to add (default from config or %d)", model.DefaultDueMax),
					},
					&cli.IntFlag{
						Name:    "window",
						Aliases: []string{"w"},
						Usage:   fmt.Sprintf("Window in days before now (default from config or %d)", model.DefaultWindowDays),
					},
				},
			},
			{
				Name:   "next",
				Usage:  "Add the next unpublished episodes ordered by Nummer",
				Action: next,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "max",
						Aliases: []string{"m"},
						Usage:   fmt.Sprintf("Maximum number of items to add (default from config or %d)", model.DefaultNextMax),
					},
				},
			},
			{
				Name:      "probe",
				Usage:     "Fill Duration, Sound bites and File Type of a record from a local mp3, m4a or mp4 file",
				ArgsUsage: "RECORD.json MEDIAFILE",
				Action:    probe,
			},
			{
				Name:      "new",
				Usage:     "Create a record with a fresh guid and the current time as pubDate",
				ArgsUsage: "RECORD.json",
				Action:    newRecord,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "title",
						Aliases: []string{"t"},
						Usage:   "Episode title",
					},
					&cli.StringFlag{
						Name:  "nummer",
						Usage: "Sequence number, e.g. 2025-3-1",
					},
				},
			},
			{
				Name:   "init",
				Usage:  "Write a configuration file with the default settings",
				Action: initConfig,
			},
		},
	}
}
