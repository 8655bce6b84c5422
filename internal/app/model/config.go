package model

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultEpisodesDir = "docs/Episoden"
	DefaultFeed        = "docs/feed.xml"
	DefaultWindowDays  = 7
	DefaultDueMax      = 1
	DefaultNextMax     = 2
)

// Config is the content of mkfeed.yaml. Paths are relative to the
// working directory unless absolute, a leading ~/ is expanded.
type Config struct {
	Episodes string       `yaml:"episodes"`
	Feed     string       `yaml:"feed"`
	Due      DueConfig    `yaml:"due"`
	Next     NextConfig   `yaml:"next"`
	Render   RenderConfig `yaml:"render"`
	Hooks    HooksConfig  `yaml:"hooks"`
	Aws      AwsConfig    `yaml:"aws"`
}

type DueConfig struct {
	// Episodes older than WindowDays are never published by the due
	// policy.
	WindowDays int `yaml:"windowDays"`
	Max        int `yaml:"max"`
}

type NextConfig struct {
	Max int `yaml:"max"`
}

type RenderConfig struct {
	PubDate PubDateMode `yaml:"pubDate"`
	// Markdown renders the description element from markdown to HTML.
	Markdown bool `yaml:"markdown"`
	// SpotifyChapters appends a (MM:SS) title list of the chapters to
	// the description element.
	SpotifyChapters bool `yaml:"spotifyChapters"`
}

type HooksConfig struct {
	// PostPublish is a Go template rendered into a shell command and
	// executed after the feed has been written.
	PostPublish string `yaml:"postPublish,omitempty"`
}

// DefaultConfig returns the configuration used when no mkfeed.yaml
// exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in zero values.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.Episodes) == "" {
		c.Episodes = DefaultEpisodesDir
	}
	if strings.TrimSpace(c.Feed) == "" {
		c.Feed = DefaultFeed
	}
	if c.Due.WindowDays <= 0 {
		c.Due.WindowDays = DefaultWindowDays
	}
	if c.Due.Max <= 0 {
		c.Due.Max = DefaultDueMax
	}
	if c.Next.Max <= 0 {
		c.Next.Max = DefaultNextMax
	}
	if c.Render.PubDate == "" {
		c.Render.PubDate = PubDateReformat
	}
}

func (c *Config) EpisodesExpanded() string {
	return resolvetilde(c.Episodes)
}

func (c *Config) FeedExpanded() string {
	return resolvetilde(c.Feed)
}

// resolvetilde returns path where initial tilde (~) is replaced by
// os.UserHomeDir().
func resolvetilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(dirname, path[2:])
	}
	return path
}
