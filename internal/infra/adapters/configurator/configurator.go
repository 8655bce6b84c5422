// configurator is an adapter for loading and saving the mkfeed
// configuration file. It implements the ports.ForConfiguring
// interface.
package configurator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory if no other
// file is given.
const DefaultConfigFile = "mkfeed.yaml"

// configurator.New returns a local file-based configurator that
// satisfies the ports.ForConfiguring port interface. An empty
// configFilename means DefaultConfigFile, which is allowed to be
// missing.
func New(configFilename string) ports.ForConfiguring {
	optional := false
	if configFilename == "" {
		configFilename = DefaultConfigFile
		optional = true
	}
	return &forConfiguring{
		configFile: configFilename,
		optional:   optional,
	}
}

// Implements the ports.ForConfiguring interface.
type forConfiguring struct {
	configFile string
	optional   bool
}

func (c *forConfiguring) Load(ctx context.Context) (*model.Config, error) {
	l := logger.FromContext(ctx)
	f, err := os.Open(c.configFile)
	if err != nil {
		if c.optional && errors.Is(err, fs.ErrNotExist) {
			l.Debug("No configuration file, using defaults", "file", c.configFile)
			return model.DefaultConfig(), nil
		}
		return nil, err
	}
	defer f.Close()
	var config model.Config
	if err := yaml.NewDecoder(f).Decode(&config); err != nil {
		// An empty file decodes to io.EOF.
		if fi, serr := f.Stat(); serr != nil || fi.Size() > 0 {
			return nil, fmt.Errorf("unable to parse %s: %w", c.configFile, err)
		}
	}
	config.SetDefaults()
	if err := config.Render.PubDate.Valid(); err != nil {
		return nil, fmt.Errorf("%s: %w", c.configFile, err)
	}
	l.Debug("Loaded configuration", "file", c.configFile)
	return &config, nil
}

func (c *forConfiguring) Save(ctx context.Context, config *model.Config) error {
	f, err := os.Create(c.configFile)
	if err != nil {
		return fmt.Errorf("unable to write %s: %w", c.configFile, err)
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(config); err != nil {
		return fmt.Errorf("unable to marshall yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Wrote configuration", "file", c.configFile)
	return nil
}
