// loader is the local directory adapter for episode records. It
// implements the ports.ForLoading interface.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

var (
	ErrMalformedRecord error = errors.New("malformed episode record")
)

const recordExtension = ".json"

type forLoading struct {
	dir string
}

// loader.New returns a ports.ForLoading reading every *.json file in
// dir.
func New(dir string) ports.ForLoading {
	return &forLoading{dir: dir}
}

func (l *forLoading) Load(ctx context.Context) ([]model.Record, error) {
	log := logger.FromContext(ctx)
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read episodes directory: %w", err)
	}
	records := make([]model.Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), recordExtension) {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var episode model.Episode
		if err := json.Unmarshal(data, &episode); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrMalformedRecord, path, err)
		}
		records = append(records, model.Record{File: entry.Name(), Episode: episode})
	}
	log.Debug("Loaded episode records", "dir", l.dir, "records", len(records))
	return records, nil
}

// Patch rewrites file (relative to the episodes directory unless
// absolute) with fields set. Keys come out sorted, values of keys not
// in fields are kept as they were.
func (l *forLoading) Patch(ctx context.Context, file string, fields map[string]any) error {
	log := logger.FromContext(ctx)
	path := l.resolve(file)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w %s: %w", ErrMalformedRecord, path, err)
	}
	if raw == nil {
		raw = make(map[string]json.RawMessage)
	}
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("unable to marshal %q: %w", k, err)
		}
		raw[k] = b
	}
	b, err := marshal(raw)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, info.Mode().Perm()); err != nil {
		return fmt.Errorf("unable to re-write %s: %w", path, err)
	}
	log.Info("Updated episode record", "file", path, "keys", len(fields))
	return nil
}

// Create writes episode as a new record. file is resolved like in
// Patch.
func (l *forLoading) Create(ctx context.Context, file string, episode *model.Episode) error {
	log := logger.FromContext(ctx)
	path := l.resolve(file)
	if episode.Tags == nil {
		episode.Tags = []string{}
	}
	if episode.Timestamps == nil {
		episode.Timestamps = []model.Timestamp{}
	}
	b, err := marshal(episode)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("Created episode record", "file", path, "guid", episode.GUID)
	return nil
}

// resolve places a bare filename in the episodes directory.
func (l *forLoading) resolve(file string) string {
	if !filepath.IsAbs(file) && filepath.Dir(file) == "." {
		return filepath.Join(l.dir, file)
	}
	return file
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
