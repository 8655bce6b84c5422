package loader

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", `{"guid":"b","title":"B","Season":1,"Tags":["x","y"]}`)
	writeFile(t, dir, "a.json", `{"guid":"a","title":"A","Sound bites":"42"}`)
	writeFile(t, dir, "notes.txt", `not a record`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	records, err := New(dir).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].File != "a.json" || records[1].File != "b.json" {
		t.Errorf("unexpected order: %s, %s", records[0].File, records[1].File)
	}
	if records[0].Episode.SoundBytes != "42" || records[1].Episode.Season != "1" {
		t.Errorf("unexpected scalars: %+v / %+v", records[0].Episode, records[1].Episode)
	}
	if len(records[1].Episode.Tags) != 2 {
		t.Errorf("unexpected tags: %q", records[1].Episode.Tags)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	records, err := New(t.TempDir()).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope")).Load(context.Background()); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestLoadMalformedRecordAbortsLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"guid":"a"}`)
	writeFile(t, dir, "b.json", `{"guid":`)
	writeFile(t, dir, "c.json", `{"guid":"c"}`)
	records, err := New(dir).Load(context.Background())
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("expected ErrMalformedRecord, got %v", err)
	}
	if records != nil {
		t.Errorf("expected no records on error, got %d", len(records))
	}
}

func TestPatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ep.json", `{"guid":"a","title":"Fish & Chips","Duration":"","Extra":{"keep":true}}`)
	l := New(dir)
	if err := l.Patch(context.Background(), "ep.json", map[string]any{
		"Duration":    "00:42:00",
		"Sound bites": int64(1234),
	}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "ep.json"))
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["Duration"] != "00:42:00" || got["Sound bites"] != float64(1234) || got["title"] != "Fish & Chips" {
		t.Errorf("unexpected record after patch: %v", got)
	}
	if extra, ok := got["Extra"].(map[string]any); !ok || extra["keep"] != true {
		t.Errorf("unknown key lost: %v", got["Extra"])
	}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if records[0].Episode.Duration != "00:42:00" || records[0].Episode.SoundBytes != "1234" {
		t.Errorf("unexpected episode after patch: %+v", records[0].Episode)
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	l := New(dir)
	episode := &model.Episode{GUID: "abc", Title: "Q&A", PubDate: "Fri, 01 Aug 2025 13:00:00 +0200"}
	if err := l.Create(context.Background(), "new.json", episode); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "new.json"))
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	if raw["title"] != "Q&A" {
		t.Errorf("title: got %v", raw["title"])
	}
	if _, ok := raw["Tags"].([]any); !ok {
		t.Errorf("expected Tags to be an empty array, got %v", raw["Tags"])
	}
	records, err := l.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Episode.GUID != "abc" {
		t.Errorf("unexpected records: %+v", records)
	}
	if err := l.Create(context.Background(), "new.json", episode); err == nil {
		t.Error("expected error when the record already exists")
	}
}
