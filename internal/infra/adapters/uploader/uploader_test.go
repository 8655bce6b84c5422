package uploader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sa6mwa/mkfeed/internal/app/ports"
)

func TestNormalize(t *testing.T) {
	if err := normalize(nil); !errors.Is(err, ErrNilPointerRequest) {
		t.Errorf("expected ErrNilPointerRequest, got %v", err)
	}
	if err := normalize(&ports.ForUploadingRequest{From: "  "}); !errors.Is(err, ErrFilenameMissing) {
		t.Errorf("expected ErrFilenameMissing, got %v", err)
	}
	r := &ports.ForUploadingRequest{
		Store:       "bucket",
		From:        "docs/feed.xml",
		ContentType: FeedContentType,
	}
	if err := normalize(r); err != nil {
		t.Fatal(err)
	}
	if r.To != "feed.xml" {
		t.Errorf("To: got %q, want feed.xml", r.To)
	}
	if r.StorageClass != "STANDARD" {
		t.Errorf("StorageClass: got %q, want STANDARD", r.StorageClass)
	}
}

func TestNormalizeDetectsContentType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.xml")
	if err := os.WriteFile(path, []byte(`<?xml version="1.0"?><rss version="2.0"><channel></channel></rss>`), 0o644); err != nil {
		t.Fatal(err)
	}
	r := &ports.ForUploadingRequest{From: path, To: "podcast/feed.xml"}
	if err := normalize(r); err != nil {
		t.Fatal(err)
	}
	if r.ContentType == "" {
		t.Error("expected a detected content type")
	}
	if r.To != "podcast/feed.xml" {
		t.Errorf("To was changed: %q", r.To)
	}
}

func TestUnifiedDiff(t *testing.T) {
	got := unifiedDiff("s3://bucket/feed.xml", "feed.xml", "a\nb\n", "a\nc\n")
	for _, want := range []string{"--- s3://bucket/feed.xml", "+++ feed.xml", "-b", "+c"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}
}
