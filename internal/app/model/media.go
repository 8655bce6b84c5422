package model

import (
	"strconv"
	"time"

	"github.com/sa6mwa/mp3duration"
)

// MediaInfo is what the prober learns about a local media file.
type MediaInfo struct {
	ContentType string
	Length      int64
	Duration    time.Duration
}

// FormattedDuration returns Duration the way itunes:duration expects
// it.
func (m *MediaInfo) FormattedDuration() string {
	return mp3duration.FormatDuration(m.Duration)
}

// Fields returns the record fields a probe fills in, keyed by their
// JSON names.
func (m *MediaInfo) Fields() map[string]any {
	return map[string]any{
		"Duration":    m.FormattedDuration(),
		"Sound bites": strconv.FormatInt(m.Length, 10),
		"File Type":   m.ContentType,
	}
}
