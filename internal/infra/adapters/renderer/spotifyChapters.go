package renderer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sa6mwa/id3v24"
	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// SpotifyChapters returns the chapter list of an episode in the format
// Spotify picks up from the description, one "(MM:SS) title" per line,
// or (HH:MM:SS) if any chapter starts at or after one hour. If there
// are no chapters or a start does not parse, it returns an empty
// string. See
// https://support.spotify.com/us/creators/article/creating-and-managing-chapters/
func SpotifyChapters(timestamps []model.Timestamp) string {
	if len(timestamps) == 0 {
		return ""
	}
	oneHour, err := time.Parse("15:04:05", "01:00:00")
	if err != nil {
		return ""
	}
	type spotifyChapter struct {
		title string
		start time.Time
	}
	var schaps []spotifyChapter
	var longTimeFormat bool
	for _, c := range toChapters(timestamps) {
		s, err := id3v24.StringTimeToTime(c.Start)
		if err != nil {
			return ""
		}
		schaps = append(schaps, spotifyChapter{title: c.Title, start: s})
		if !s.Before(oneHour) {
			longTimeFormat = true
		}
	}
	var b strings.Builder
	for _, c := range schaps {
		layout := "04:05"
		if longTimeFormat {
			layout = "15:04:05"
		}
		fmt.Fprintf(&b, "(%s) %s\n", c.start.Format(layout), strings.TrimSpace(c.title))
	}
	return b.String()
}

// toChapters converts chapter markers to id3v24 chapters with the
// start normalized to HH:MM:SS.mmm. Starts are written either as
// seconds, MM:SS, HH:MM:SS or HH:MM:SS.mmm.
func toChapters(timestamps []model.Timestamp) []id3v24.Chapter {
	chapters := make([]id3v24.Chapter, 0, len(timestamps))
	for _, ts := range timestamps {
		chapters = append(chapters, id3v24.Chapter{
			Title: ts.Title,
			Start: normalizeStart(strings.TrimSpace(ts.Start.String())),
		})
	}
	return chapters
}

func normalizeStart(start string) string {
	if seconds, err := strconv.ParseFloat(start, 64); err == nil {
		d := time.Duration(seconds * float64(time.Second))
		return fmt.Sprintf("%02d:%02d:%02d.%03d",
			int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60, d.Milliseconds()%1000)
	}
	if strings.Count(start, ":") == 1 {
		start = "00:" + start
	}
	if !strings.Contains(start, ".") {
		start += ".000"
	}
	return start
}
