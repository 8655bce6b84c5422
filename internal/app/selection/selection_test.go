package selection

import (
	"fmt"
	"testing"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

var now = time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)

func record(guid, pubDate, nummer string) model.Record {
	return model.Record{
		File: guid + ".json",
		Episode: model.Episode{
			GUID:     guid,
			PubDate:  pubDate,
			Sequence: nummer,
		},
	}
}

func guids(records []model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Episode.GUID)
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDueWindow(t *testing.T) {
	tables := []struct {
		name    string
		pubDate string
		want    bool
	}{
		{"eight days ago", now.Add(-8 * Day).Format(time.RFC1123Z), false},
		{"six days ago", now.Add(-6 * Day).Format(time.RFC1123Z), true},
		{"exactly seven days ago", now.Add(-7 * Day).Format(time.RFC3339), true},
		{"one hour ahead", now.Add(time.Hour).Format(time.RFC3339), false},
		{"unparsable", "next tuesday-ish", false},
		{"empty", "", false},
	}
	for _, table := range tables {
		got := Due([]model.Record{record("a", table.pubDate, "")}, nil, now, 7*Day, 1)
		if (len(got) == 1) != table.want {
			t.Errorf("%s: selected=%v, want %v", table.name, len(got) == 1, table.want)
		}
	}
}

func TestDueOrderAndCap(t *testing.T) {
	var records []model.Record
	for i := 5; i >= 1; i-- {
		records = append(records, record(fmt.Sprintf("ep-%d", i), now.Add(-time.Duration(i)*Day).Format(time.RFC1123Z), ""))
	}
	got := Due(records, nil, now, 7*Day, 1)
	if want := []string{"ep-5"}; !equal(guids(got), want) {
		t.Errorf("Due = %q, want %q", guids(got), want)
	}
	got = Due(records, nil, now, 7*Day, 3)
	if want := []string{"ep-5", "ep-4", "ep-3"}; !equal(guids(got), want) {
		t.Errorf("Due = %q, want %q", guids(got), want)
	}
	if got := Due(records, nil, now, 7*Day, 0); len(got) != 0 {
		t.Errorf("expected nothing with limit 0, got %q", guids(got))
	}
}

func TestDueSkipsPublishedAndMissingGUID(t *testing.T) {
	pub := now.Add(-Day).Format(time.RFC1123Z)
	records := []model.Record{
		record("", pub, ""),
		record("old", now.Add(-2*Day).Format(time.RFC1123Z), ""),
		record("new", pub, ""),
	}
	published := map[string]struct{}{"old": {}}
	got := Due(records, published, now, 7*Day, 5)
	if want := []string{"new"}; !equal(guids(got), want) {
		t.Errorf("Due = %q, want %q", guids(got), want)
	}
}

func TestParseSequence(t *testing.T) {
	tables := []struct {
		in   string
		want SequenceKey
		ok   bool
	}{
		{"2024-1-3", SequenceKey{"2024", "1", "3"}, true},
		{"S2024 / Staffel 02 / Tag 17", SequenceKey{"2024", "2", "17"}, true},
		{"2024-1-3-9", SequenceKey{"2024", "1", "3"}, true},
		{"2024-00-1", SequenceKey{"2024", "0", "1"}, true},
		{"2024-1-99999999999999999999", SequenceKey{"2024", "1", "99999999999999999999"}, true},
		{"2024-1", SequenceKey{}, false},
		{"", SequenceKey{}, false},
	}
	for _, table := range tables {
		got, ok := ParseSequence(table.in)
		if ok != table.ok || got != table.want {
			t.Errorf("ParseSequence(%q) = %v, %v, want %v, %v", table.in, got, ok, table.want, table.ok)
		}
	}
}

func TestNextOrder(t *testing.T) {
	records := []model.Record{
		record("c", "", "2024-1-3"),
		record("a", "", "2024-1-1"),
		record("e", "", "2024-2-1"),
	}
	got := Next(records, nil, 3)
	if want := []string{"a", "c", "e"}; !equal(guids(got), want) {
		t.Errorf("Next = %q, want %q", guids(got), want)
	}
	// The input must not be reordered in place.
	if records[0].Episode.GUID != "c" {
		t.Error("Next modified its input")
	}
}

func TestNextCapAndSkips(t *testing.T) {
	records := []model.Record{
		record("e5", "", "2024-1-5"),
		record("e4", "", "2024-1-4"),
		record("e3", "", "2024-1-3"),
		record("", "", "2024-1-0"),
		record("e2", "", "2024-1-2"),
		record("e1", "", "2024-1-1"),
	}
	published := map[string]struct{}{"e1": {}}
	got := Next(records, published, 2)
	if want := []string{"e2", "e3"}; !equal(guids(got), want) {
		t.Errorf("Next = %q, want %q", guids(got), want)
	}
}

func TestCompareSequenceUnorderable(t *testing.T) {
	a := record("a", "", "2024-1-1")
	b := record("b", "", "no number")
	if CompareSequence(a, b) != 0 || CompareSequence(b, a) != 0 {
		t.Error("unorderable records must compare equal")
	}
	c := record("c", "", "2025-1-1")
	if CompareSequence(a, c) >= 0 || CompareSequence(c, a) <= 0 {
		t.Error("expected 2024-1-1 before 2025-1-1")
	}
}

func TestSelectionCaps(t *testing.T) {
	var records []model.Record
	for i := 1; i <= 5; i++ {
		records = append(records, record(fmt.Sprintf("ep-%d", i), now.Add(-time.Duration(i)*time.Hour).Format(time.RFC1123Z), fmt.Sprintf("2025-1-%d", i)))
	}
	if got := Due(records, nil, now, 7*Day, model.DefaultDueMax); len(got) != 1 {
		t.Errorf("due policy selected %d, want 1", len(got))
	}
	if got := Next(records, nil, model.DefaultNextMax); len(got) != 2 {
		t.Errorf("sequence policy selected %d, want 2", len(got))
	}
}

func TestNextOverlongDigitRuns(t *testing.T) {
	records := []model.Record{
		record("big", "", "2024-1-99999999999999999999"),
		record("c", "", "2024-1-2"),
		record("z", "", "2024-1-0010"),
	}
	got := Next(records, nil, 3)
	if want := []string{"c", "z", "big"}; !equal(guids(got), want) {
		t.Errorf("Next = %q, want %q", guids(got), want)
	}
}

func TestWhitespaceGUIDIsKept(t *testing.T) {
	pub := now.Add(-Day).Format(time.RFC1123Z)
	records := []model.Record{
		record("", pub, "2024-1-1"),
		record("  ", pub, "2024-1-2"),
	}
	if got := Due(records, nil, now, 7*Day, 5); !equal(guids(got), []string{"  "}) {
		t.Errorf("Due = %q, want the whitespace guid", guids(got))
	}
	if got := Next(records, map[string]struct{}{"  ": {}}, 5); len(got) != 0 {
		t.Errorf("Next = %q, want nothing once the guid is published", guids(got))
	}
}
