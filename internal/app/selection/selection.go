// selection decides which episode records are published in a run.
// Both policies skip records without a guid and records whose guid is
// already in the feed.
package selection

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

const Day = 24 * time.Hour

var digitRuns = regexp.MustCompile(`\d+`)

// Unpublished returns the records that have a guid not present in
// published, in their original order.
func Unpublished(records []model.Record, published map[string]struct{}) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if !r.HasGUID() {
			continue
		}
		if _, ok := published[r.Episode.GUID]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Due returns at most limit unpublished records whose pubDate is not in
// the future and at most window old, oldest first. Records with a
// pubDate that does not parse are left out.
func Due(records []model.Record, published map[string]struct{}, now time.Time, window time.Duration, limit int) []model.Record {
	if limit <= 0 {
		return nil
	}
	type candidate struct {
		record model.Record
		at     time.Time
	}
	var candidates []candidate
	for _, r := range Unpublished(records, published) {
		at, err := model.ParsePubDate(r.Episode.PubDate)
		if err != nil {
			continue
		}
		if at.After(now) {
			continue
		}
		if now.Sub(at) > window {
			continue
		}
		candidates = append(candidates, candidate{record: r, at: at})
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.at.Compare(b.at)
	})
	out := make([]model.Record, 0, min(limit, len(candidates)))
	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		out = append(out, c.record)
	}
	return out
}

// SequenceKey is the (year, season, index) triple of a Nummer field.
// Each part is a decimal digit run without leading zeros, of any
// length.
type SequenceKey struct {
	Year, Season, Index string
}

// ParseSequence extracts the first three digit runs of s. ok is false
// when s has fewer than three.
func ParseSequence(s string) (key SequenceKey, ok bool) {
	runs := digitRuns.FindAllString(s, -1)
	if len(runs) < 3 {
		return SequenceKey{}, false
	}
	return SequenceKey{
		Year:   trimZeros(runs[0]),
		Season: trimZeros(runs[1]),
		Index:  trimZeros(runs[2]),
	}, true
}

func trimZeros(digits string) string {
	if t := strings.TrimLeft(digits, "0"); t != "" {
		return t
	}
	return "0"
}

// compareDigits compares two digit runs without leading zeros by
// numeric value.
func compareDigits(a, b string) int {
	return cmp.Or(cmp.Compare(len(a), len(b)), strings.Compare(a, b))
}

// CompareSequence orders records by their Nummer. A record without a
// usable Nummer compares equal to every other record.
func CompareSequence(a, b model.Record) int {
	ka, okA := ParseSequence(a.Episode.Sequence)
	kb, okB := ParseSequence(b.Episode.Sequence)
	if !okA || !okB {
		return 0
	}
	return cmp.Or(
		compareDigits(ka.Year, kb.Year),
		compareDigits(ka.Season, kb.Season),
		compareDigits(ka.Index, kb.Index),
	)
}

// Next sorts records by Nummer and returns the first limit that are not
// yet published.
func Next(records []model.Record, published map[string]struct{}, limit int) []model.Record {
	if limit <= 0 {
		return nil
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, CompareSequence)
	out := make([]model.Record, 0, limit)
	for _, r := range sorted {
		if len(out) >= limit {
			break
		}
		if !r.HasGUID() {
			continue
		}
		if _, ok := published[r.Episode.GUID]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}
