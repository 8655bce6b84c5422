// feedtext holds the text-level operations on a feed document. The
// feed is never re-serialized through an XML encoder, everything
// outside the inserted items stays byte-identical.
package feedtext

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrAnchorNotFound error = errors.New("closing </channel></rss> not found in feed")
)

// Indentation of every inserted item line.
const Margin = "  "

var (
	guidPattern   = regexp.MustCompile(`<guid[^>]*>(.*?)</guid>`)
	anchorPattern = regexp.MustCompile(`</channel>\s*</rss>`)
)

// GUIDs returns the text of every <guid> element in document order.
func GUIDs(document string) []string {
	matches := guidPattern.FindAllStringSubmatch(document, -1)
	guids := make([]string, 0, len(matches))
	for _, m := range matches {
		guids = append(guids, m[1])
	}
	return guids
}

// GUIDSet is GUIDs as a set for membership tests.
func GUIDSet(document string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, g := range GUIDs(document) {
		set[g] = struct{}{}
	}
	return set
}

// Indent prefixes every line of s with margin.
func Indent(s, margin string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = margin + lines[i]
	}
	return strings.Join(lines, "\n")
}

// Merge inserts items in front of the first </channel></rss> of
// document. Every item is indented by Margin and items are separated
// by a blank line. If the closing tags are missing the document is
// returned unchanged together with ErrAnchorNotFound.
func Merge(document string, items []string) (string, error) {
	loc := anchorPattern.FindStringIndex(document)
	if loc == nil {
		return document, ErrAnchorNotFound
	}
	if len(items) == 0 {
		return document, nil
	}
	indented := make([]string, len(items))
	for i := range items {
		indented[i] = Indent(items[i], Margin)
	}
	var b strings.Builder
	b.Grow(len(document) + len(items)*1024)
	b.WriteString(document[:loc[0]])
	b.WriteString(strings.Join(indented, "\n\n"))
	b.WriteString("\n\n</channel>\n</rss>")
	b.WriteString(document[loc[1]:])
	return b.String(), nil
}
