// renderer turns an episode record into the <item> fragment that is
// spliced into the feed. It implements the ports.ForRendering
// interface.
package renderer

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
)

//go:embed item.xml
var itemTemplate string

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML special characters with their named
// entities. encoding/xml is not used as it writes &#34; and &#39; and
// escapes newlines.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}

type person struct {
	Role    string
	Name    string
	Href    string
	HasHref bool
}

type chapter struct {
	Start string
	Title string
}

// item is what the template sees. Fields used with the xml function
// are free text, everything else is written verbatim.
type item struct {
	Title           string
	Link            string
	Subtitle        string
	Summary         string
	Description     string
	PubDate         string
	EnclosureURL    string
	EnclosureLength string
	EnclosureType   string
	GUID            string
	Image           string
	Season          string
	Episode         string
	Duration        string
	Keywords        string
	People          []person
	Lat             string
	Lon             string
	Location        string
	Funding         string
	FundingText     string
	Chapters        []chapter
}

// forRendering implements the ports.ForRendering port (interface).
type forRendering struct {
	config model.RenderConfig
	tmpl   *template.Template
}

// renderer.New returns the text/template based item renderer.
func New(config model.RenderConfig) (ports.ForRendering, error) {
	if err := config.PubDate.Valid(); err != nil {
		return nil, err
	}
	if config.PubDate == "" {
		config.PubDate = model.PubDateReformat
	}
	tmpl, err := template.New("item.xml").Funcs(template.FuncMap{
		"xml": Escape,
	}).Parse(itemTemplate)
	if err != nil {
		return nil, err
	}
	return &forRendering{config: config, tmpl: tmpl}, nil
}

func (r *forRendering) Render(_ context.Context, episode *model.Episode) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.tmpl.Execute(buf, r.item(episode)); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (r *forRendering) item(e *model.Episode) item {
	it := item{
		Title:           e.Title,
		Link:            e.Link,
		Subtitle:        e.Subtitle,
		Summary:         e.Summary,
		Description:     r.description(e),
		PubDate:         model.FormatPubDate(r.config.PubDate, e.PubDate),
		EnclosureURL:    e.SoundLink,
		EnclosureLength: e.SoundBytes.String(),
		EnclosureType:   e.FileType,
		GUID:            e.GUID,
		Image:           e.ImageLink,
		Season:          e.Season.String(),
		Episode:         e.Number.String(),
		Duration:        e.Duration.String(),
		Keywords:        strings.Join(e.Tags, ", "),
		Location:        e.Location,
		Funding:         e.Funding,
		FundingText:     e.FundingText,
	}
	it.Lat, it.Lon = coordinates(e.Coordinates)
	if e.Host != "" {
		it.People = append(it.People, person{Role: "host", Name: e.Host, Href: e.HostLink, HasHref: true})
	}
	for _, g := range [][2]string{{e.Guest1, e.Guest1Link}, {e.Guest2, e.Guest2Link}} {
		if g[0] == "" {
			continue
		}
		it.People = append(it.People, person{Role: "guest", Name: g[0], Href: g[1], HasHref: g[1] != ""})
	}
	for _, ts := range e.Timestamps {
		it.Chapters = append(it.Chapters, chapter{Start: ts.Start.String(), Title: ts.Title})
	}
	return it
}

func (r *forRendering) description(e *model.Episode) string {
	description := e.Summary
	if r.config.Markdown {
		description = MarkdownToHTML(description)
	}
	if r.config.SpotifyChapters {
		if chaps := SpotifyChapters(e.Timestamps); chaps != "" {
			if r.config.Markdown {
				description += "\n<pre>\n" + chaps + "</pre>"
			} else {
				description += "\n\n" + strings.TrimSuffix(chaps, "\n")
			}
		}
	}
	return description
}

// coordinates splits "lat;lon". Missing parts are empty.
func coordinates(s string) (lat, lon string) {
	if s == "" {
		return "", ""
	}
	parts := strings.Split(s, ";")
	lat = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		lon = strings.TrimSpace(parts[1])
	}
	return lat, lon
}
