package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Episode is a single episode record as stored in the episodes
// directory, one JSON file per episode. The JSON keys are kept as the
// producers of the records write them.
type Episode struct {
	GUID        string      `json:"guid"`
	Title       string      `json:"title"`
	Link        string      `json:"link"`
	Subtitle    string      `json:"subtitle"`
	Summary     string      `json:"summary/description"`
	Tags        []string    `json:"Tags"`
	Location    string      `json:"Ort"`
	Coordinates string      `json:"Koordinaten"`
	PubDate     string      `json:"pubDate"`
	Season      Scalar      `json:"Season"`
	Number      Scalar      `json:"Episode"`
	Duration    Scalar      `json:"Duration"`
	Sequence    string      `json:"Nummer"`
	SoundLink   string      `json:"Sound Link"`
	SoundBytes  Scalar      `json:"Sound bites"`
	FileType    string      `json:"File Type"`
	ImageLink   string      `json:"Bild Link"`
	Host        string      `json:"Host"`
	HostLink    string      `json:"Host Link"`
	Guest1      string      `json:"Gast 1"`
	Guest1Link  string      `json:"Gast 1 Link"`
	Guest2      string      `json:"Gast 2"`
	Guest2Link  string      `json:"Gast 2 Link"`
	Funding     string      `json:"Funding"`
	FundingText string      `json:"Funding Satz"`
	Timestamps  []Timestamp `json:"Timestamps"`
}

// Timestamp is one chapter marker.
type Timestamp struct {
	Start Scalar `json:"start"`
	Title string `json:"title"`
}

// Record is an Episode tagged with the name of the file it was loaded
// from.
type Record struct {
	File    string
	Episode Episode
}

// HasGUID reports whether the record carries a guid. A guid is
// matched against the feed exactly as written, whitespace included.
func (r Record) HasGUID() bool {
	return r.Episode.GUID != ""
}

// Scalar holds a JSON string or number as text. Records are written by
// hand and the same key is a number in one file and a string in the
// next, both are rendered verbatim.
type Scalar string

func (s *Scalar) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*s = ""
		return nil
	case b[0] == '"':
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*s = Scalar(n.String())
		return nil
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*s = Scalar(b)
		return nil
	}
	return fmt.Errorf("expected string or number, got %s", string(b))
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s Scalar) String() string {
	return string(s)
}
