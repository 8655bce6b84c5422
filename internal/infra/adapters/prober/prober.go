// prober reads content type, size and duration from local mp3, m4a
// and mp4 files. Implements the ports.ForProbing interface.
package prober

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alfg/mp4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/sa6mwa/mkfeed/internal/app/humanreadable"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"github.com/sa6mwa/mp3duration"
)

var (
	ErrUnsupportedMedia error = errors.New("unsupported media type")
)

type forProbing struct{}

func New() ports.ForProbing {
	return &forProbing{}
}

func (p *forProbing) Probe(ctx context.Context, mediaFile string) (*model.MediaInfo, error) {
	l := logger.FromContext(ctx)
	contentType, err := GetFileContentType(mediaFile)
	if err != nil {
		return nil, err
	}
	info := &model.MediaInfo{ContentType: contentType}
	switch {
	case IsMp4(contentType):
		info.Length, info.Duration, err = Mp4Duration(mediaFile)
		if err != nil {
			return nil, err
		}
	case contentType == "audio/mpeg":
		di, err := mp3duration.ReadFile(mediaFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read mp3 %s: %w", mediaFile, err)
		}
		info.Length = di.Length
		info.Duration = di.TimeDuration
	default:
		return nil, fmt.Errorf("%w %q: %s", ErrUnsupportedMedia, contentType, mediaFile)
	}
	l.Info(fmt.Sprintf("%s is %s long and %d bytes", mediaFile, info.FormattedDuration(), info.Length), "type", info.ContentType, "humanSize", humanreadable.IEC(info.Length))
	return info, nil
}

// GetFileContentType returns the detected mime type of filename
// without parameters.
func GetFileContentType(filename string) (string, error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	contentType, _, _ := strings.Cut(mimeType.String(), ";")
	return strings.TrimSpace(contentType), nil
}

// IsMp4 reports whether contentType is read through the mp4 box
// parser.
func IsMp4(contentType string) bool {
	switch contentType {
	case "audio/mp4", "audio/x-m4a", "audio/x-m4b", "video/mp4", "video/quicktime", "video/x-m4v":
		return true
	}
	return false
}

// Mp4Duration returns the length in bytes and the duration in
// time.Duration.
func Mp4Duration(filename string) (int64, time.Duration, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	m, err := mp4.OpenFromReader(f, info.Size())
	if err != nil {
		return 0, 0, err
	}
	if m != nil && m.Moov != nil && m.Moov.Mvhd != nil {
		return info.Size(), time.Duration(m.Moov.Mvhd.Duration) * time.Millisecond, nil
	}
	return 0, 0, fmt.Errorf("%s does not contain a Moov Mvhd box (maybe not an mp4?)", filename)
}
