// uploader publishes the written feed to an S3 bucket using the AWS
// SDK v1. Implements the ports.ForUploading interface.
package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gabriel-vasile/mimetype"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/sa6mwa/mkfeed/internal/app/humanreadable"
	"github.com/sa6mwa/mkfeed/internal/app/model"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

var (
	ErrNilPointerRequest error = errors.New("received nil pointer as request")
	ErrFilenameMissing   error = errors.New("empty or missing filename given")
)

// FeedContentType is sent with the uploaded feed.
const FeedContentType = "application/rss+xml; charset=utf-8"

type forUploading struct {
	session *session.Session
	stdout  io.Writer
}

func New(config model.AwsConfig) ports.ForUploading {
	s := session.Must(session.NewSessionWithOptions(session.Options{
		Profile: config.Profile,
		Config: aws.Config{
			Region: aws.String(config.Region),
		},
	}))
	return &forUploading{
		session: s,
		stdout:  os.Stdout,
	}
}

func getContentType(filename string) (contentType string, err error) {
	mimetype.SetLimit(1024 * 1024)
	mimeType, err := mimetype.DetectFile(filename)
	if err != nil {
		return "", err
	}
	return mimeType.String(), nil
}

// normalize validates r and fills in defaults. If ContentType is empty
// it is detected from the file in r.From.
func normalize(r *ports.ForUploadingRequest) error {
	if r == nil {
		return ErrNilPointerRequest
	}
	if strings.TrimSpace(r.From) == "" {
		return ErrFilenameMissing
	}
	if strings.TrimSpace(r.ContentType) == "" {
		var err error
		r.ContentType, err = getContentType(r.From)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(r.To) == "" {
		r.To = filepath.Base(r.From)
	}
	if r.StorageClass == "" {
		r.StorageClass = "STANDARD"
	}
	return nil
}

// Upload r.From as r.To to the S3 bucket r.Store.
func (u *forUploading) Upload(ctx context.Context, r *ports.ForUploadingRequest) error {
	l := logger.FromContext(ctx)
	if err := normalize(r); err != nil {
		return err
	}
	s3path := "s3://" + path.Join(r.Store, r.To)
	fi, err := os.Stat(r.From)
	if err != nil {
		return err
	}
	l.Info("Uploading to S3", "file", r.From, "to", s3path, "storageClass", r.StorageClass, "size", fi.Size(), "humanSize", humanreadable.IEC(fi.Size()))
	f, err := os.Open(r.From)
	if err != nil {
		return err
	}
	defer f.Close()
	uploader := s3manager.NewUploader(u.session)
	result, err := uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:       aws.String(r.Store),
		Key:          aws.String(r.To),
		ContentType:  aws.String(r.ContentType),
		Body:         f,
		StorageClass: aws.String(r.StorageClass),
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s: %w", s3path, err)
	}
	l.Info("Upload succeeded", "location", result.Location)
	return nil
}

// Diff downloads the object and writes a unified diff against
// fileToDiff to stdout. A missing object is not an error.
func (u *forUploading) Diff(ctx context.Context, bucket, key, fileToDiff string) error {
	l := logger.FromContext(ctx)
	fileContent, err := os.ReadFile(fileToDiff)
	if err != nil {
		return err
	}
	s3path := "s3://" + path.Join(bucket, key)
	downloader := s3manager.NewDownloader(u.session)
	buf := aws.NewWriteAtBuffer([]byte{})
	size, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			switch awsErr.Code() {
			case "NotFound", "NoSuchKey":
				l.Info("Skipping diff", "file", fileToDiff, "path", s3path, "error", fmt.Errorf("%w: %w", ports.ErrNotFound, err))
				return nil
			}
		}
		return err
	}
	l.Debug("Buffered successfully", "path", s3path, "bytes", size)
	l.Info("Diff follows", "to", fileToDiff, "from", s3path)
	fmt.Fprintln(u.stdout, unifiedDiff(s3path, fileToDiff, string(buf.Bytes()), string(fileContent)))
	return nil
}

func unifiedDiff(fromName, toName, from, to string) string {
	edits := myers.ComputeEdits(span.URIFromPath(fromName), from, to)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, from, edits))
}
