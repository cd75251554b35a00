// Package uploader publishes a rendered report tree to S3 so pipeline
// runs leave a browsable history behind.
package uploader

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-hclog"
)

// s3Uploader is the slice of s3manager.Uploader the tree walk needs.
type s3Uploader interface {
	Upload(input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type Uploader struct {
	logger hclog.Logger
	client s3Uploader
	bucket string
	prefix string
}

// New builds an uploader against one bucket. An empty region defers to
// the usual AWS environment and shared config resolution.
func New(logger hclog.Logger, region, bucket, prefix string) *Uploader {
	awsConfig := aws.Config{}
	if region != "" {
		awsConfig.Region = aws.String(region)
	}
	sess := session.Must(session.NewSession(&awsConfig))

	return &Uploader{
		logger: logger,
		client: s3manager.NewUploader(sess),
		bucket: bucket,
		prefix: prefix,
	}
}

// UploadTree publishes every file under root, keyed by the prefix, the
// run timestamp and the file's path relative to root. A file that fails
// to land degrades to a warning; the walk carries on and the count of
// uploaded files comes back.
func (u *Uploader) UploadTree(root string, stamp time.Time) (int, error) {
	base := u.keyBase(stamp)
	uploaded := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		key := base + "/" + filepath.ToSlash(rel)

		file, err := os.Open(path)
		if err != nil {
			u.logger.Warn("failed to open result file", "file", path, "error", err)
			return nil
		}
		_, err = u.client.Upload(&s3manager.UploadInput{
			Bucket: aws.String(u.bucket),
			Key:    aws.String(key),
			Body:   file,
		})
		file.Close()
		if err != nil {
			u.logger.Warn("failed to upload result file", "file", path, "key", key, "error", err)
			return nil
		}

		u.logger.Debug("uploaded result file", "bucket", u.bucket, "key", key)
		uploaded++
		return nil
	})
	if err != nil {
		return uploaded, err
	}

	u.logger.Info("upload complete", "bucket", u.bucket, "prefix", base, "files", uploaded)
	return uploaded, nil
}

func (u *Uploader) keyBase(stamp time.Time) string {
	timestamp := stamp.UTC().Format(time.RFC3339)
	if u.prefix == "" {
		return timestamp
	}
	return strings.TrimSuffix(u.prefix, "/") + "/" + timestamp
}
