// Package deploy uploads the built site to an S3-compatible bucket.
package deploy

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/sersergious/folio/internal/config"
)

// NewClient builds an S3 client for the configured target. Static keys
// and a custom endpoint cover S3-compatible providers; with neither set,
// the default AWS credential chain applies.
func NewClient(ctx context.Context, dc config.DeployConfig) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if dc.Region != "" {
		opts = append(opts, awsconfig.WithRegion(dc.Region))
	}
	if dc.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(dc.AccessKey, dc.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if dc.Endpoint != "" {
			o.BaseEndpoint = aws.String(dc.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
	log    *zap.Logger
}

func NewUploader(client *s3.Client, dc config.DeployConfig, log *zap.Logger) *Uploader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Uploader{client: client, bucket: dc.Bucket, prefix: dc.Prefix, log: log}
}

// SyncDir uploads every file under dir, keyed by its slash-separated
// relative path, and returns the number of objects written.
func (u *Uploader) SyncDir(ctx context.Context, dir string) (int, error) {
	uploaded := 0
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := path.Join(u.prefix, filepath.ToSlash(rel))
		data, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading %q: %w", p, err)
		}
		contentType := mime.TypeByExtension(filepath.Ext(p))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(u.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return fmt.Errorf("uploading %q: %w", key, err)
		}
		u.log.Info("uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
		uploaded++
		return nil
	})
	return uploaded, err
}
