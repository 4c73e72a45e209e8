package publisher

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hashicorp/go-hclog"

	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
)

// Uploader is the part of s3manager.Uploader the publisher relies on.
type Uploader interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

// S3Publisher uploads artifacts under <prefix>/<run id>/<name> in a bucket.
type S3Publisher struct {
	uploader Uploader
	bucket   string
	prefix   string
	logger   hclog.Logger
}

// NewS3Publisher creates an S3Publisher using the default AWS credential chain.
func NewS3Publisher(cfg config.S3Publish, logger hclog.Logger) (*S3Publisher, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return NewS3PublisherWithUploader(s3manager.NewUploader(sess), cfg, logger), nil
}

// NewS3PublisherWithUploader creates an S3Publisher around an existing uploader.
func NewS3PublisherWithUploader(uploader Uploader, cfg config.S3Publish, logger hclog.Logger) *S3Publisher {
	return &S3Publisher{
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
		logger:   logger,
	}
}

func (p *S3Publisher) Name() string {
	return "s3"
}

// Key returns the object key of an artifact.
func (p *S3Publisher) Key(runID, name string) string {
	return path.Join(p.prefix, runID, name)
}

func (p *S3Publisher) Publish(ctx context.Context, runID string, a Artifact) (string, error) {
	key := p.Key(runID, a.Name)
	p.logger.Debug("uploading artifact", "bucket", p.bucket, "key", key, "size", len(a.Data))

	input := &s3manager.UploadInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(a.Data),
	}
	if a.ContentType != "" {
		input.ContentType = aws.String(a.ContentType)
	}

	result, err := p.uploader.UploadWithContext(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to upload to s3://%s/%s: %w", p.bucket, key, err)
	}
	return result.Location, nil
}
