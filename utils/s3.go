package utils

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3ImageStore uploads product images to a public-read bucket.
type S3ImageStore struct {
	bucket   string
	uploader *manager.Uploader
}

// NewS3ImageStore loads the default AWS credential chain. An empty region
// leaves region resolution to the environment.
func NewS3ImageStore(ctx context.Context, bucket, region string) (*S3ImageStore, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3ImageStore{bucket: bucket, uploader: manager.NewUploader(client)}, nil
}

func (s *S3ImageStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return result.Location, nil
}
