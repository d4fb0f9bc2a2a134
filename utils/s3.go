package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores meal photos in one bucket.
type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Uploader(ctx context.Context, region, bucket, publicURL string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET not set")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config for S3: %w", err)
	}
	return &S3Uploader{
		client:    s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// PutImage uploads data under key and returns the URL clients should use:
// the CloudFront URL when one is configured, otherwise an s3:// reference.
func (u *S3Uploader) PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	if u.publicURL != "" {
		return fmt.Sprintf("%s/%s", u.publicURL, key), nil
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
