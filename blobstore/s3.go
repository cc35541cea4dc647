package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store targets any S3-compatible object store (AWS, MinIO, R2, Spaces).
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds a store for bucket from the S3_* environment:
// S3_REGION, S3_KEY/S3_SECRET (static creds, optional on AWS), S3_ENDPOINT
// (for non-AWS stores) and S3_URL (public base URL override).
func NewS3Store(ctx context.Context, bucket string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("blobstore: bucket is required")
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}
	key := os.Getenv("S3_KEY")
	secret := os.Getenv("S3_SECRET")
	endpoint := os.Getenv("S3_ENDPOINT")
	baseURL := strings.TrimRight(os.Getenv("S3_URL"), "/")

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("blobstore: load aws config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	// PutObject overwrites by default; there is no create-only mode to
	// disable here, so Overwrite is implicit.
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("blobstore: put %s: %w", path, err)
	}
	return nil
}

func (s *S3Store) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}
