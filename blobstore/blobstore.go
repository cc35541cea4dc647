// Package blobstore is the blob-store capability the image import pipeline
// uploads through. The S3 driver is the production target; the local driver
// writes under the API host's uploads directory for development.
package blobstore

import (
	"context"
	"time"
)

// UploadOptions mirror the object metadata the pipeline sets on every image.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	// Overwrite replaces an existing object at the same path. Imports
	// always overwrite so a re-run converges on the same objects.
	Overwrite bool
}

// Store uploads bytes to a path and resolves the public URL for a path.
type Store interface {
	Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error
	PublicURL(path string) string
}

// WithRetry runs op up to attempts times, sleeping base, 2*base, 4*base...
// between tries. Only the final error is returned.
func WithRetry(ctx context.Context, attempts int, base time.Duration, op func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = op(); lastErr == nil {
			return nil
		}
		if attempt >= attempts {
			break
		}
		wait := base << (attempt - 1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return lastErr
}
