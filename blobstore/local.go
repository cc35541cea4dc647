package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes blobs under a directory served as static files, the way
// the API host serves /uploads. Useful for development and tests.
type LocalStore struct {
	root      string
	urlPrefix string
}

// NewLocalStore stores files under root and reports public URLs as
// urlPrefix + "/" + path.
func NewLocalStore(root, urlPrefix string) *LocalStore {
	return &LocalStore{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (l *LocalStore) Upload(_ context.Context, path string, data []byte, opts UploadOptions) error {
	dest := filepath.Join(l.root, filepath.FromSlash(path))
	if !opts.Overwrite {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("blobstore: object already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("blobstore: mkdir for %s: %w", path, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("blobstore: write %s: %w", path, err)
	}
	return nil
}

func (l *LocalStore) PublicURL(path string) string {
	return l.urlPrefix + "/" + strings.TrimLeft(path, "/")
}
