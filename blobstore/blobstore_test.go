package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryStopsAfterSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryReturnsFinalError(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New("still broken")
	})
	assert.ErrorContains(t, err, "still broken")
	assert.Equal(t, 3, calls)
}

func TestLocalStoreUploadAndURL(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	err := store.Upload(context.Background(), "products/soap/soap-01.webp", []byte("data"), UploadOptions{Overwrite: true})
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "products", "soap", "soap-01.webp"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(written))

	assert.Equal(t, "/uploads/products/soap/soap-01.webp", store.PublicURL("products/soap/soap-01.webp"))

	// Without overwrite a second upload to the same path is refused.
	err = store.Upload(context.Background(), "products/soap/soap-01.webp", []byte("other"), UploadOptions{})
	assert.ErrorContains(t, err, "already exists")
}
