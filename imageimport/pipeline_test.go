package imageimport

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5h3r42/savzix-store-antigravity/blobstore"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
)

// fakeBlobs records uploads and can be told to fail specific paths.
type fakeBlobs struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	failPath string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{uploads: map[string][]byte{}}
}

func (f *fakeBlobs) Upload(_ context.Context, path string, data []byte, _ blobstore.UploadOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPath != "" && path == f.failPath {
		return errors.New("simulated upload outage")
	}
	f.uploads[path] = data
	return nil
}

func (f *fakeBlobs) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 255), G: uint8(y % 255), B: 128, A: 255})
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func testOptions(t *testing.T, source, mode string) Options {
	artifacts := t.TempDir()
	return Options{
		Mode:         mode,
		Source:       source,
		Bucket:       DefaultBucket,
		Prefix:       DefaultPrefix,
		Quality:      DefaultQuality,
		Concurrency:  2,
		MaxDimension: 64,
		ManifestPath: filepath.Join(artifacts, "manifest.json"),
		SummaryPath:  filepath.Join(artifacts, "summary.json"),
		CSVPath:      filepath.Join(artifacts, "manifest.csv"),
	}
}

func TestPipelineDryRunComputesEverythingButSkipsUpload(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Lavender Soap", "front.png"), 200, 100)
	writePNG(t, filepath.Join(root, "Lavender Soap", "back.png"), 32, 32)

	blobs := newFakeBlobs()
	pipeline := &Pipeline{Blobs: blobs}

	summary, err := pipeline.Run(context.Background(), testOptions(t, root, ModeDryRun))
	require.NoError(t, err)

	assert.Empty(t, blobs.uploads, "dry-run must not upload")
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)

	var rows []ManifestRow
	raw, err := os.ReadFile(summary.ManifestPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)

	// Rows are sorted by storage path; back.png sorts first by filename.
	assert.Equal(t, "products/lavender-soap/lavender-soap-01.webp", rows[0].StoragePath)
	assert.Nil(t, rows[0].UploadedAt)
	assert.NotEmpty(t, rows[0].SHA1)
	assert.Equal(t, "https://cdn.example.com/products/lavender-soap/lavender-soap-01.webp", rows[0].PublicURL)

	// 200x100 fits inside 64: longest side becomes 64.
	for _, row := range rows {
		assert.LessOrEqual(t, row.Width, 64)
		assert.LessOrEqual(t, row.Height, 64)
		assert.Positive(t, row.BytesAfter)
	}

	// CSV mirror has a header plus one line per row.
	csvRaw, err := os.ReadFile(summary.ManifestCSVPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvRaw)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "source_path,folder_name,folder_slug,sequence"))
}

func TestPipelineRunUploadsAndStamps(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Candle", "only.png"), 16, 16)

	blobs := newFakeBlobs()
	pipeline := &Pipeline{Blobs: blobs}

	summary, err := pipeline.Run(context.Background(), testOptions(t, root, ModeRun))
	require.NoError(t, err)

	require.Len(t, blobs.uploads, 1)
	assert.Contains(t, blobs.uploads, "products/candle/candle-01.webp")
	assert.Equal(t, 1, summary.Succeeded)

	var rows []ManifestRow
	raw, err := os.ReadFile(summary.ManifestPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 1)
	assert.NotNil(t, rows[0].UploadedAt)
}

func TestPipelineIsolatesPerImageFailures(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Candle", "good.png"), 16, 16)
	// Valid extension, invalid content: transcode fails for this one only.
	touch(t, filepath.Join(root, "Candle", "broken.jpg"))

	blobs := newFakeBlobs()
	pipeline := &Pipeline{Blobs: blobs}
	opts := testOptions(t, root, ModeRun)

	summary, err := pipeline.Run(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, httperr.KindPartial, httperr.KindOf(err))

	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.NotEmpty(t, summary.Failures[0].Error)

	// Artifacts still land on partial failure.
	_, statErr := os.Stat(opts.SummaryPath)
	assert.NoError(t, statErr)
	_, statErr = os.Stat(opts.ManifestPath)
	assert.NoError(t, statErr)

	// Per-folder counts see both outcomes.
	count := summary.PerFolderCounts["candle"]
	require.NotNil(t, count)
	assert.Equal(t, 1, count.Succeeded)
	assert.Equal(t, 1, count.Failed)
}

func TestPipelineUploadFailureIsReportedNotFatal(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Candle", "only.png"), 16, 16)

	blobs := newFakeBlobs()
	blobs.failPath = "products/candle/candle-01.webp"
	pipeline := &Pipeline{Blobs: blobs}

	summary, err := pipeline.Run(context.Background(), testOptions(t, root, ModeRun))
	require.Error(t, err)
	assert.Equal(t, httperr.KindPartial, httperr.KindOf(err))
	assert.Equal(t, 0, summary.Succeeded)
	require.Len(t, summary.Failures, 1)
	assert.Contains(t, summary.Failures[0].Error, "simulated upload outage")
}

func TestPipelineRejectsOutOfRangeOptions(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "Candle", "only.png"), 16, 16)

	blobs := newFakeBlobs()
	pipeline := &Pipeline{Blobs: blobs}

	opts := testOptions(t, root, ModeRun)
	opts.Quality = 150

	summary, err := pipeline.Run(context.Background(), opts)
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
	assert.ErrorContains(t, err, "quality")
	assert.Nil(t, summary)
	assert.Empty(t, blobs.uploads, "invalid options must abort before any processing")

	opts = testOptions(t, root, ModeRun)
	opts.MaxDimension = -1
	_, err = pipeline.Run(context.Background(), opts)
	require.Error(t, err)
	assert.ErrorContains(t, err, "max-dimension")
}

func TestReductionPercent(t *testing.T) {
	assert.Equal(t, 60.0, ReductionPercent(1_000_000, 400_000))
	assert.Equal(t, 0.0, ReductionPercent(0, 0))
	assert.Equal(t, 33.33, ReductionPercent(3, 2))
}

func TestValidateOptions(t *testing.T) {
	valid := Options{
		Mode: ModeDryRun, Source: "/src", Bucket: "b", Prefix: "p",
		Quality: 80, Concurrency: 4, MaxDimension: 1200,
		ManifestPath: "m.json", SummaryPath: "s.json", CSVPath: "m.csv",
	}
	require.NoError(t, ValidateOptions(&valid))

	bad := valid
	bad.Mode = "both"
	assert.ErrorContains(t, ValidateOptions(&bad), "--dry-run or --run")

	bad = valid
	bad.Quality = 101
	assert.ErrorContains(t, ValidateOptions(&bad), "quality")

	bad = valid
	bad.Concurrency = 0
	assert.ErrorContains(t, ValidateOptions(&bad), "concurrency")
}
