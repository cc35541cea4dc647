package imageimport

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/5h3r42/savzix-store-antigravity/blobstore"
	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/textkit"
)

const (
	uploadAttempts    = 3
	uploadBackoffBase = 250 * time.Millisecond
)

// Pipeline turns a directory tree of per-product image folders into
// optimized, uploaded images plus a manifest. Construct it with the blob
// store it should upload through.
type Pipeline struct {
	Blobs blobstore.Store
}

// Run executes the import. Configuration errors (slug collisions, duplicate
// destinations, missing source) abort before any processing; per-image
// errors are collected into the summary. All three artifacts are written
// before a partial failure is reported.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	if err := ValidateOptions(&opts); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()

	plan, err := BuildPlan(opts.Source, opts.Prefix)
	if err != nil {
		return nil, err
	}

	log.Printf("Discovered %d images across %d folders. Mode: %s.",
		len(plan.Images), len(plan.Folders), opts.Mode)

	rows, failures := p.processAll(ctx, plan.Images, opts)

	sort.Slice(rows, func(i, j int) bool { return textkit.Less(rows[i].StoragePath, rows[j].StoragePath) })
	sort.Slice(failures, func(i, j int) bool { return textkit.Less(failures[i].StoragePath, failures[j].StoragePath) })

	var bytesBefore, bytesAfter int64
	for _, row := range rows {
		bytesBefore += row.BytesBefore
		bytesAfter += row.BytesAfter
	}

	perFolder := make(map[string]*FolderCount, len(plan.Folders))
	for _, folder := range plan.Folders {
		perFolder[folder.Slug] = &FolderCount{FolderName: folder.Name}
	}
	for _, row := range rows {
		if count, ok := perFolder[row.FolderSlug]; ok {
			count.Succeeded++
		}
	}
	for _, failure := range failures {
		if slug := folderSlugOfStoragePath(failure.StoragePath); slug != "" {
			if count, ok := perFolder[slug]; ok {
				count.Failed++
			}
		}
	}

	completedAt := time.Now().UTC()
	summary := &Summary{
		Mode:             opts.Mode,
		SourceRoot:       opts.Source,
		Bucket:           opts.Bucket,
		Prefix:           opts.Prefix,
		Quality:          opts.Quality,
		MaxDimension:     opts.MaxDimension,
		Concurrency:      opts.Concurrency,
		StartedAt:        startedAt,
		CompletedAt:      completedAt,
		DurationMs:       completedAt.Sub(startedAt).Milliseconds(),
		FoldersFound:     len(plan.Folders),
		DiscoveredImages: len(plan.Images),
		ProcessedImages:  len(rows) + len(failures),
		Succeeded:        len(rows),
		Failed:           len(failures),
		SkippedHidden:    plan.Stats.SkippedHidden,
		SkippedNonImage:  plan.Stats.SkippedNonImage,
		BytesBeforeTotal: bytesBefore,
		BytesAfterTotal:  bytesAfter,
		BytesSavedTotal:  bytesBefore - bytesAfter,
		ReductionPercent: ReductionPercent(bytesBefore, bytesAfter),
		PerFolderCounts:  perFolder,
		Failures:         failures,
		ManifestPath:     opts.ManifestPath,
		ManifestCSVPath:  opts.CSVPath,
	}

	// Artifacts are flushed before any failure signalling.
	if err := writeJSON(opts.ManifestPath, rows); err != nil {
		return summary, err
	}
	if err := writeJSON(opts.SummaryPath, summary); err != nil {
		return summary, err
	}
	if err := writeManifestCSV(opts.CSVPath, rows); err != nil {
		return summary, err
	}

	log.Printf("Succeeded: %d", len(rows))
	log.Printf("Failed: %d", len(failures))
	log.Printf("Bytes before: %.1f KB", float64(bytesBefore)/1024)
	log.Printf("Bytes after: %.1f KB", float64(bytesAfter)/1024)
	log.Printf("Saved: %.1f KB (%.2f%%)", float64(bytesBefore-bytesAfter)/1024, summary.ReductionPercent)
	log.Printf("Manifest: %s", opts.ManifestPath)
	log.Printf("Summary: %s", opts.SummaryPath)
	log.Printf("CSV: %s", opts.CSVPath)

	if len(failures) > 0 {
		return summary, httperr.New(httperr.KindPartial,
			"import completed with %d failures, check summary file", len(failures))
	}
	return summary, nil
}

// processAll runs the per-image work across a bounded pool of workers.
// Completion order is irrelevant; rows are re-sorted afterwards.
func (p *Pipeline) processAll(ctx context.Context, images []SourceImage, opts Options) ([]ManifestRow, []FailureRow) {
	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(images) {
		workers = len(images)
	}

	jobs := make(chan SourceImage)
	var mu sync.Mutex
	var rows []ManifestRow
	var failures []FailureRow

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for image := range jobs {
				row, err := p.processImage(ctx, image, opts)
				mu.Lock()
				if err != nil {
					failures = append(failures, FailureRow{
						SourcePath:  image.SourcePath,
						StoragePath: image.StoragePath,
						Error:       err.Error(),
					})
				} else {
					rows = append(rows, *row)
				}
				mu.Unlock()
			}
		}()
	}

	for _, image := range images {
		jobs <- image
	}
	close(jobs)
	wg.Wait()

	return rows, failures
}

// processImage does the full read → transcode → upload for one image. In
// dry-run mode the upload is skipped but every other manifest field is
// still computed.
func (p *Pipeline) processImage(ctx context.Context, image SourceImage, opts Options) (*ManifestRow, error) {
	result, err := transcodeFile(image.SourcePath, opts.MaxDimension, opts.Quality)
	if err != nil {
		return nil, err
	}

	var uploadedAt *string
	if opts.Mode == ModeRun {
		err := blobstore.WithRetry(ctx, uploadAttempts, uploadBackoffBase, func() error {
			return p.Blobs.Upload(ctx, image.StoragePath, result.data, blobstore.UploadOptions{
				ContentType:  "image/webp",
				CacheControl: "31536000",
				Overwrite:    true,
			})
		})
		if err != nil {
			return nil, err
		}
		stamp := time.Now().UTC().Format(time.RFC3339)
		uploadedAt = &stamp
	}

	return &ManifestRow{
		SourcePath:  image.SourcePath,
		FolderName:  image.FolderName,
		FolderSlug:  image.FolderSlug,
		Sequence:    image.Sequence,
		StoragePath: image.StoragePath,
		PublicURL:   p.Blobs.PublicURL(image.StoragePath),
		Width:       result.width,
		Height:      result.height,
		BytesBefore: result.bytesBefore,
		BytesAfter:  int64(len(result.data)),
		SHA1:        result.sha1,
		UploadedAt:  uploadedAt,
	}, nil
}

// folderSlugOfStoragePath pulls the folder slug out of
// "{prefix}/{slug}/{slug}-NN.webp".
func folderSlugOfStoragePath(storagePath string) string {
	segments := strings.Split(storagePath, "/")
	if len(segments) >= 2 {
		return segments[len(segments)-2]
	}
	return ""
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to create artifact directory for %s", path)
	}
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to encode %s", path)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to write %s", path)
	}
	return nil
}

// manifestCSVHeader matches the ManifestRow JSON field order so the CSV is
// a faithful spreadsheet mirror of the manifest.
var manifestCSVHeader = []string{
	"source_path", "folder_name", "folder_slug", "sequence", "storage_path",
	"public_url", "width", "height", "bytes_before", "bytes_after", "sha1", "uploaded_at",
}

func writeManifestCSV(path string, rows []ManifestRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to create artifact directory for %s", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to write %s", path)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(manifestCSVHeader); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to write %s", path)
	}
	for _, row := range rows {
		uploadedAt := ""
		if row.UploadedAt != nil {
			uploadedAt = *row.UploadedAt
		}
		record := []string{
			row.SourcePath, row.FolderName, row.FolderSlug, row.Sequence, row.StoragePath,
			row.PublicURL,
			strconv.Itoa(row.Width), strconv.Itoa(row.Height),
			strconv.FormatInt(row.BytesBefore, 10), strconv.FormatInt(row.BytesAfter, 10),
			row.SHA1, uploadedAt,
		}
		if err := w.Write(record); err != nil {
			return httperr.Wrap(httperr.KindConfiguration, err, "failed to write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to write %s", path)
	}
	return nil
}

// ValidateOptions rejects bad CLI input before the pipeline starts.
func ValidateOptions(opts *Options) error {
	if opts.Mode != ModeDryRun && opts.Mode != ModeRun {
		return httperr.New(httperr.KindValidation, "specify exactly one mode: --dry-run or --run")
	}
	if opts.Source == "" {
		return httperr.New(httperr.KindValidation, "source is required")
	}
	if opts.Bucket == "" {
		return httperr.New(httperr.KindValidation, "bucket is required")
	}
	if opts.Prefix == "" {
		return httperr.New(httperr.KindValidation, "prefix is required")
	}
	if opts.Quality < 1 || opts.Quality > 100 {
		return httperr.New(httperr.KindValidation, "quality must be between 1 and 100")
	}
	if opts.Concurrency < 1 {
		return httperr.New(httperr.KindValidation, "concurrency must be a positive integer")
	}
	if opts.MaxDimension < 1 {
		return httperr.New(httperr.KindValidation, "max-dimension must be a positive integer")
	}
	if opts.ManifestPath == "" || opts.SummaryPath == "" || opts.CSVPath == "" {
		return httperr.New(httperr.KindValidation, "manifest, summary and csv paths are required")
	}
	return nil
}
