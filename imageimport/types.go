package imageimport

import (
	"math"
	"time"
)

const (
	ModeDryRun = "dry-run"
	ModeRun    = "run"
)

// Options is the full CLI surface of the import.
type Options struct {
	Mode         string
	Source       string
	Bucket       string
	Prefix       string
	Quality      int
	Concurrency  int
	MaxDimension int
	ManifestPath string
	SummaryPath  string
	CSVPath      string
}

// Defaults for everything but the mode, which must be chosen explicitly.
const (
	DefaultBucket       = "product-images"
	DefaultPrefix       = "products"
	DefaultQuality      = 80
	DefaultConcurrency  = 6
	DefaultMaxDimension = 1200
)

// Folder is one immediate subdirectory of the source root; each folder is
// one product.
type Folder struct {
	Name string
	Path string
	Slug string
}

// SourceImage is one discovered file with its computed destination.
type SourceImage struct {
	SourcePath  string
	FolderName  string
	FolderSlug  string
	Sequence    string // 2-digit, 1-based, by natural filename order
	StoragePath string
}

// ManifestRow is the persisted record for one successfully processed image.
type ManifestRow struct {
	SourcePath  string  `json:"source_path"`
	FolderName  string  `json:"folder_name"`
	FolderSlug  string  `json:"folder_slug"`
	Sequence    string  `json:"sequence"`
	StoragePath string  `json:"storage_path"`
	PublicURL   string  `json:"public_url"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	BytesBefore int64   `json:"bytes_before"`
	BytesAfter  int64   `json:"bytes_after"`
	SHA1        string  `json:"sha1"`
	UploadedAt  *string `json:"uploaded_at"` // null in dry-run
}

// FailureRow records one per-image failure; failures never abort the batch.
type FailureRow struct {
	SourcePath  string `json:"source_path"`
	StoragePath string `json:"storage_path"`
	Error       string `json:"error"`
}

// FolderCount is the per-folder success/failure breakdown in the summary.
type FolderCount struct {
	FolderName string `json:"folder_name"`
	Succeeded  int    `json:"succeeded"`
	Failed     int    `json:"failed"`
}

// Summary is the JSON run report written next to the manifest.
type Summary struct {
	Mode             string                  `json:"mode"`
	SourceRoot       string                  `json:"source_root"`
	Bucket           string                  `json:"bucket"`
	Prefix           string                  `json:"prefix"`
	Quality          int                     `json:"quality"`
	MaxDimension     int                     `json:"max_dimension"`
	Concurrency      int                     `json:"concurrency"`
	StartedAt        time.Time               `json:"started_at"`
	CompletedAt      time.Time               `json:"completed_at"`
	DurationMs       int64                   `json:"duration_ms"`
	FoldersFound     int                     `json:"folders_discovered"`
	DiscoveredImages int                     `json:"discovered_images"`
	ProcessedImages  int                     `json:"processed_images"`
	Succeeded        int                     `json:"succeeded"`
	Failed           int                     `json:"failed"`
	SkippedHidden    int                     `json:"skipped_hidden"`
	SkippedNonImage  int                     `json:"skipped_non_image"`
	BytesBeforeTotal int64                   `json:"bytes_before_total"`
	BytesAfterTotal  int64                   `json:"bytes_after_total"`
	BytesSavedTotal  int64                   `json:"bytes_saved_total"`
	ReductionPercent float64                 `json:"reduction_percent"`
	PerFolderCounts  map[string]*FolderCount `json:"per_folder_counts"`
	Failures         []FailureRow            `json:"failures"`
	ManifestPath     string                  `json:"manifest_path"`
	ManifestCSVPath  string                  `json:"manifest_csv_path"`
}

// ReductionPercent computes the byte-savings percentage, rounded to two
// decimals; zero when nothing was measured.
func ReductionPercent(before, after int64) float64 {
	if before <= 0 {
		return 0
	}
	percent := float64(before-after) / float64(before) * 100
	return math.Round(percent*100) / 100
}
