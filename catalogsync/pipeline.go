package catalogsync

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/store"
	"github.com/5h3r42/savzix-store-antigravity/textkit"
)

const (
	ModeDryRun = "dry-run"
	ModeRun    = "run"

	DefaultStock = 25
)

// Options is the CLI surface of the sync.
type Options struct {
	Mode         string
	XLSXPath     string
	ManifestPath string
	DefaultStock int
	Status       models.ProductStatus
	SummaryPath  string
	// PlaceholderImage is used when no primary image exists for a slug;
	// such rows are tracked in the summary.
	PlaceholderImage string
}

// Catalog is the slice of the catalog store the sync needs.
type Catalog interface {
	IDsAndSlugs() ([]store.IDSlug, error)
	UpsertBySlug(rows []models.Product) (int, error)
	CountBySlugs(slugs []string) (int64, error)
}

// CatalogRow is one spreadsheet row after normalisation, pre-upsert.
type CatalogRow struct {
	Name        string
	Description string
	Brand       string
	Category    string
	Price       float64
	Slug        string
	Image       string
}

// Summary is the JSON run report.
type Summary struct {
	Mode                  string               `json:"mode"`
	XLSXPath              string               `json:"xlsx_path"`
	ManifestPath          string               `json:"manifest_path"`
	RowsInSheet           int                  `json:"rows_in_sheet"`
	RowsParsed            int                  `json:"rows_parsed"`
	SkippedMissingName    int                  `json:"rows_skipped_missing_name"`
	SkippedMissingPrice   int                  `json:"rows_skipped_missing_price"`
	SkippedDuplicateSlug  int                  `json:"rows_skipped_duplicate_slug"`
	ProductsPrepared      int                  `json:"products_prepared"`
	ProductsUpserted      int                  `json:"products_upserted"`
	DefaultStock          int                  `json:"default_stock"`
	Status                models.ProductStatus `json:"status"`
	MissingPrimaryImages  []string             `json:"missing_primary_images"`
	SampleMissingPrimary  []string             `json:"sample_missing_primary_images"`
	CreatedAt             time.Time            `json:"created_at"`
}

// Run executes the sync against the given catalog.
func Run(catalog Catalog, opts Options) (*Summary, error) {
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}

	if _, err := os.Stat(opts.XLSXPath); err != nil {
		return nil, httperr.New(httperr.KindNotFound, "xlsx file not found: %s", opts.XLSXPath)
	}

	manifest, err := LoadManifest(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	primaryImages := PrimaryImageMap(manifest)

	rows, err := ReadRows(opts.XLSXPath)
	if err != nil {
		return nil, err
	}

	existing, err := catalog.IDsAndSlugs()
	if err != nil {
		return nil, err
	}
	existingBySlug := make(map[string]string, len(existing))
	existingIDs := make([]string, 0, len(existing))
	for _, e := range existing {
		existingBySlug[e.Slug] = e.ID
		existingIDs = append(existingIDs, e.ID)
	}
	nextID := newIDAllocator(existingIDs)

	summary := &Summary{
		Mode:         opts.Mode,
		XLSXPath:     opts.XLSXPath,
		ManifestPath: opts.ManifestPath,
		RowsInSheet:  len(rows),
		DefaultStock: opts.DefaultStock,
		Status:       opts.Status,
		CreatedAt:    time.Now().UTC(),
		// Empty lists serialize as [] rather than null.
		MissingPrimaryImages: []string{},
	}

	seenSlugs := make(map[string]bool)
	var catalogRows []CatalogRow
	for _, row := range rows {
		name := cellAt(row, colName)
		if name == "" {
			summary.SkippedMissingName++
			continue
		}

		price, ok := DetectPrice(row)
		if !ok {
			summary.SkippedMissingPrice++
			continue
		}

		slug := deriveSlug(row, name)
		if seenSlugs[slug] {
			summary.SkippedDuplicateSlug++
			continue
		}
		seenSlugs[slug] = true

		image, hasImage := primaryImages[slug]
		if !hasImage {
			image = opts.PlaceholderImage
			summary.MissingPrimaryImages = append(summary.MissingPrimaryImages, slug)
		}

		catalogRows = append(catalogRows, CatalogRow{
			Name:        name,
			Description: deriveDescription(row, name),
			Brand:       deriveBrand(row, name),
			Category:    deriveCategory(row),
			Price:       price,
			Slug:        slug,
			Image:       image,
		})
	}
	summary.RowsParsed = len(catalogRows)

	payload := make([]models.Product, 0, len(catalogRows))
	for _, row := range catalogRows {
		id, reused := existingBySlug[row.Slug]
		if !reused {
			id = nextID()
		}
		payload = append(payload, models.Product{
			ID:          id,
			Slug:        row.Slug,
			Name:        row.Name,
			Description: row.Description,
			Brand:       row.Brand,
			Category:    row.Category,
			Price:       roundMoney(row.Price),
			Stock:       opts.DefaultStock,
			Status:      opts.Status,
			Image:       row.Image,
		})
	}
	summary.ProductsPrepared = len(payload)

	if opts.Mode == ModeRun {
		upserted, err := catalog.UpsertBySlug(payload)
		if err != nil {
			return nil, err
		}
		summary.ProductsUpserted = upserted

		slugs := make([]string, len(payload))
		for i, p := range payload {
			slugs[i] = p.Slug
		}
		verified, err := catalog.CountBySlugs(slugs)
		if err != nil {
			return nil, err
		}
		if verified != int64(len(payload)) {
			return nil, httperr.New(httperr.KindPersistence,
				"verification mismatch: expected %d rows, found %d", len(payload), verified)
		}
	}

	sample := summary.MissingPrimaryImages
	if len(sample) > 20 {
		sample = sample[:20]
	}
	summary.SampleMissingPrimary = sample

	if err := writeSummary(opts.SummaryPath, summary); err != nil {
		return nil, err
	}

	log.Printf("Mode: %s", opts.Mode)
	log.Printf("Products prepared: %d", summary.ProductsPrepared)
	log.Printf("Skipped missing name: %d", summary.SkippedMissingName)
	log.Printf("Skipped missing price: %d", summary.SkippedMissingPrice)
	log.Printf("Skipped duplicate slug: %d", summary.SkippedDuplicateSlug)
	log.Printf("Missing primary images: %d", len(summary.MissingPrimaryImages))
	log.Printf("Summary: %s", opts.SummaryPath)
	if opts.Mode == ModeRun {
		log.Printf("Upserted %d products.", summary.ProductsUpserted)
	}

	return summary, nil
}

// deriveSlug prefers the folder-path column (last path segment), falling
// back to the product name.
func deriveSlug(row []string, name string) string {
	if rawFolder := cellAt(row, colFolderPath); rawFolder != "" {
		normalized := strings.ReplaceAll(rawFolder, "\\", "/")
		segments := strings.Split(normalized, "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i] != "" {
				return textkit.Slugify(segments[i])
			}
		}
	}
	return textkit.Slugify(name)
}

func deriveDescription(row []string, name string) string {
	for _, idx := range descriptionColumns {
		if value := cellAt(row, idx); value != "" {
			return value
		}
	}
	return "Premium " + name
}

func deriveBrand(row []string, name string) string {
	if brand := cellAt(row, colBrand); brand != "" {
		return brand
	}
	for _, word := range strings.Fields(name) {
		return word
	}
	return "Brand"
}

func deriveCategory(row []string) string {
	if category := cellAt(row, colCategory); category != "" {
		return category
	}
	return "General"
}

// newIDAllocator hands out "PROD-###" IDs avoiding every numeric suffix
// already in use. Existing ID sets can be sparse, so the cursor walks past
// used values rather than assuming max+1 is free.
func newIDAllocator(existingIDs []string) func() string {
	used := make(map[int]bool)
	max := 0
	for _, id := range existingIDs {
		if n, ok := store.NumericIDSuffix(id); ok {
			used[n] = true
			if n > max {
				max = n
			}
		}
	}

	cursor := max + 1
	return func() string {
		for used[cursor] {
			cursor++
		}
		value := cursor
		used[value] = true
		cursor++
		return store.FormatProductID(value)
	}
}

func roundMoney(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func validateOptions(opts *Options) error {
	if opts.Mode != ModeDryRun && opts.Mode != ModeRun {
		return httperr.New(httperr.KindValidation, "specify exactly one mode: --dry-run or --run")
	}
	if opts.XLSXPath == "" || opts.ManifestPath == "" || opts.SummaryPath == "" {
		return httperr.New(httperr.KindValidation, "xlsx, manifest and summary paths are required")
	}
	if opts.DefaultStock < 1 {
		return httperr.New(httperr.KindValidation, "default-stock must be a positive integer")
	}
	if !models.ValidProductStatus(opts.Status) {
		return httperr.New(httperr.KindValidation, "status must be one of: Active, Draft, Archived")
	}
	if opts.PlaceholderImage == "" {
		opts.PlaceholderImage = "/product_bottle.png"
	}
	return nil
}

func writeSummary(path string, summary *Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to create summary directory")
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to encode summary")
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return httperr.Wrap(httperr.KindConfiguration, err, "failed to write summary: %s", path)
	}
	return nil
}
