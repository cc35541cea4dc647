package store

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/5h3r42/savzix-store-antigravity/httperr"
	"github.com/5h3r42/savzix-store-antigravity/models"
	"github.com/5h3r42/savzix-store-antigravity/textkit"
)

// Catalog is the persistence and query interface over products. It is
// constructed once in main (or a CLI) and handed to whatever needs it; no
// package-level state.
type Catalog struct {
	db *gorm.DB

	// PlaceholderImage is used when a new product has no image yet.
	PlaceholderImage string
}

func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db, PlaceholderImage: "/product_bottle.png"}
}

// ListActive returns the storefront view: Active products with stock,
// newest first.
func (c *Catalog) ListActive() ([]models.Product, error) {
	var products []models.Product
	err := c.db.
		Where("status = ? AND stock > 0", models.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load products")
	}
	return products, nil
}

// ListAll returns every product regardless of status or stock, newest
// first. Callers are responsible for restricting this to admins.
func (c *Catalog) ListAll() ([]models.Product, error) {
	var products []models.Product
	err := c.db.Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load products")
	}
	return products, nil
}

// ProductFilter narrows the admin listing.
type ProductFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ListFiltered is the admin listing with search/category/price filters,
// newest first.
func (c *Catalog) ListFiltered(f ProductFilter) ([]models.Product, error) {
	query := c.db.Model(&models.Product{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ? OR brand ILIKE ?", like, like, like)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load products")
	}
	return products, nil
}

// GetBySlug returns the product for slug, or nil when absent.
func (c *Catalog) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := c.db.Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load product")
	}
	return &product, nil
}

// Create validates input, derives a unique slug and the next sequential
// product ID, and inserts the row.
func (c *Catalog) Create(input models.NewProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	description := strings.TrimSpace(input.Description)
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "General"
	}
	brand := strings.TrimSpace(input.Brand)
	image := strings.TrimSpace(input.Image)
	if image == "" {
		image = c.PlaceholderImage
	}
	status := input.Status
	if !models.ValidProductStatus(status) {
		status = models.ProductStatusActive
	}

	if name == "" {
		return nil, httperr.New(httperr.KindValidation, "product name is required")
	}
	if description == "" {
		return nil, httperr.New(httperr.KindValidation, "product description is required")
	}
	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price < 0 {
		return nil, httperr.New(httperr.KindValidation, "price must be a valid non-negative number")
	}
	if input.Stock < 0 {
		return nil, httperr.New(httperr.KindValidation, "stock must be a valid non-negative integer")
	}

	slug, err := c.uniqueSlug(textkit.Slugify(name))
	if err != nil {
		return nil, err
	}
	id, err := c.nextProductID()
	if err != nil {
		return nil, err
	}

	product := models.Product{
		ID:          id,
		Slug:        slug,
		Name:        name,
		Description: description,
		Brand:       brand,
		Category:    category,
		Price:       round2(input.Price),
		Stock:       input.Stock,
		Status:      status,
		Image:       image,
	}

	if err := c.db.Create(&product).Error; err != nil {
		if isPermissionDenied(err) {
			return nil, httperr.New(httperr.KindPermission, "you do not have permission to create products")
		}
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to create product")
	}
	return &product, nil
}

// Update applies an admin edit to an existing product.
func (c *Catalog) Update(id string, input models.NewProductInput) (*models.Product, error) {
	var product models.Product
	err := c.db.Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.New(httperr.KindNotFound, "product not found: %s", id)
	}
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load product")
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		product.Description = desc
	}
	if brand := strings.TrimSpace(input.Brand); brand != "" {
		product.Brand = brand
	}
	if cat := strings.TrimSpace(input.Category); cat != "" {
		product.Category = cat
	}
	if img := strings.TrimSpace(input.Image); img != "" {
		product.Image = img
	}
	if models.ValidProductStatus(input.Status) {
		product.Status = input.Status
	}
	if math.IsNaN(input.Price) || math.IsInf(input.Price, 0) || input.Price < 0 {
		return nil, httperr.New(httperr.KindValidation, "price must be a valid non-negative number")
	}
	if input.Stock < 0 {
		return nil, httperr.New(httperr.KindValidation, "stock must be a valid non-negative integer")
	}
	product.Price = round2(input.Price)
	product.Stock = input.Stock

	if err := c.db.Save(&product).Error; err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to update product")
	}
	return &product, nil
}

// UpsertBySlug bulk inserts-or-updates rows keyed on slug. Re-running with
// identical input changes nothing, which is what makes catalog sync
// idempotent.
func (c *Catalog) UpsertBySlug(rows []models.Product) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	err := c.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "description", "brand", "category",
			"price", "stock", "status", "image", "updated_at",
		}),
	}).Create(&rows).Error
	if err != nil {
		return 0, httperr.Wrap(httperr.KindPersistence, err, "failed to upsert products")
	}
	return len(rows), nil
}

// IDSlug is the projection catalog sync needs to reuse IDs across runs.
type IDSlug struct {
	ID   string
	Slug string
}

// IDsAndSlugs lists every product's id and slug.
func (c *Catalog) IDsAndSlugs() ([]IDSlug, error) {
	var rows []IDSlug
	err := c.db.Model(&models.Product{}).Select("id", "slug").Find(&rows).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load existing products")
	}
	return rows, nil
}

// CountBySlugs reports how many products exist for the given slugs; catalog
// sync uses it to verify an upsert landed completely.
func (c *Catalog) CountBySlugs(slugs []string) (int64, error) {
	if len(slugs) == 0 {
		return 0, nil
	}
	var count int64
	err := c.db.Model(&models.Product{}).Where("slug IN ?", slugs).Count(&count).Error
	if err != nil {
		return 0, httperr.Wrap(httperr.KindPersistence, err, "failed to verify products")
	}
	return count, nil
}

// FindBySlugsOrIDs loads products whose slug or id appears in keys. Both
// lookups run because the storefront addresses products by slug while the
// admin panel uses raw IDs.
func (c *Catalog) FindBySlugsOrIDs(keys []string) ([]models.Product, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	var products []models.Product
	err := c.db.Where("slug IN ? OR id IN ?", keys, keys).Find(&products).Error
	if err != nil {
		return nil, httperr.Wrap(httperr.KindPersistence, err, "failed to load product information for checkout")
	}
	return products, nil
}

// uniqueSlug disambiguates base with numeric suffixes until no product
// holds the candidate.
func (c *Catalog) uniqueSlug(base string) (string, error) {
	candidate := base
	for suffix := 2; ; suffix++ {
		var count int64
		if err := c.db.Model(&models.Product{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", httperr.Wrap(httperr.KindPersistence, err, "failed to generate product slug")
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// nextProductID scans the numeric suffixes of existing IDs and increments
// the maximum. Gaps are not reused here; only catalog sync backfills them.
func (c *Catalog) nextProductID() (string, error) {
	var ids []string
	if err := c.db.Model(&models.Product{}).Pluck("id", &ids).Error; err != nil {
		return "", httperr.Wrap(httperr.KindPersistence, err, "failed to generate product ID")
	}

	max := 0
	for _, id := range ids {
		if n, ok := NumericIDSuffix(id); ok && n > max {
			max = n
		}
	}
	return FormatProductID(max + 1), nil
}

// NumericIDSuffix extracts the digits of an ID like "PROD-042".
func NumericIDSuffix(id string) (int, bool) {
	var digits strings.Builder
	for _, r := range id {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatProductID renders a numeric ID as "PROD-###", zero-padded to three
// digits but never truncated.
func FormatProductID(n int) string {
	return fmt.Sprintf("PROD-%03d", n)
}

func isPermissionDenied(err error) bool {
	var pgErr *pgconn.PgError
	// 42501 is insufficient_privilege; row-level security rejections
	// surface with this code.
	return errors.As(err, &pgErr) && pgErr.Code == "42501"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
