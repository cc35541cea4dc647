package models

import "time"

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "Active"
	ProductStatusDraft    ProductStatus = "Draft"
	ProductStatusArchived ProductStatus = "Archived"
)

// ValidProductStatus reports whether s is one of the closed set of statuses.
func ValidProductStatus(s ProductStatus) bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	}
	return false
}

// Product is a catalogue entry. IDs look like "PROD-001" and are allocated
// by the catalog store; the slug is the public URL key.
type Product struct {
	ID          string        `gorm:"primaryKey;size:32" json:"id"`
	Slug        string        `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Name        string        `gorm:"size:255;not null;index" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Brand       string        `gorm:"size:255" json:"brand"`
	Category    string        `gorm:"size:255;index" json:"category"`
	Price       float64       `gorm:"not null;default:0" json:"price"`
	Stock       int           `gorm:"not null;default:0" json:"stock"`
	Status      ProductStatus `gorm:"type:VARCHAR(20);default:'Active';index" json:"status"`
	Image       string        `json:"image"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewProductInput is the payload accepted by the admin create endpoint.
type NewProductInput struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Brand       string        `json:"brand"`
	Category    string        `json:"category"`
	Price       float64       `json:"price"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	Image       string        `json:"image"`
}
