package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User mirrors the identity provider's account. The ID is the provider UID;
// we never store credentials ourselves.
type User struct {
	ID        string    `gorm:"primaryKey;size:128" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:255" json:"name"`
	Picture   string    `json:"picture"`
	Role      string    `gorm:"size:20;default:customer" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
