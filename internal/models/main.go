// Package models defines the core data structures for users, categories
// and inventory items.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents an application user with credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// Name is the user's first name.
	Name string `json:"name"`
	// LastName is the user's last name.
	LastName string `json:"lastName"`
	// Email is the unique login address for the user.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash []byte `json:"-"`
	// Avatar is an optional image data URI shown on the profile.
	Avatar string `json:"avatar,omitempty"`
	// ResetCode is the pending password-recovery code, if one was requested.
	ResetCode string `json:"-"`
	// ResetCodeExpiresAt bounds the validity of ResetCode.
	ResetCodeExpiresAt time.Time `json:"-"`
}

// Category groups inventory items under a unique, case-insensitive name.
type Category struct {
	// ID is the unique identifier for the category.
	ID string `json:"id"`
	// Name is the display name, unique across categories ignoring case.
	Name string `json:"name"`
}

// Item is a single inventory entry. Every item belongs to a category.
type Item struct {
	// ID is the unique identifier for the item.
	ID string `json:"id"`
	// Name is the item's display name.
	Name string `json:"name"`
	// Description holds free-form notes about the item.
	Description string `json:"description"`
	// Quantity is the stock count, never negative.
	Quantity int `json:"quantity"`
	// Price is the unit price, strictly positive.
	Price decimal.Decimal `json:"price"`
	// CategoryID references the owning Category.
	CategoryID string `json:"categoryId"`
}
