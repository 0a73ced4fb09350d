package store

import (
	"errors"
	"strings"

	"github.com/Davidshtp/Dashboard/internal/client/gateway"
	"github.com/Davidshtp/Dashboard/internal/models"
)

// Validation errors raised before any network call is attempted.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrQuantityNegative  = errors.New("quantity cannot be negative")
	ErrPriceNotPositive  = errors.New("price must be greater than zero")
	ErrCategoryRequired  = errors.New("select a category")
	ErrCategoryUnknown   = errors.New("the selected category does not exist")
	ErrCategoryDuplicate = errors.New("a category with that name already exists")
	ErrCategoryInUse     = errors.New("category has items assigned to it")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordUnchanged = errors.New("new password must differ from the current one")
	ErrEmailInvalid      = errors.New("email must contain @")
	ErrEmailUnchanged    = errors.New("new email must differ from the current one")
)

// ValidateCategoryName checks that a category name is non-blank and does not
// collide, ignoring case, with any existing category other than selfID.
func ValidateCategoryName(name string, existing []models.Category, selfID string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	for _, c := range existing {
		if c.ID != selfID && strings.EqualFold(c.Name, name) {
			return ErrCategoryDuplicate
		}
	}
	return nil
}

// ValidateItemInput checks an item's fields and its category reference.
// categoryExists resolves whether the referenced category is known locally.
func ValidateItemInput(in gateway.ItemInput, categoryExists func(id string) bool) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.Quantity < 0 {
		return ErrQuantityNegative
	}
	if !in.Price.IsPositive() {
		return ErrPriceNotPositive
	}
	if in.CategoryID == "" {
		return ErrCategoryRequired
	}
	if categoryExists != nil && !categoryExists(in.CategoryID) {
		return ErrCategoryUnknown
	}
	return nil
}

// ValidateNewPassword checks the password rules shared by reset and change
// flows: minimum length and confirmation match.
func ValidateNewPassword(newPassword, confirm string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidatePasswordChange additionally requires the new password to differ
// from the current one.
func ValidatePasswordChange(current, newPassword, confirm string) error {
	if err := ValidateNewPassword(newPassword, confirm); err != nil {
		return err
	}
	if newPassword == current {
		return ErrPasswordUnchanged
	}
	return nil
}

// ValidateNewEmail checks the email rules for a change: a plausible address
// that differs from the current one.
func ValidateNewEmail(current, newEmail string) error {
	newEmail = strings.TrimSpace(newEmail)
	if !strings.Contains(newEmail, "@") {
		return ErrEmailInvalid
	}
	if strings.EqualFold(newEmail, current) {
		return ErrEmailUnchanged
	}
	return nil
}
