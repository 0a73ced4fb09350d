package service

import "errors"

// Sentinel errors returned by the services. The HTTP layer maps each one to a
// status code and a detail message.
var (
	ErrEmailTaken       = errors.New("email is already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidResetCode = errors.New("invalid or expired reset code")

	ErrNameRequired      = errors.New("name is required")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryNameTaken = errors.New("a category with that name already exists")
	ErrCategoryInUse     = errors.New("category has items assigned to it")
	ErrUnknownCategory   = errors.New("the specified category does not exist")

	ErrItemNotFound     = errors.New("item not found")
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrNonPositivePrice = errors.New("price must be greater than zero")
)
