package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrValidation is the parent of every client-input failure; the
	// specific errors below wrap it so callers can match either.
	ErrValidation = errors.New("validation failed")

	ErrInvalidID          = fmt.Errorf("%w: invalid id", ErrValidation)
	ErrInvalidCategory    = fmt.Errorf("%w: invalid category", ErrValidation)
	ErrInvalidProduct     = fmt.Errorf("%w: invalid product", ErrValidation)
	ErrInvalidUser        = fmt.Errorf("%w: invalid user", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrValidation)
	ErrEmailTaken         = fmt.Errorf("%w: email is already registered", ErrValidation)
	ErrEmptyOrder         = fmt.Errorf("%w: order has no items", ErrValidation)

	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
)
