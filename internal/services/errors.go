package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrOutOfStock = errors.New("product out of stock")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrValidation = errors.New("invalid input")
	ErrBadCreds   = errors.New("invalid email or password")

	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)
	ErrCartLineNotFound = fmt.Errorf("cart line %w", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("order %w", ErrNotFound)
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
