package usecase

import "errors"

// Error taxonomy, mapped once at the HTTP boundary:
// ErrNotFound -> 404; ErrInvalidInput and the business-rule errors
// (ErrUnavailable, ErrInvalidState, ErrSessionExpired) -> 400; anything
// else -> 500.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnavailable    = errors.New("product not available in requested quantity")
	ErrInvalidState   = errors.New("invalid state")
	ErrSessionExpired = errors.New("checkout session has expired")
)
