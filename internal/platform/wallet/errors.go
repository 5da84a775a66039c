package wallet

import "errors"

var (
	// Purchase validation errors
	ErrInvalidAmount = errors.New("purchase amount must be positive")
	ErrMissingTitle  = errors.New("purchase title is required")
)
