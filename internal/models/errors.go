package models

import "errors"

// Domain errors shared by the repository and service layers
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("access forbidden")
	ErrInvoiceNotOpen    = errors.New("invoice is not open")
	ErrInvalidTransition = errors.New("invalid invoice status transition")
	ErrLimitExceeded     = errors.New("card limit exceeded")
)
