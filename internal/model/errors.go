package model

import "errors"

// Application-wide errors.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input data")
	ErrNotConfigured = errors.New("service is not configured")
	ErrBrandRequired = errors.New("brand is required")
	ErrNoShots       = errors.New("script has no shot breakdown")
)
