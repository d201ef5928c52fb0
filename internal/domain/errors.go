package domain

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrPackageNotFound = errors.New("package not found")
	ErrCompanyNotFound = errors.New("delivery company not found")
	ErrTypeNotFound    = errors.New("package type not found")

	ErrUpstreamUnavailable = errors.New("rate source unavailable")
	ErrMalformedResponse   = errors.New("rate source returned malformed response")
	ErrRateUnavailable     = errors.New("usd rate unavailable")
)
