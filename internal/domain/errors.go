// backend-go/internal/domain/errors.go
package domain

import "errors"

var (
	// ErrInvalidPeriod covers bad or missing custom period bounds.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrUnknownChannel is returned for channel names outside the closed set.
	ErrUnknownChannel = errors.New("unknown channel")
	// ErrMalformedRow marks a raw row whose shape matches no known layout.
	// The row is dropped; the batch continues.
	ErrMalformedRow = errors.New("malformed row")
	// ErrMissingDate marks a row without a resolvable date. Date-less rows
	// never reach dedup or aggregation.
	ErrMissingDate = errors.New("missing date")
)
