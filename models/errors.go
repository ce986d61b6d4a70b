package models

import "fmt"

// MissingContentError means a detail page lacked the description
// element. The listing cannot be evaluated; the run continues with the
// next one.
type MissingContentError struct {
	Title string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("no description in listing %q", e.Title)
}

// LookupUnavailableError wraps a geocoding or network failure. Callers
// recover it as "location unknown" rather than failing the listing.
type LookupUnavailableError struct {
	Op  string
	Err error
}

func (e *LookupUnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Op, e.Err)
}

func (e *LookupUnavailableError) Unwrap() error { return e.Err }

// MalformedListingError means search-page extraction produced an
// unparsable field. The row is skipped.
type MalformedListingError struct {
	Field string
	Err   error
}

func (e *MalformedListingError) Error() string {
	return fmt.Sprintf("malformed listing %s: %v", e.Field, e.Err)
}

func (e *MalformedListingError) Unwrap() error { return e.Err }
