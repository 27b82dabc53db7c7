package feed

import "fmt"

// FetchError is returned when the feed answers with a non-success status.
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("vatsim fetch failed: %d", e.StatusCode)
}

// NotFoundError is returned when no pilot in the snapshot carries the
// requested callsign.
type NotFoundError struct {
	Callsign string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("callsign %s not found on network", e.Callsign)
}
