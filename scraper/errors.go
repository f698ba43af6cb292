package scraper

import (
	"errors"
	"fmt"
)

// ErrPriceNotFound means every extraction tier was exhausted without a
// positive price. The observation must not be persisted.
var ErrPriceNotFound = errors.New("no price found on page")

// ErrParseFailed means the fetched content could not be parsed into a
// document tree.
var ErrParseFailed = errors.New("failed to parse page content")

// FailureKind classifies a fetch failure.
type FailureKind string

const (
	FailureTimeout    FailureKind = "timeout"
	FailureConnection FailureKind = "connection_error"
	FailureHTTPStatus FailureKind = "http_status"
	FailureOther      FailureKind = "other"
)

// FetchError is a collaborator-boundary failure. It is surfaced to
// callers unchanged and never retried by the core.
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	URL        string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureHTTPStatus:
		return fmt.Sprintf("fetch failed for %s: unexpected status %d", e.URL, e.StatusCode)
	case FailureTimeout:
		return fmt.Sprintf("fetch timed out for %s: %v", e.URL, e.Err)
	case FailureConnection:
		return fmt.Sprintf("connection failed for %s: %v", e.URL, e.Err)
	default:
		return fmt.Sprintf("fetch failed for %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
