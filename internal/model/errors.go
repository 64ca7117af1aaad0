package model

import (
	"errors"
	"fmt"
)

// Error kinds for per-match processing. All of them abort the current match
// only; the orchestrator logs and moves on to the next link.
var (
	// ErrLookupMiss means a foreign id was absent from its reference table.
	ErrLookupMiss = errors.New("id not found in reference table")

	// ErrMatchNotFound means the payload's match id is absent from its
	// series' match list.
	ErrMatchNotFound = errors.New("match id not present in series")

	// ErrMalformedPayload means the payload is missing an expected
	// top-level section.
	ErrMalformedPayload = errors.New("malformed match payload")

	// ErrColumnMismatch means a flattened row does not line up with the
	// export schema.
	ErrColumnMismatch = errors.New("row width does not match export schema")
)

// SoftFailure marks a match that could not be fetched or carries no usable
// embedded data: the match is skipped, the run continues.
type SoftFailure struct {
	Reason string
}

func (e *SoftFailure) Error() string {
	return fmt.Sprintf("soft failure: %s", e.Reason)
}

// IsSoftFailure reports whether err is (or wraps) a SoftFailure.
func IsSoftFailure(err error) bool {
	var sf *SoftFailure
	return errors.As(err, &sf)
}
