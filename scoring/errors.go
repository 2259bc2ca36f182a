package scoring

import (
	"errors"
	"fmt"
)

// ErrAlreadyScored rejects a scoring attempt on a race whose results were
// already processed. The caller's earlier run succeeded; it must not re-run.
var ErrAlreadyScored = errors.New("race already scored")

// NotReadyError means the eligibility gate's preconditions are unmet.
// Recoverable: the caller should retry after the deadline or once data lands.
type NotReadyError struct {
	Status string // human-readable gate status
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("race not ready to score: %s", e.Status)
}

// NotFoundError means a referenced record does not exist in storage.
type NotFoundError struct {
	Kind string // "race", "prediction"
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// DataUnavailableError means the upstream provider failed or returned
// malformed data during derivation. Fatal for this attempt; nothing was
// written, so the race stays retryable.
type DataUnavailableError struct {
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("race data unavailable: %v", e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
