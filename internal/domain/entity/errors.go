package entity

import (
	"errors"
	"fmt"
)

// ErrUnresolvedInput marks a read or write skipped because a required
// address, binding or amount was absent. It is an expected transient state
// (wallet not connected yet), logged at diagnostic level and never surfaced
// as a user-facing error.
var ErrUnresolvedInput = errors.New("required input is not resolved")

// EstimationError reports that gas estimation failed, including the retry.
type EstimationError struct {
	Method string
	Err    error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("gas estimation for %s failed: %v", e.Method, e.Err)
}

func (e *EstimationError) Unwrap() error { return e.Err }

// SubmissionError reports that the node or the signer rejected a
// state-changing call.
type SubmissionError struct {
	Method string
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission of %s rejected: %v", e.Method, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }
