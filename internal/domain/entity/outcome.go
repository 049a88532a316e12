package entity

// TxHandle identifies a transaction accepted by the network. Acceptance is
// acknowledgment of the broadcast only; confirmation depth is out of scope.
type TxHandle string

// OutcomeStatus enumerates the states of one submission.
type OutcomeStatus int

const (
	// OutcomePending means the submission has not reached a terminal state.
	OutcomePending OutcomeStatus = iota
	// OutcomeSubmitted means the network accepted the transaction.
	OutcomeSubmitted
	// OutcomeFailed means the node or signer rejected the transaction.
	OutcomeFailed
)

func (s OutcomeStatus) String() string {
	switch s {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeFailed:
		return "failed"
	default:
		return "pending"
	}
}

// TransactionOutcome records how a submission ended. A pending outcome
// transitions to exactly one terminal state; callers always observe either
// Submitted or Failed.
type TransactionOutcome struct {
	Status OutcomeStatus
	Handle TxHandle
	Reason error
}

// PendingOutcome is the initial state of a submission.
func PendingOutcome() TransactionOutcome {
	return TransactionOutcome{Status: OutcomePending}
}

// SubmittedOutcome marks acceptance by the network.
func SubmittedOutcome(handle TxHandle) TransactionOutcome {
	return TransactionOutcome{Status: OutcomeSubmitted, Handle: handle}
}

// FailedOutcome marks a rejected submission with its cause.
func FailedOutcome(reason error) TransactionOutcome {
	return TransactionOutcome{Status: OutcomeFailed, Reason: reason}
}

// Terminal reports whether the outcome can no longer change.
func (o TransactionOutcome) Terminal() bool {
	return o.Status != OutcomePending
}
