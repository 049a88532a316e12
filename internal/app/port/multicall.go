package port

import (
	"context"

	"token_sale/internal/domain/entity"
)

// CallResult is the pending result of a batched read. Result stays absent
// while the batch is pending or has failed; callers must tolerate an
// absent result indefinitely and must not block on it.
type CallResult interface {
	Result() entity.Optional[[]any]
}

// MulticallClient aggregates read calls into a single round-trip.
type MulticallClient interface {
	// Queue registers a read for the next flush and returns its result slot.
	Queue(binding ContractBinding, method string, args ...any) CallResult

	// Flush executes all queued reads.
	Flush(ctx context.Context)
}
