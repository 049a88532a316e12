package port

import (
	"context"

	"token_sale/internal/domain/entity"
)

// GasEstimator predicts the execution cost of a state-changing call before
// submission.
type GasEstimator interface {
	Estimate(ctx context.Context, binding ContractBinding, method string, args ...any) (uint64, error)
}

// TransactionSubmitter submits a state-changing call with a
// margin-adjusted execution budget derived from the raw estimate.
type TransactionSubmitter interface {
	Submit(ctx context.Context, binding ContractBinding, method string, rawEstimate uint64, args ...any) (entity.TransactionOutcome, error)
}

// PurchaseOrchestrator drives the approve and buy operations. Both are safe
// to invoke repeatedly. A nil result with a nil error means a guard
// declined the operation (unresolved binding or malformed amount); that is
// a normal state, not a failure.
type PurchaseOrchestrator interface {
	Approve(ctx context.Context) (*entity.TransactionOutcome, error)
	Buy(ctx context.Context, amount string) (*entity.PurchaseReceipt, error)
}
