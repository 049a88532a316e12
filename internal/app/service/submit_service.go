package service

import (
	"context"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
	"token_sale/internal/infrastructure/metrics"
)

// SubmitService implements port.TransactionSubmitter. Every submission,
// approval and purchase alike, goes through the same margin calculation;
// the raw estimate is never used as the execution limit directly.
type SubmitService struct {
	marginPercent uint64
	gasFloor      uint64
	logger        port.Logger
}

// NewSubmitService creates a new SubmitService.
func NewSubmitService(marginPercent, gasFloor uint64, logger port.Logger) *SubmitService {
	if marginPercent == 0 {
		marginPercent = entity.DefaultGasMarginPercent
	}
	if gasFloor == 0 {
		gasFloor = entity.DefaultGasLimitFloor
	}
	return &SubmitService{
		marginPercent: marginPercent,
		gasFloor:      gasFloor,
		logger:        logger,
	}
}

// Submit broadcasts the call with a margined execution budget. The
// submission is attempted exactly once; a rejection is recorded and
// re-raised with its original cause.
func (s *SubmitService) Submit(ctx context.Context, binding port.ContractBinding, method string, rawEstimate uint64, args ...any) (entity.TransactionOutcome, error) {
	budget := entity.NewGasBudget(rawEstimate, s.marginPercent, s.gasFloor)
	s.logger.Debug("Submitting transaction",
		"method", method, "contract", binding.Address(),
		"estimate", budget.Estimate, "gas_limit", budget.Limit)

	handle, err := binding.Submit(ctx, method, budget.Limit, args...)
	if err != nil {
		metrics.Submissions.WithLabelValues(method, "rejected").Inc()
		s.logger.Error("Transaction submission rejected",
			"method", method, "contract", binding.Address(), "error", err)
		return entity.FailedOutcome(err), &entity.SubmissionError{Method: method, Err: err}
	}

	metrics.Submissions.WithLabelValues(method, "submitted").Inc()
	s.logger.Info("Transaction submitted",
		"method", method, "contract", binding.Address(), "tx", string(handle))
	return entity.SubmittedOutcome(handle), nil
}
