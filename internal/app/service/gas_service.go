package service

import (
	"context"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
	"token_sale/internal/infrastructure/metrics"
)

// GasService implements port.GasEstimator. A failed first estimate is
// retried exactly once with identical arguments and no delay; a second
// failure is terminal for the enclosing operation.
type GasService struct {
	logger port.Logger
}

// NewGasService creates a new GasService.
func NewGasService(logger port.Logger) *GasService {
	return &GasService{logger: logger}
}

// Estimate simulates the call and returns its predicted gas cost.
func (s *GasService) Estimate(ctx context.Context, binding port.ContractBinding, method string, args ...any) (uint64, error) {
	gas, err := binding.EstimateGas(ctx, method, args...)
	if err == nil {
		metrics.EstimationAttempts.WithLabelValues(method, "ok").Inc()
		return gas, nil
	}

	metrics.EstimationAttempts.WithLabelValues(method, "error").Inc()
	metrics.EstimationRetries.WithLabelValues(method).Inc()
	s.logger.Debug("Gas estimation failed, retrying once",
		"method", method, "contract", binding.Address(), "error", err)

	gas, err = binding.EstimateGas(ctx, method, args...)
	if err != nil {
		metrics.EstimationAttempts.WithLabelValues(method, "error").Inc()
		s.logger.Warn("Gas estimation failed after retry",
			"method", method, "contract", binding.Address(), "error", err)
		return 0, &entity.EstimationError{Method: method, Err: err}
	}

	metrics.EstimationAttempts.WithLabelValues(method, "ok").Inc()
	return gas, nil
}
