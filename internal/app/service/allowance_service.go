package service

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
	"token_sale/internal/infrastructure/metrics"
)

// AllowanceService implements port.AllowanceReader for one display slot.
// Every read is correlated to the identity and sequence it was issued
// under; an older response arriving after a newer one is dropped, not
// displayed. The displayed value is only ever replaced by a successful
// re-read, never mutated locally.
type AllowanceService struct {
	asset  entity.AssetInfo
	logger port.Logger

	mu        sync.Mutex
	seq       uint64
	activeKey string
	storedSeq uint64
	current   entity.Optional[entity.Allowance]
}

// NewAllowanceService creates a new AllowanceService for the given asset.
func NewAllowanceService(asset entity.AssetInfo, logger port.Logger) *AllowanceService {
	return &AllowanceService{asset: asset, logger: logger}
}

// Refresh re-reads the allowance for (owner, spender) through the token
// binding. Any absent input skips the network call entirely and yields an
// absent result; a failed read keeps the previous value.
func (s *AllowanceService) Refresh(ctx context.Context, owner, spender entity.Optional[string], binding entity.Optional[port.ContractBinding]) entity.Optional[entity.Allowance] {
	ownerAddr, ownerOK := owner.Get()
	spenderAddr, spenderOK := spender.Get()
	tokenBinding, bindingOK := binding.Get()
	if !ownerOK || !spenderOK || !bindingOK {
		s.logger.Debug("Allowance read skipped, inputs unresolved",
			"owner_set", ownerOK, "spender_set", spenderOK, "binding_set", bindingOK)
		return entity.None[entity.Allowance]()
	}

	key := ownerAddr + "|" + spenderAddr + "|" + tokenBinding.Address()

	s.mu.Lock()
	s.seq++
	issued := s.seq
	s.activeKey = key
	s.mu.Unlock()

	out, err := tokenBinding.Call(ctx, "allowance", ownerAddr, spenderAddr)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("allowance", "error").Inc()
		s.logger.Warn("Allowance read failed, keeping previous value",
			"owner", ownerAddr, "spender", spenderAddr, "error", err)
		return s.Current()
	}

	raw, err := singleBigInt(out)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("allowance", "error").Inc()
		s.logger.Warn("Allowance read returned unexpected output", "error", err)
		return s.Current()
	}

	allowance := entity.Allowance{
		Owner:   ownerAddr,
		Spender: spenderAddr,
		Amount:  entity.NewAmount(s.asset, raw),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if key != s.activeKey || issued < s.storedSeq {
		metrics.StaleReadsDiscarded.Inc()
		s.logger.Debug("Stale allowance response discarded",
			"issued_seq", issued, "stored_seq", s.storedSeq)
		return s.current
	}
	s.storedSeq = issued
	s.current = entity.Some(allowance)
	metrics.ReadRefreshes.WithLabelValues("allowance", "ok").Inc()
	return s.current
}

// Current returns the latest successfully stored allowance.
func (s *AllowanceService) Current() entity.Optional[entity.Allowance] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// singleBigInt extracts the single uint256 output of a read call.
func singleBigInt(out []any) (*big.Int, error) {
	if len(out) == 0 {
		return nil, fmt.Errorf("empty call output")
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", out[0])
	}
	return v, nil
}
