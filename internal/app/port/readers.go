package port

import (
	"context"
	"math/big"

	"token_sale/internal/domain/entity"
)

// AllowanceReader tracks the delegated-spend amount for one
// (owner, spender, asset) triple.
type AllowanceReader interface {
	// Refresh re-reads the allowance from the ledger. Any absent input
	// yields an absent result with no network call. A response superseded
	// by a newer read of the same or a different identity is discarded.
	Refresh(ctx context.Context, owner, spender entity.Optional[string], binding entity.Optional[ContractBinding]) entity.Optional[entity.Allowance]

	// Current returns the latest successfully read allowance.
	Current() entity.Optional[entity.Allowance]
}

// SupplyReader exposes aggregate sale quantities. Accessors are fail-soft:
// a failed refresh leaves the previously cached value in place, and each
// value may be stale independently of the others.
type SupplyReader interface {
	RefreshTotalSupply(ctx context.Context, token entity.Optional[ContractBinding]) entity.Optional[entity.Amount]
	TotalSupply() entity.Optional[entity.Amount]

	RefreshSaleActive(ctx context.Context, sale entity.Optional[ContractBinding]) bool
	SaleActive() bool

	RefreshRate(ctx context.Context, sale entity.Optional[ContractBinding]) *big.Int
	Rate() *big.Int

	RefreshRemaining(ctx context.Context, token entity.Optional[ContractBinding], saleAddress string) entity.Amount
	Remaining() entity.Amount

	// RefreshAll refreshes every accessor, batched through the multicall
	// client when one is configured.
	RefreshAll(ctx context.Context, token, sale entity.Optional[ContractBinding], saleAddress string)

	// SaleState snapshots the cached values for display.
	SaleState() entity.SaleState
}
