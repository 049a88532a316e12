package port

import (
	"context"

	"token_sale/internal/domain/entity"
)

// BindingMode selects whether a binding may submit state-changing calls.
type BindingMode int

const (
	// ReadOnly bindings serve reads and estimations only.
	ReadOnly BindingMode = iota
	// ReadWrite bindings may additionally submit transactions.
	ReadWrite
)

// ContractBinding is an opaque callable capability for one on-ledger
// contract. The core calls named operations on it and never constructs raw
// transaction payloads itself.
type ContractBinding interface {
	// Address returns the bound contract address.
	Address() string

	// Call performs a read-only invocation and returns the decoded outputs.
	Call(ctx context.Context, method string, args ...any) ([]any, error)

	// EstimateGas simulates a state-changing invocation and returns its
	// predicted execution cost.
	EstimateGas(ctx context.Context, method string, args ...any) (uint64, error)

	// Submit broadcasts a state-changing invocation with the given
	// execution limit and returns as soon as the network accepts it.
	Submit(ctx context.Context, method string, gasLimit uint64, args ...any) (entity.TxHandle, error)
}

// ContractBindingProvider constructs bindings for the sale's contracts. An
// absent result means the address is unset or the binding cannot be built
// (wrong network, no account for write mode); callers treat that as a
// normal no-op state, not an error.
type ContractBindingProvider interface {
	TokenBinding(address string, mode BindingMode) entity.Optional[ContractBinding]
	SaleBinding(address string, mode BindingMode) entity.Optional[ContractBinding]
}
