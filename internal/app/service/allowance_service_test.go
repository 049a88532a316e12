package service

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsset = entity.AssetInfo{
	ChainID:  1,
	Address:  "0xdAC17F958D2ee523a2206206994597C13D831ec7",
	Symbol:   "USDT",
	Decimals: 6,
}

const (
	testOwner   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	testSpender = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func someBinding(b port.ContractBinding) entity.Optional[port.ContractBinding] {
	return entity.Some(b)
}

func TestAllowanceService_SkipsOnUnresolvedInputs(t *testing.T) {
	binding := newMockBinding("0x3333333333333333333333333333333333333333")
	svc := NewAllowanceService(testAsset, noopLogger{})

	cases := []struct {
		name    string
		owner   entity.Optional[string]
		spender entity.Optional[string]
		binding entity.Optional[port.ContractBinding]
	}{
		{"no owner", entity.None[string](), entity.Some(testSpender), someBinding(binding)},
		{"no spender", entity.Some(testOwner), entity.None[string](), someBinding(binding)},
		{"no binding", entity.Some(testOwner), entity.Some(testSpender), entity.None[port.ContractBinding]()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := svc.Refresh(context.Background(), tc.owner, tc.spender, tc.binding)
			assert.False(t, result.IsPresent())
		})
	}
	assert.Zero(t, binding.callCount(), "unresolved inputs must not reach the network")
}

func TestAllowanceService_SuccessfulRead(t *testing.T) {
	binding := newMockBinding("0x3333333333333333333333333333333333333333")
	binding.callOut["allowance"] = []any{big.NewInt(5_000_000)}

	svc := NewAllowanceService(testAsset, noopLogger{})
	result := svc.Refresh(context.Background(), entity.Some(testOwner), entity.Some(testSpender), someBinding(binding))

	allowance, ok := result.Get()
	require.True(t, ok)
	assert.Equal(t, testOwner, allowance.Owner)
	assert.Equal(t, testSpender, allowance.Spender)
	assert.Zero(t, allowance.Amount.Raw.Cmp(big.NewInt(5_000_000)))

	current, ok := svc.Current().Get()
	require.True(t, ok)
	assert.Equal(t, allowance, current)
}

func TestAllowanceService_FailedReadKeepsPreviousValue(t *testing.T) {
	binding := newMockBinding("0x3333333333333333333333333333333333333333")
	binding.callOut["allowance"] = []any{big.NewInt(777)}

	svc := NewAllowanceService(testAsset, noopLogger{})
	first := svc.Refresh(context.Background(), entity.Some(testOwner), entity.Some(testSpender), someBinding(binding))
	require.True(t, first.IsPresent())

	binding.callErr["allowance"] = errors.New("rpc timeout")
	second := svc.Refresh(context.Background(), entity.Some(testOwner), entity.Some(testSpender), someBinding(binding))

	allowance, ok := second.Get()
	require.True(t, ok)
	assert.Zero(t, allowance.Amount.Raw.Cmp(big.NewInt(777)), "a failed read must not clear the stored value")
}

func TestAllowanceService_StaleResponseDiscarded(t *testing.T) {
	slowInner := newMockBinding("0x3333333333333333333333333333333333333333")
	slowInner.callOut["allowance"] = []any{big.NewInt(100)}
	slow := &gatedBinding{mockBinding: slowInner, gate: make(chan struct{}), entered: make(chan struct{})}

	fast := newMockBinding("0x3333333333333333333333333333333333333333")
	fast.callOut["allowance"] = []any{big.NewInt(200)}

	svc := NewAllowanceService(testAsset, noopLogger{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.Refresh(context.Background(), entity.Some(testOwner), entity.Some(testSpender), someBinding(slow))
	}()

	// The first read is parked on the gate; let a second one complete.
	<-slow.entered
	result := svc.Refresh(context.Background(), entity.Some(testOwner), entity.Some(testSpender), someBinding(fast))
	require.True(t, result.IsPresent())

	close(slow.gate)
	wg.Wait()

	current, ok := svc.Current().Get()
	require.True(t, ok)
	assert.Zero(t, current.Amount.Raw.Cmp(big.NewInt(200)), "the older response must not overwrite the newer one")
}
