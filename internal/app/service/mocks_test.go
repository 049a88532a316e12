package service

import (
	"context"
	"sync"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// mockBinding scripts call, estimate and submit behavior per method name.
type mockBinding struct {
	mu      sync.Mutex
	address string

	callOut map[string][]any
	callErr map[string]error
	calls   []string

	estimateOuts []uint64
	estimateErrs []error
	estimates    int
	estimateArgs [][]any

	submitHandle entity.TxHandle
	submitErr    error
	submits      int
	submitMethod string
	submitLimit  uint64
	submitArgs   []any
}

func newMockBinding(address string) *mockBinding {
	return &mockBinding{
		address: address,
		callOut: make(map[string][]any),
		callErr: make(map[string]error),
	}
}

func (m *mockBinding) Address() string { return m.address }

func (m *mockBinding) Call(_ context.Context, method string, _ ...any) ([]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, method)
	if err, ok := m.callErr[method]; ok {
		return nil, err
	}
	return m.callOut[method], nil
}

func (m *mockBinding) EstimateGas(_ context.Context, _ string, args ...any) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.estimates
	m.estimates++
	m.estimateArgs = append(m.estimateArgs, args)
	if idx < len(m.estimateErrs) && m.estimateErrs[idx] != nil {
		return 0, m.estimateErrs[idx]
	}
	if idx < len(m.estimateOuts) {
		return m.estimateOuts[idx], nil
	}
	return 50000, nil
}

func (m *mockBinding) Submit(_ context.Context, method string, gasLimit uint64, args ...any) (entity.TxHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submits++
	m.submitMethod = method
	m.submitLimit = gasLimit
	m.submitArgs = args
	if m.submitErr != nil {
		return "", m.submitErr
	}
	return m.submitHandle, nil
}

func (m *mockBinding) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// gatedBinding blocks its first Call until the gate channel is closed and
// signals entered once the call is in flight. Later calls answer
// immediately.
type gatedBinding struct {
	*mockBinding
	gate    chan struct{}
	entered chan struct{}
	first   sync.Once
}

func (g *gatedBinding) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	blocked := false
	g.first.Do(func() { blocked = true })
	if blocked {
		close(g.entered)
		<-g.gate
	}
	return g.mockBinding.Call(ctx, method, args...)
}

// mockProvider answers binding lookups from a fixed table.
type mockProvider struct {
	token entity.Optional[port.ContractBinding]
	sale  entity.Optional[port.ContractBinding]
}

func (p *mockProvider) TokenBinding(string, port.BindingMode) entity.Optional[port.ContractBinding] {
	return p.token
}

func (p *mockProvider) SaleBinding(string, port.BindingMode) entity.Optional[port.ContractBinding] {
	return p.sale
}

type mockWallet struct {
	account entity.Optional[string]
	chainID entity.Optional[uint64]
}

func (w *mockWallet) Account() entity.Optional[string] { return w.account }
func (w *mockWallet) ChainID() entity.Optional[uint64] { return w.chainID }

type mockEstimator struct {
	out   uint64
	err   error
	calls int
}

func (e *mockEstimator) Estimate(context.Context, port.ContractBinding, string, ...any) (uint64, error) {
	e.calls++
	if e.err != nil {
		return 0, e.err
	}
	return e.out, nil
}

type mockSubmitter struct {
	outcome entity.TransactionOutcome
	err     error
	calls   int
	method  string
	args    []any
}

func (s *mockSubmitter) Submit(_ context.Context, _ port.ContractBinding, method string, _ uint64, args ...any) (entity.TransactionOutcome, error) {
	s.calls++
	s.method = method
	s.args = args
	return s.outcome, s.err
}

type sentEvent struct {
	event      string
	properties map[string]any
}

type mockSink struct {
	events []sentEvent
}

func (s *mockSink) Send(event string, properties map[string]any) {
	s.events = append(s.events, sentEvent{event: event, properties: properties})
}

// fakeResult is a pre-resolved batched call slot.
type fakeResult struct {
	out entity.Optional[[]any]
}

func (r *fakeResult) Result() entity.Optional[[]any] { return r.out }

// fakeBatcher hands out scripted results per method name; unlisted methods
// stay pending.
type fakeBatcher struct {
	results map[string]entity.Optional[[]any]
	queued  []string
	flushed int
}

func (b *fakeBatcher) Queue(_ port.ContractBinding, method string, _ ...any) port.CallResult {
	b.queued = append(b.queued, method)
	if out, ok := b.results[method]; ok {
		return &fakeResult{out: out}
	}
	return &fakeResult{out: entity.None[[]any]()}
}

func (b *fakeBatcher) Flush(context.Context) { b.flushed++ }
