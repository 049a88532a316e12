package client

import (
	"context"
	"sync"
	"time"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

type callResult struct {
	mu  sync.Mutex
	out entity.Optional[[]any]
}

// Result reports the decoded output, absent while the call is pending or
// after it failed.
func (r *callResult) Result() entity.Optional[[]any] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.out
}

func (r *callResult) set(out []any) {
	r.mu.Lock()
	r.out = entity.Some(out)
	r.mu.Unlock()
}

type pendingCall struct {
	binding port.ContractBinding
	method  string
	args    []any
	res     *callResult
}

// MulticallBatcher implements port.MulticallClient by collapsing queued
// reads into a single JSON-RPC batch. A failed or still-pending entry
// keeps its result absent so callers fall back to previous state instead
// of seeing an error value.
type MulticallBatcher struct {
	ethClient      *ethclient.Client
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
	logger         port.Logger

	mu    sync.Mutex
	queue []*pendingCall
}

// NewMulticallBatcher creates a batcher sharing the provider's connection
// and rate limit.
func NewMulticallBatcher(provider *BindingProvider, logger port.Logger) *MulticallBatcher {
	return &MulticallBatcher{
		ethClient:      provider.ethClient,
		limiter:        provider.limiter,
		rpcCallTimeout: provider.rpcCallTimeout,
		logger:         logger,
	}
}

// Queue registers a read for the next Flush and returns its result slot.
func (m *MulticallBatcher) Queue(binding port.ContractBinding, method string, args ...any) port.CallResult {
	res := &callResult{}
	m.mu.Lock()
	m.queue = append(m.queue, &pendingCall{binding: binding, method: method, args: args, res: res})
	m.mu.Unlock()
	return res
}

// Flush sends all queued reads in one batch and fills their results.
func (m *MulticallBatcher) Flush(ctx context.Context) {
	m.mu.Lock()
	pending := m.queue
	m.queue = nil
	m.mu.Unlock()
	if len(pending) == 0 {
		return
	}

	var (
		batch    []rpc.BatchElem
		batchIdx = make([]int, 0, len(pending))
	)
	for i, pc := range pending {
		eb, ok := pc.binding.(*evmBinding)
		if !ok {
			// Foreign binding implementations cannot join the batch.
			out, err := pc.binding.Call(ctx, pc.method, pc.args...)
			if err != nil {
				m.logger.Warn("Batched read fell back to a direct call and failed",
					"method", pc.method, "error", err)
				continue
			}
			pc.res.set(out)
			continue
		}
		data, err := eb.packCall(pc.method, pc.args...)
		if err != nil {
			m.logger.Warn("Batched read could not be encoded",
				"method", pc.method, "error", err)
			continue
		}
		batch = append(batch, rpc.BatchElem{
			Method: "eth_call",
			Args: []any{
				map[string]any{"to": eb.address, "data": hexutil.Bytes(data)},
				"latest",
			},
			Result: new(hexutil.Bytes),
		})
		batchIdx = append(batchIdx, i)
	}
	if len(batch) == 0 {
		return
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			m.logger.Warn("Batch aborted while rate limited", "error", err)
			return
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, m.rpcCallTimeout)
	defer cancel()
	if err := m.ethClient.Client().BatchCallContext(callCtx, batch); err != nil {
		m.logger.Warn("Batch call failed, results stay pending", "error", err)
		return
	}

	for j, elem := range batch {
		pc := pending[batchIdx[j]]
		if elem.Error != nil {
			m.logger.Warn("Batched read failed",
				"method", pc.method, "error", elem.Error)
			continue
		}
		raw := *elem.Result.(*hexutil.Bytes)
		if len(raw) == 0 {
			m.logger.Warn("Batched read returned no data", "method", pc.method)
			continue
		}
		eb := pc.binding.(*evmBinding)
		out, err := eb.contractABI.Unpack(pc.method, raw)
		if err != nil {
			m.logger.Warn("Batched read output could not be decoded",
				"method", pc.method, "error", err)
			continue
		}
		pc.res.set(out)
	}
}
