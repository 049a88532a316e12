package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"spender","type":"address"},{"name":"value","type":"uint256"}],"name":"approve","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
	{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

const saleABI = `[
	{"constant":true,"inputs":[],"name":"isSaleActive","outputs":[{"name":"","type":"bool"}],"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"zeonPerUSDT","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"constant":false,"inputs":[{"name":"usdtAmount","type":"uint256"}],"name":"buy","outputs":[],"stateMutability":"nonpayable","type":"function"}
]`

var (
	parsedERC20ABI abi.ABI
	parsedSaleABI  abi.ABI
	parseABIOnce   sync.Once
)

func initParsedABIs() {
	parseABIOnce.Do(func() {
		var err error
		parsedERC20ABI, err = abi.JSON(strings.NewReader(erc20ABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC20 ABI: %v", err))
		}
		parsedSaleABI, err = abi.JSON(strings.NewReader(saleABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse sale ABI: %v", err))
		}
	})
}

// evmBinding is a port.ContractBinding over one deployed contract. Writes
// go through eth_sendTransaction so signing stays with the node's managed
// accounts; the binding never holds key material.
type evmBinding struct {
	ethClient      *ethclient.Client
	contractABI    abi.ABI
	address        common.Address
	from           entity.Optional[string]
	mode           port.BindingMode
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
	logger         port.Logger
}

func (b *evmBinding) Address() string {
	return b.address.Hex()
}

func (b *evmBinding) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := b.packCall(method, args...)
	if err != nil {
		return nil, err
	}
	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, b.rpcCallTimeout)
	defer cancel()

	raw, err := b.ethClient.CallContract(callCtx, ethereum.CallMsg{
		To:   &b.address,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s: %w", method, b.address.Hex(), err)
	}

	out, err := b.contractABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s output: %w", method, err)
	}
	return out, nil
}

func (b *evmBinding) EstimateGas(ctx context.Context, method string, args ...any) (uint64, error) {
	data, err := b.packCall(method, args...)
	if err != nil {
		return 0, err
	}
	if err := b.wait(ctx); err != nil {
		return 0, err
	}

	callCtx, cancel := context.WithTimeout(ctx, b.rpcCallTimeout)
	defer cancel()

	msg := ethereum.CallMsg{To: &b.address, Data: data}
	if from, ok := b.from.Get(); ok {
		msg.From = common.HexToAddress(from)
	}

	gas, err := b.ethClient.EstimateGas(callCtx, msg)
	if err != nil {
		return 0, fmt.Errorf("estimate gas for %s on %s: %w", method, b.address.Hex(), err)
	}
	return gas, nil
}

func (b *evmBinding) Submit(ctx context.Context, method string, gasLimit uint64, args ...any) (entity.TxHandle, error) {
	if b.mode != port.ReadWrite {
		return "", fmt.Errorf("binding for %s is read-only", b.address.Hex())
	}
	from, ok := b.from.Get()
	if !ok {
		return "", entity.ErrUnresolvedInput
	}

	data, err := b.packCall(method, args...)
	if err != nil {
		return "", err
	}
	if err := b.wait(ctx); err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, b.rpcCallTimeout)
	defer cancel()

	txArgs := map[string]any{
		"from": from,
		"to":   b.address.Hex(),
		"gas":  hexutil.Uint64(gasLimit),
		"data": hexutil.Bytes(data),
	}

	var txHash common.Hash
	if err := b.ethClient.Client().CallContext(callCtx, &txHash, "eth_sendTransaction", txArgs); err != nil {
		return "", fmt.Errorf("eth_sendTransaction %s on %s: %w", method, b.address.Hex(), err)
	}
	return entity.TxHandle(txHash.Hex()), nil
}

func (b *evmBinding) wait(ctx context.Context) error {
	if b.limiter == nil {
		return nil
	}
	return b.limiter.Wait(ctx)
}

func (b *evmBinding) packCall(method string, args ...any) ([]byte, error) {
	m, exists := b.contractABI.Methods[method]
	if !exists {
		return nil, fmt.Errorf("method %s not in contract ABI", method)
	}
	if len(args) != len(m.Inputs) {
		return nil, fmt.Errorf("method %s expects %d arguments, got %d", method, len(m.Inputs), len(args))
	}

	coerced := make([]any, len(args))
	for i, arg := range args {
		v, err := coerceArg(m.Inputs[i].Type, arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d of %s: %w", i, method, err)
		}
		coerced[i] = v
	}
	return b.contractABI.Pack(method, coerced...)
}

// coerceArg adapts the loose argument types used by the services to the
// concrete types the ABI encoder expects.
func coerceArg(t abi.Type, arg any) (any, error) {
	switch t.T {
	case abi.AddressTy:
		switch v := arg.(type) {
		case common.Address:
			return v, nil
		case string:
			if !common.IsHexAddress(v) {
				return nil, fmt.Errorf("invalid address %q", v)
			}
			return common.HexToAddress(v), nil
		}
	case abi.UintTy, abi.IntTy:
		switch v := arg.(type) {
		case *big.Int:
			return v, nil
		case uint64:
			return new(big.Int).SetUint64(v), nil
		case string:
			n, ok := new(big.Int).SetString(v, 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer %q", v)
			}
			return n, nil
		}
	case abi.BoolTy:
		if v, ok := arg.(bool); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("cannot encode %T as %s", arg, t.String())
}
