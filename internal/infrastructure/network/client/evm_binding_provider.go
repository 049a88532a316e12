package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"golang.org/x/time/rate"
)

// BindingProvider implements port.ContractBindingProvider for one EVM
// network. Bindings are resolvable only when every precondition holds
// (valid address, wallet on the right chain, account present for writes);
// otherwise the provider answers with an absent value and the caller
// skips its operation.
type BindingProvider struct {
	netDef         entity.NetworkDefinition
	wallet         port.WalletProvider
	ethClient      *ethclient.Client
	limiter        *rate.Limiter
	rpcCallTimeout time.Duration
	logger         port.Logger

	mu    sync.Mutex
	cache map[string]port.ContractBinding
}

// NewBindingProvider dials the network, trying the primary RPC endpoint
// first and every fallback after it.
func NewBindingProvider(
	netDef entity.NetworkDefinition,
	wallet port.WalletProvider,
	connectionTimeout, rpcCallTimeout time.Duration,
	ratePerSecond float64,
	burst int,
	logger port.Logger,
) (*BindingProvider, error) {
	initParsedABIs()

	urls := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var (
		ethClient *ethclient.Client
		lastErr   error
	)
	for _, url := range urls {
		if url == "" {
			continue
		}
		dialCtx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
		c, err := ethclient.DialContext(dialCtx, url)
		cancel()
		if err != nil {
			logger.Warn("RPC endpoint unreachable, trying next",
				"network", netDef.Name, "url", url, "error", err)
			lastErr = err
			continue
		}
		logger.Info("Connected to RPC endpoint", "network", netDef.Name, "url", url)
		ethClient = c
		break
	}
	if ethClient == nil {
		return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
	}

	var limiter *rate.Limiter
	if ratePerSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(ratePerSecond), burst)
	}

	return &BindingProvider{
		netDef:         netDef,
		wallet:         wallet,
		ethClient:      ethClient,
		limiter:        limiter,
		rpcCallTimeout: rpcCallTimeout,
		logger:         logger,
		cache:          make(map[string]port.ContractBinding),
	}, nil
}

// TokenBinding resolves a binding for an ERC20 token contract.
func (p *BindingProvider) TokenBinding(address string, mode port.BindingMode) entity.Optional[port.ContractBinding] {
	return p.binding(parsedERC20ABI, "token", address, mode)
}

// SaleBinding resolves a binding for the sale contract.
func (p *BindingProvider) SaleBinding(address string, mode port.BindingMode) entity.Optional[port.ContractBinding] {
	return p.binding(parsedSaleABI, "sale", address, mode)
}

func (p *BindingProvider) binding(contractABI abi.ABI, kind, address string, mode port.BindingMode) entity.Optional[port.ContractBinding] {
	if address == "" {
		p.logger.Debug("Binding unresolved, no contract address configured", "kind", kind)
		return entity.None[port.ContractBinding]()
	}
	if !common.IsHexAddress(address) {
		p.logger.Warn("Binding unresolved, malformed contract address",
			"kind", kind, "address", address)
		return entity.None[port.ContractBinding]()
	}
	if chainID, ok := p.wallet.ChainID().Get(); ok && chainID != p.netDef.ChainID {
		p.logger.Debug("Binding unresolved, wallet is on another network",
			"kind", kind, "wallet_chain", chainID, "network_chain", p.netDef.ChainID)
		return entity.None[port.ContractBinding]()
	}

	from := p.wallet.Account()
	if mode == port.ReadWrite {
		if _, ok := from.Get(); !ok {
			p.logger.Debug("Binding unresolved, writes need a connected account", "kind", kind)
			return entity.None[port.ContractBinding]()
		}
	}

	key := fmt.Sprintf("%s|%s|%d|%s", kind, strings.ToLower(address), mode, strings.ToLower(from.OrElse("")))

	p.mu.Lock()
	defer p.mu.Unlock()
	if b, found := p.cache[key]; found {
		return entity.Some(b)
	}

	b := &evmBinding{
		ethClient:      p.ethClient,
		contractABI:    contractABI,
		address:        common.HexToAddress(address),
		from:           from,
		mode:           mode,
		limiter:        p.limiter,
		rpcCallTimeout: p.rpcCallTimeout,
		logger:         p.logger,
	}
	p.cache[key] = b
	return entity.Some[port.ContractBinding](b)
}
