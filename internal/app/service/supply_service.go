package service

import (
	"context"
	"math/big"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
	"token_sale/internal/infrastructure/metrics"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

const (
	cacheKeyTotalSupply = "totalSupply"
	cacheKeySaleActive  = "saleActive"
	cacheKeyRate        = "rate"
	cacheKeyRemaining   = "remaining"
)

// SupplyService implements port.SupplyReader. Values live in an unexpiring
// cache that only a successful read may replace, so a transient failure
// never regresses previously known-good state. Before the first successful
// read the accessors report inactive sale, a neutral 1:1 rate and zero
// remaining supply.
type SupplyService struct {
	saleToken entity.AssetInfo
	batcher   port.MulticallClient // nil means reads go out individually
	logger    port.Logger
	cache     *gocache.Cache
}

// NewSupplyService creates a new SupplyService for the sale token.
func NewSupplyService(saleToken entity.AssetInfo, batcher port.MulticallClient, logger port.Logger) *SupplyService {
	c := gocache.New(gocache.NoExpiration, 0)
	c.Set(cacheKeySaleActive, false, gocache.NoExpiration)
	c.Set(cacheKeyRate, big.NewInt(1), gocache.NoExpiration)
	c.Set(cacheKeyRemaining, entity.ZeroAmount(saleToken), gocache.NoExpiration)
	return &SupplyService{
		saleToken: saleToken,
		batcher:   batcher,
		logger:    logger,
		cache:     c,
	}
}

// TotalSupply returns the cached total issued supply, absent before the
// first successful read.
func (s *SupplyService) TotalSupply() entity.Optional[entity.Amount] {
	if v, found := s.cache.Get(cacheKeyTotalSupply); found {
		am := v.(entity.Amount)
		return entity.Some(entity.NewAmount(am.Asset, am.Raw))
	}
	return entity.None[entity.Amount]()
}

// SaleActive returns the cached sale-active flag.
func (s *SupplyService) SaleActive() bool {
	v, _ := s.cache.Get(cacheKeySaleActive)
	active, _ := v.(bool)
	return active
}

// Rate returns the cached exchange rate (sale-token units per
// payment-token unit). The returned value is a copy; in-place formatters
// like humanize.BigComma must not reach the cached integer.
func (s *SupplyService) Rate() *big.Int {
	if v, found := s.cache.Get(cacheKeyRate); found {
		return new(big.Int).Set(v.(*big.Int))
	}
	return big.NewInt(1)
}

// Remaining returns the cached remaining supply held by the sale contract.
func (s *SupplyService) Remaining() entity.Amount {
	if v, found := s.cache.Get(cacheKeyRemaining); found {
		am := v.(entity.Amount)
		return entity.NewAmount(am.Asset, am.Raw)
	}
	return entity.ZeroAmount(s.saleToken)
}

// SaleState snapshots the cached values for display. Fields may be
// mutually stale; reads are not snapshotted together.
func (s *SupplyService) SaleState() entity.SaleState {
	return entity.SaleState{
		Active:    s.SaleActive(),
		Rate:      s.Rate(),
		Remaining: s.Remaining(),
	}
}

// RefreshTotalSupply re-reads totalSupply. An absent binding or a failed
// read leaves the cached value untouched.
func (s *SupplyService) RefreshTotalSupply(ctx context.Context, token entity.Optional[port.ContractBinding]) entity.Optional[entity.Amount] {
	b, ok := token.Get()
	if !ok {
		s.logger.Debug("Total supply read skipped, token binding unresolved")
		return s.TotalSupply()
	}
	out, err := b.Call(ctx, "totalSupply")
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("totalSupply", "error").Inc()
		s.logger.Warn("Total supply read failed, keeping previous value", "error", err)
		return s.TotalSupply()
	}
	s.applyTotalSupply(out)
	return s.TotalSupply()
}

// RefreshSaleActive re-reads the sale-active flag.
func (s *SupplyService) RefreshSaleActive(ctx context.Context, sale entity.Optional[port.ContractBinding]) bool {
	b, ok := sale.Get()
	if !ok {
		s.logger.Debug("Sale-active read skipped, sale binding unresolved")
		return s.SaleActive()
	}
	out, err := b.Call(ctx, "isSaleActive")
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("saleActive", "error").Inc()
		s.logger.Warn("Sale-active read failed, keeping previous value", "error", err)
		return s.SaleActive()
	}
	s.applySaleActive(out)
	return s.SaleActive()
}

// RefreshRate re-reads the exchange rate.
func (s *SupplyService) RefreshRate(ctx context.Context, sale entity.Optional[port.ContractBinding]) *big.Int {
	b, ok := sale.Get()
	if !ok {
		s.logger.Debug("Rate read skipped, sale binding unresolved")
		return s.Rate()
	}
	out, err := b.Call(ctx, "zeonPerUSDT")
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("rate", "error").Inc()
		s.logger.Warn("Rate read failed, keeping previous value", "error", err)
		return s.Rate()
	}
	s.applyRate(out)
	return s.Rate()
}

// RefreshRemaining re-reads the sale contract's balance of the sale token.
func (s *SupplyService) RefreshRemaining(ctx context.Context, token entity.Optional[port.ContractBinding], saleAddress string) entity.Amount {
	b, ok := token.Get()
	if !ok || saleAddress == "" {
		s.logger.Debug("Remaining-supply read skipped, inputs unresolved",
			"binding_set", ok, "sale_address_set", saleAddress != "")
		return s.Remaining()
	}
	out, err := b.Call(ctx, "balanceOf", saleAddress)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("remaining", "error").Inc()
		s.logger.Warn("Remaining-supply read failed, keeping previous value", "error", err)
		return s.Remaining()
	}
	s.applyRemaining(out)
	return s.Remaining()
}

// RefreshAll refreshes every accessor. With a multicall client the four
// reads travel in one JSON-RPC batch; each result is still applied
// independently, and a pending or failed entry leaves its cached value
// alone.
func (s *SupplyService) RefreshAll(ctx context.Context, token, sale entity.Optional[port.ContractBinding], saleAddress string) {
	if s.batcher == nil {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { s.RefreshTotalSupply(gctx, token); return nil })
		g.Go(func() error { s.RefreshSaleActive(gctx, sale); return nil })
		g.Go(func() error { s.RefreshRate(gctx, sale); return nil })
		g.Go(func() error { s.RefreshRemaining(gctx, token, saleAddress); return nil })
		_ = g.Wait()
		return
	}

	var supplyRes, activeRes, rateRes, remainRes port.CallResult
	if b, ok := token.Get(); ok {
		supplyRes = s.batcher.Queue(b, "totalSupply")
		if saleAddress != "" {
			remainRes = s.batcher.Queue(b, "balanceOf", saleAddress)
		}
	}
	if b, ok := sale.Get(); ok {
		activeRes = s.batcher.Queue(b, "isSaleActive")
		rateRes = s.batcher.Queue(b, "zeonPerUSDT")
	}
	s.batcher.Flush(ctx)

	if supplyRes != nil {
		if out, ok := supplyRes.Result().Get(); ok {
			s.applyTotalSupply(out)
		}
	}
	if activeRes != nil {
		if out, ok := activeRes.Result().Get(); ok {
			s.applySaleActive(out)
		}
	}
	if rateRes != nil {
		if out, ok := rateRes.Result().Get(); ok {
			s.applyRate(out)
		}
	}
	if remainRes != nil {
		if out, ok := remainRes.Result().Get(); ok {
			s.applyRemaining(out)
		}
	}
}

func (s *SupplyService) applyTotalSupply(out []any) {
	raw, err := singleBigInt(out)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("totalSupply", "error").Inc()
		s.logger.Warn("Total supply read returned unexpected output", "error", err)
		return
	}
	s.cache.Set(cacheKeyTotalSupply, entity.NewAmount(s.saleToken, raw), gocache.NoExpiration)
	metrics.ReadRefreshes.WithLabelValues("totalSupply", "ok").Inc()
}

func (s *SupplyService) applySaleActive(out []any) {
	if len(out) == 0 {
		metrics.ReadRefreshes.WithLabelValues("saleActive", "error").Inc()
		s.logger.Warn("Sale-active read returned empty output")
		return
	}
	active, ok := out[0].(bool)
	if !ok {
		metrics.ReadRefreshes.WithLabelValues("saleActive", "error").Inc()
		s.logger.Warn("Sale-active read returned unexpected output", "type", out[0])
		return
	}
	s.cache.Set(cacheKeySaleActive, active, gocache.NoExpiration)
	metrics.ReadRefreshes.WithLabelValues("saleActive", "ok").Inc()
}

func (s *SupplyService) applyRate(out []any) {
	raw, err := singleBigInt(out)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("rate", "error").Inc()
		s.logger.Warn("Rate read returned unexpected output", "error", err)
		return
	}
	s.cache.Set(cacheKeyRate, new(big.Int).Set(raw), gocache.NoExpiration)
	metrics.ReadRefreshes.WithLabelValues("rate", "ok").Inc()
}

func (s *SupplyService) applyRemaining(out []any) {
	raw, err := singleBigInt(out)
	if err != nil {
		metrics.ReadRefreshes.WithLabelValues("remaining", "error").Inc()
		s.logger.Warn("Remaining-supply read returned unexpected output", "error", err)
		return
	}
	s.cache.Set(cacheKeyRemaining, entity.NewAmount(s.saleToken, raw), gocache.NoExpiration)
	metrics.ReadRefreshes.WithLabelValues("remaining", "ok").Inc()
}
