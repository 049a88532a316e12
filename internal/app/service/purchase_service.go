package service

import (
	"context"

	"token_sale/internal/app/port"
	"token_sale/internal/domain/entity"
	"token_sale/internal/pkg/utils"
)

// EventPurchaseSubmitted is emitted once per successfully broadcast buy.
const EventPurchaseSubmitted = "sale_purchase_txn_submitted"

// PurchaseService implements port.PurchaseOrchestrator. Both operations
// follow the same shape: resolve the write binding, estimate with one
// retry, submit with a margined budget. Unresolved inputs make the
// operation a logged no-op rather than an error.
type PurchaseService struct {
	bindings  port.ContractBindingProvider
	wallet    port.WalletProvider
	estimator port.GasEstimator
	submitter port.TransactionSubmitter
	analytics port.AnalyticsSink
	logger    port.Logger

	paymentTokenAddress string
	saleAddress         string
}

// NewPurchaseService creates a new PurchaseService.
func NewPurchaseService(
	bindings port.ContractBindingProvider,
	wallet port.WalletProvider,
	estimator port.GasEstimator,
	submitter port.TransactionSubmitter,
	analytics port.AnalyticsSink,
	logger port.Logger,
	paymentTokenAddress, saleAddress string,
) *PurchaseService {
	return &PurchaseService{
		bindings:            bindings,
		wallet:              wallet,
		estimator:           estimator,
		submitter:           submitter,
		analytics:           analytics,
		logger:              logger,
		paymentTokenAddress: paymentTokenAddress,
		saleAddress:         saleAddress,
	}
}

// Approve grants the sale contract an unlimited spending allowance on the
// payment token. The stored allowance is not touched locally; the next
// read reflects the grant once it lands.
func (s *PurchaseService) Approve(ctx context.Context) (*entity.TransactionOutcome, error) {
	token, ok := s.bindings.TokenBinding(s.paymentTokenAddress, port.ReadWrite).Get()
	if !ok {
		s.logger.Error("Approve skipped: payment token binding unavailable",
			"token", s.paymentTokenAddress)
		return nil, nil
	}

	estimate, err := s.estimator.Estimate(ctx, token, "approve", s.saleAddress, utils.MaxUint256)
	if err != nil {
		s.logger.Debug("Approve aborted on estimation failure", "error", err)
		return nil, err
	}

	outcome, err := s.submitter.Submit(ctx, token, "approve", estimate, s.saleAddress, utils.MaxUint256)
	if err != nil {
		s.logger.Debug("Approve submission rejected", "error", err)
		return &outcome, err
	}
	return &outcome, nil
}

// Buy purchases sale tokens for the given payment-token amount, given in
// base units as a decimal string. On a successful broadcast one analytics
// event is emitted and the sale token address is returned for wallet
// registration.
func (s *PurchaseService) Buy(ctx context.Context, amount string) (*entity.PurchaseReceipt, error) {
	sale, ok := s.bindings.SaleBinding(s.saleAddress, port.ReadWrite).Get()
	if !ok {
		s.logger.Error("Buy skipped: sale binding unavailable", "sale", s.saleAddress)
		return nil, nil
	}

	quantity, ok := utils.ParseQuantity(amount)
	if !ok {
		s.logger.Error("Buy skipped: malformed purchase amount", "amount", amount)
		return nil, nil
	}

	estimate, err := s.estimator.Estimate(ctx, sale, "buy", quantity)
	if err != nil {
		s.logger.Debug("Buy aborted on estimation failure", "error", err)
		return nil, err
	}

	if _, err := s.submitter.Submit(ctx, sale, "buy", estimate, quantity); err != nil {
		s.logger.Debug("Buy submission rejected", "error", err)
		return nil, err
	}

	properties := map[string]any{"token_address": sale.Address()}
	if chainID, ok := s.wallet.ChainID().Get(); ok {
		properties["chain_id"] = chainID
	}
	s.analytics.Send(EventPurchaseSubmitted, properties)

	return &entity.PurchaseReceipt{TokenAddress: sale.Address()}, nil
}
