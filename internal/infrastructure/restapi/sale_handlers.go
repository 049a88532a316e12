package restapi

import (
	"errors"
	"net/http"

	"token_sale/internal/app/port"
	"token_sale/internal/config"
	"token_sale/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// SaleHandler serves the purchase flow over HTTP.
type SaleHandler struct {
	supply    port.SupplyReader
	allowance port.AllowanceReader
	orch      port.PurchaseOrchestrator
	wallet    port.WalletProvider
	bindings  port.ContractBindingProvider
	cfg       *config.Config
	logger    port.Logger
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(
	supply port.SupplyReader,
	allowance port.AllowanceReader,
	orch port.PurchaseOrchestrator,
	wallet port.WalletProvider,
	bindings port.ContractBindingProvider,
	cfg *config.Config,
	logger port.Logger,
) *SaleHandler {
	return &SaleHandler{
		supply:    supply,
		allowance: allowance,
		orch:      orch,
		wallet:    wallet,
		bindings:  bindings,
		cfg:       cfg,
		logger:    logger,
	}
}

// SaleStateResponse is the sale overview payload.
type SaleStateResponse struct {
	Active             bool   `json:"active"`
	Rate               string `json:"rate"`
	Remaining          string `json:"remaining"`
	RemainingFormatted string `json:"remainingFormatted"`
	TotalSupply        string `json:"totalSupply,omitempty"`
}

// BuyRequest is the purchase request body. Amount is given in payment
// token base units as a decimal string.
type BuyRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// GetSaleStateHandler godoc
// @Summary Current sale state
// @Description Returns the cached sale activity flag, exchange rate and remaining supply.
// @Tags sale
// @Produce json
// @Success 200 {object} SaleStateResponse
// @Router /sale [get]
func (h *SaleHandler) GetSaleStateHandler(c *gin.Context) {
	state := h.supply.SaleState()
	resp := SaleStateResponse{
		Active:             state.Active,
		Rate:               state.Rate.String(),
		Remaining:          state.Remaining.Raw.String(),
		RemainingFormatted: state.Remaining.Format(),
	}
	if supply, ok := h.supply.TotalSupply().Get(); ok {
		resp.TotalSupply = supply.Raw.String()
	}
	c.JSON(http.StatusOK, resp)
}

// GetAllowanceHandler godoc
// @Summary Current payment token allowance
// @Description Re-reads the allowance granted by the configured wallet to the sale contract.
// @Tags sale
// @Produce json
// @Success 200 {object} map[string]any
// @Router /allowance [get]
func (h *SaleHandler) GetAllowanceHandler(c *gin.Context) {
	token := h.bindings.TokenBinding(h.cfg.Sale.PaymentTokenAddress, port.ReadOnly)
	result := h.allowance.Refresh(
		c.Request.Context(),
		h.wallet.Account(),
		entity.NonEmpty(h.cfg.Sale.SaleAddress),
		token,
	)

	allowance, ok := result.Get()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"status_message": "Allowance unavailable: wallet or token binding is not resolved.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"owner":     allowance.Owner,
		"spender":   allowance.Spender,
		"allowance": allowance.Amount.Raw.String(),
		"formatted": allowance.Amount.Format(),
	})
}

// PostApproveHandler godoc
// @Summary Grant the sale contract an unlimited payment token allowance
// @Tags sale
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /approve [post]
func (h *SaleHandler) PostApproveHandler(c *gin.Context) {
	outcome, err := h.orch.Approve(c.Request.Context())
	if err != nil {
		h.writeOperationError(c, err)
		return
	}
	if outcome == nil {
		c.JSON(http.StatusOK, gin.H{
			"status_message": "Operation skipped: required inputs are not resolved.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": outcome.Status.String(),
		"tx":     string(outcome.Handle),
	})
}

// PostBuyHandler godoc
// @Summary Purchase sale tokens
// @Tags sale
// @Accept json
// @Produce json
// @Param request body BuyRequest true "Purchase amount in payment token base units"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 422 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /buy [post]
func (h *SaleHandler) PostBuyHandler(c *gin.Context) {
	var req BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	receipt, err := h.orch.Buy(c.Request.Context(), req.Amount)
	if err != nil {
		h.writeOperationError(c, err)
		return
	}
	if receipt == nil {
		c.JSON(http.StatusOK, gin.H{
			"status_message": "Operation skipped: required inputs are not resolved.",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokenAddress": receipt.TokenAddress})
}

func (h *SaleHandler) writeOperationError(c *gin.Context, err error) {
	var estErr *entity.EstimationError
	if errors.As(err, &estErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "gas estimation failed",
			"method": estErr.Method,
		})
		return
	}
	var subErr *entity.SubmissionError
	if errors.As(err, &subErr) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "transaction submission rejected",
			"method": subErr.Method,
		})
		return
	}
	h.logger.Error("Unclassified operation failure", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
