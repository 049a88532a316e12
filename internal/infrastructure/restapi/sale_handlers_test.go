package restapi

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"token_sale/internal/app/port"
	"token_sale/internal/config"
	"token_sale/internal/domain/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type stubSupply struct {
	state  entity.SaleState
	supply entity.Optional[entity.Amount]
}

func (s *stubSupply) RefreshTotalSupply(context.Context, entity.Optional[port.ContractBinding]) entity.Optional[entity.Amount] {
	return s.supply
}
func (s *stubSupply) TotalSupply() entity.Optional[entity.Amount] { return s.supply }
func (s *stubSupply) RefreshSaleActive(context.Context, entity.Optional[port.ContractBinding]) bool {
	return s.state.Active
}
func (s *stubSupply) SaleActive() bool { return s.state.Active }
func (s *stubSupply) RefreshRate(context.Context, entity.Optional[port.ContractBinding]) *big.Int {
	return s.state.Rate
}
func (s *stubSupply) Rate() *big.Int { return s.state.Rate }
func (s *stubSupply) RefreshRemaining(context.Context, entity.Optional[port.ContractBinding], string) entity.Amount {
	return s.state.Remaining
}
func (s *stubSupply) Remaining() entity.Amount { return s.state.Remaining }
func (s *stubSupply) RefreshAll(context.Context, entity.Optional[port.ContractBinding], entity.Optional[port.ContractBinding], string) {
}
func (s *stubSupply) SaleState() entity.SaleState { return s.state }

type stubAllowance struct {
	result     entity.Optional[entity.Allowance]
	gotSpender entity.Optional[string]
}

func (s *stubAllowance) Refresh(_ context.Context, _ entity.Optional[string], spender entity.Optional[string], _ entity.Optional[port.ContractBinding]) entity.Optional[entity.Allowance] {
	s.gotSpender = spender
	return s.result
}
func (s *stubAllowance) Current() entity.Optional[entity.Allowance] { return s.result }

type stubOrchestrator struct {
	outcome *entity.TransactionOutcome
	receipt *entity.PurchaseReceipt
	err     error
}

func (s *stubOrchestrator) Approve(context.Context) (*entity.TransactionOutcome, error) {
	return s.outcome, s.err
}
func (s *stubOrchestrator) Buy(context.Context, string) (*entity.PurchaseReceipt, error) {
	return s.receipt, s.err
}

type stubWallet struct{}

func (stubWallet) Account() entity.Optional[string] { return entity.None[string]() }
func (stubWallet) ChainID() entity.Optional[uint64] { return entity.None[uint64]() }

type stubBindings struct{}

func (stubBindings) TokenBinding(string, port.BindingMode) entity.Optional[port.ContractBinding] {
	return entity.None[port.ContractBinding]()
}
func (stubBindings) SaleBinding(string, port.BindingMode) entity.Optional[port.ContractBinding] {
	return entity.None[port.ContractBinding]()
}

func newTestRouter(supply port.SupplyReader, allowance port.AllowanceReader, orch port.PurchaseOrchestrator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewSaleHandler(supply, allowance, orch, stubWallet{}, stubBindings{}, &config.Config{}, noopLogger{})
	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/sale", handler.GetSaleStateHandler)
	v1.GET("/allowance", handler.GetAllowanceHandler)
	v1.POST("/approve", handler.PostApproveHandler)
	v1.POST("/buy", handler.PostBuyHandler)
	return router
}

func TestGetSaleStateHandler(t *testing.T) {
	asset := entity.AssetInfo{ChainID: 1, Symbol: "ZEON", Decimals: 18}
	supply := &stubSupply{
		state: entity.SaleState{
			Active:    true,
			Rate:      big.NewInt(250),
			Remaining: entity.NewAmount(asset, big.NewInt(1_000_000)),
		},
		supply: entity.Some(entity.NewAmount(asset, big.NewInt(9_000_000))),
	}
	router := newTestRouter(supply, &stubAllowance{}, &stubOrchestrator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sale", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"active":true`)
	assert.Contains(t, body, `"rate":"250"`)
	assert.Contains(t, body, `"remaining":"1000000"`)
	assert.Contains(t, body, `"totalSupply":"9000000"`)
}

func TestGetAllowanceHandler_Unresolved(t *testing.T) {
	allowance := &stubAllowance{}
	router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, allowance, &stubOrchestrator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/allowance", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "status_message")
	assert.False(t, allowance.gotSpender.IsPresent(),
		"an unconfigured sale address must reach the reader as absent, not as an empty string")
}

func TestPostBuyHandler_BadBody(t *testing.T) {
	router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, &stubAllowance{}, &stubOrchestrator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostBuyHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"estimation failure", &entity.EstimationError{Method: "buy", Err: errors.New("reverted")}, http.StatusUnprocessableEntity},
		{"submission failure", &entity.SubmissionError{Method: "buy", Err: errors.New("rejected")}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, &stubAllowance{}, &stubOrchestrator{err: tc.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"amount":"1000"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestPostBuyHandler_Skipped(t *testing.T) {
	router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, &stubAllowance{}, &stubOrchestrator{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"amount":"1000"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Operation skipped")
}

func TestPostBuyHandler_Success(t *testing.T) {
	orch := &stubOrchestrator{receipt: &entity.PurchaseReceipt{TokenAddress: "0xsale"}}
	router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, &stubAllowance{}, orch)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/buy", strings.NewReader(`{"amount":"1000"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tokenAddress":"0xsale"`)
}

func TestPostApproveHandler_Success(t *testing.T) {
	outcome := entity.SubmittedOutcome("0xhash")
	orch := &stubOrchestrator{outcome: &outcome}
	router := newTestRouter(&stubSupply{state: entity.SaleState{Rate: big.NewInt(1)}}, &stubAllowance{}, orch)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/approve", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"submitted"`)
	assert.Contains(t, w.Body.String(), `"tx":"0xhash"`)
}
