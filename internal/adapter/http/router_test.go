package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/adapter/http/handler"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

type stubAccountService struct{}

func (s *stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc-1"}, nil
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (s *stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return nil, nil
}

func (s *stubAccountService) UpdateAccount(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (s *stubAccountService) DeleteAccount(ctx context.Context, id string) error { return nil }

type stubTransactionService struct{}

func (s *stubTransactionService) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "tx-1"}, nil
}

func (s *stubTransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return &domain.Transaction{ID: id}, nil
}

func (s *stubTransactionService) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return nil, nil
}

func (s *stubTransactionService) DeleteTransaction(ctx context.Context, id string) error {
	return nil
}

type stubBalanceService struct{}

func (s *stubBalanceService) GetAccountBalance(ctx context.Context, accountID string) (*usecase.AccountBalance, error) {
	return &usecase.AccountBalance{AccountID: accountID}, nil
}

func (s *stubBalanceService) ListBalances(ctx context.Context, input usecase.ListBalancesInput) ([]*usecase.AccountBalance, error) {
	return nil, nil
}

func (s *stubBalanceService) GetRolledUpBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *stubBalanceService) GetTrialBalance(ctx context.Context) (*usecase.TrialBalance, error) {
	return &usecase.TrialBalance{Balanced: true}, nil
}

func newRouterConfig() RouterConfig {
	logger := zerolog.Nop()

	return RouterConfig{
		AccountHandler:     handler.NewAccountHandler(&stubAccountService{}, logger),
		TransactionHandler: handler.NewTransactionHandler(&stubTransactionService{}, logger),
		BalanceHandler:     handler.NewBalanceHandler(&stubBalanceService{}, logger),
		HealthHandler:      handler.NewHealthHandler(nil, nil),
		Logger:             logger,
	}
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRouter, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Router")
	}

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/accounts/"},
		{http.MethodGet, "/api/v1/accounts/{id}"},
		{http.MethodPut, "/api/v1/accounts/{id}"},
		{http.MethodDelete, "/api/v1/accounts/{id}"},
		{http.MethodGet, "/api/v1/accounts/{id}/balance"},
		{http.MethodGet, "/api/v1/accounts/{id}/balance/rollup"},
		{http.MethodPost, "/api/v1/transactions/"},
		{http.MethodGet, "/api/v1/transactions/{id}"},
		{http.MethodDelete, "/api/v1/transactions/{id}"},
		{http.MethodGet, "/api/v1/balances/"},
		{http.MethodGet, "/api/v1/balances/trial"},
	}

	for _, route := range routes {
		rctx := chi.NewRouteContext()
		if !chiRouter.Match(rctx, route.method, route.path) {
			t.Fatalf("expected route %s %s to be registered", route.method, route.path)
		}
	}
}
