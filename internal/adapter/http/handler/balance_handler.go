package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bookkeeper/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	GetAccountBalance(ctx context.Context, accountID string) (*usecase.AccountBalance, error)
	ListBalances(ctx context.Context, input usecase.ListBalancesInput) ([]*usecase.AccountBalance, error)
	GetRolledUpBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
	GetTrialBalance(ctx context.Context) (*usecase.TrialBalance, error)
}

// BalanceHandler handles balance HTTP requests.
type BalanceHandler struct {
	balanceUC BalanceService
	logger    zerolog.Logger
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService, logger zerolog.Logger) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC, logger: logger}
}

// Get computes the balance of a single account from its own entries.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return
	}

	balance, err := h.balanceUC.GetAccountBalance(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to get balance")
		return
	}

	writeJSON(w, http.StatusOK, balance, "")
}

// GetRolledUp computes an account balance including all descendants.
func (h *BalanceHandler) GetRolledUp(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return
	}

	balance, err := h.balanceUC.GetRolledUpBalance(r.Context(), accountID)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to get rolled-up balance")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"account_id": accountID,
		"balance":    balance.String(),
	}, "")
}

// List computes balances for all active accounts, optionally filtered
// by account type.
func (h *BalanceHandler) List(w http.ResponseWriter, r *http.Request) {
	input := usecase.ListBalancesInput{}
	if accountType := r.URL.Query().Get("account_type"); accountType != "" {
		input.AccountType = &accountType
	}

	balances, err := h.balanceUC.ListBalances(r.Context(), input)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to list balances")
		return
	}

	writeJSON(w, http.StatusOK, balances, "")
}

// Trial computes the trial balance across all accounts.
func (h *BalanceHandler) Trial(w http.ResponseWriter, r *http.Request) {
	trial, err := h.balanceUC.GetTrialBalance(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to compute trial balance")
		return
	}

	writeJSON(w, http.StatusOK, trial, "")
}
