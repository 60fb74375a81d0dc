package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountHandler handles chart-of-accounts HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	logger    zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, logger: logger}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account), "account created")
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to get account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account), "")
}

// List lists accounts ordered by code.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts), "")
}

// Update applies a partial update to an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return
	}

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), id, req.ToUseCaseInput())
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account), "account updated")
}

// Delete removes an account that has no entries.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID")
		return
	}

	if err := h.accountUC.DeleteAccount(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "failed to delete account")
		return
	}

	writeJSON(w, http.StatusOK, nil, "account deleted")
}
