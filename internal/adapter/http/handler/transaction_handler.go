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

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// TransactionHandler handles transaction HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
	logger        zerolog.Logger
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService, logger zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC, logger: logger}
}

// Create records a new balanced transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	transaction, err := h.transactionUC.CreateTransaction(r.Context(), input)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(transaction), "transaction recorded")
}

// Get retrieves a transaction with its entries.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID")
		return
	}

	transaction, err := h.transactionUC.GetTransaction(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to get transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(transaction), "")
}

// List lists transactions, most recent first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transactions, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions), "")
}

// Delete removes a transaction and its entries.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID")
		return
	}

	if err := h.transactionUC.DeleteTransaction(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "failed to delete transaction")
		return
	}

	writeJSON(w, http.StatusOK, nil, "transaction deleted")
}
