package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// StatementService is the use case surface the transaction handler needs.
type StatementService interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles ledger entry (statement) endpoints.
type TransactionHandler struct {
	statements StatementService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(statements StatementService) *TransactionHandler {
	return &TransactionHandler{statements: statements}
}

// Get handles GET /api/v1/transactions/{id}.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.statements.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(entry))
}

// GetByReference handles GET /api/v1/transactions/reference/{reference}.
func (h *TransactionHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	entry, err := h.statements.GetByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(entry))
}

// ListByAccount handles GET /api/v1/accounts/{id}/transactions.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	entries, err := h.statements.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(entries))
}
