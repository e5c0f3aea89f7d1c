package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// AccountService is the use case surface the account handler needs.
type AccountService interface {
	Open(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListByCustomer(ctx context.Context, input usecase.ListByCustomerInput) ([]*domain.Account, error)
	Freeze(ctx context.Context, id string) (*domain.Account, error)
	Unfreeze(ctx context.Context, id string) (*domain.Account, error)
	Close(ctx context.Context, id string) (*domain.Account, error)
}

// AccountHandler handles account endpoints.
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Open handles POST /api/v1/accounts.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		mapDomainError(w, err)
		return
	}

	account, err := h.accounts.Open(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get handles GET /api/v1/accounts/{id}.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByNumber handles GET /api/v1/accounts/number/{number}.
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListByCustomer handles GET /api/v1/customers/{customerID}/accounts.
func (h *AccountHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListByCustomer(r.Context(), usecase.ListByCustomerInput{
		CustomerID: chi.URLParam(r, "customerID"),
		Limit:      parseIntQuery(r, "limit", 0),
		Offset:     parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Freeze handles POST /api/v1/accounts/{id}/freeze.
func (h *AccountHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Freeze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Unfreeze handles POST /api/v1/accounts/{id}/unfreeze.
func (h *AccountHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Unfreeze(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Close handles POST /api/v1/accounts/{id}/close.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.Close(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
