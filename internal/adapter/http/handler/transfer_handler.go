package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// TransferService is the use case surface the transfer handler needs.
type TransferService interface {
	Execute(ctx context.Context, input usecase.ExecuteTransferInput) (*domain.Transfer, error)
	GetTransfer(ctx context.Context, id string) (*domain.Transfer, error)
	Reverse(ctx context.Context, input usecase.ReverseTransferInput) (*domain.Transfer, error)
	ListTransfersByAccount(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.Transfer, error)
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.WithdrawInput) (*domain.Transaction, error)
}

// TransferHandler handles transfer, deposit and withdrawal endpoints.
type TransferHandler struct {
	transfers TransferService
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(transfers TransferService) *TransferHandler {
	return &TransferHandler{transfers: transfers}
}

// Execute handles POST /api/v1/transfers.
func (h *TransferHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.ExecuteTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput(r.Header.Get(headerIdempotencyKey))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	transfer, err := h.transfers.Execute(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// Get handles GET /api/v1/transfers/{id}.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	transfer, err := h.transfers.GetTransfer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// Reverse handles POST /api/v1/transfers/{id}/reverse.
func (h *TransferHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input := req.ToUseCaseInput(chi.URLParam(r, "id"), r.Header.Get(headerIdempotencyKey))

	transfer, err := h.transfers.Reverse(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(transfer))
}

// ListByAccount handles GET /api/v1/accounts/{id}/transfers.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transfers.ListTransfersByAccount(r.Context(), usecase.ListTransfersByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}

// Deposit handles POST /api/v1/accounts/{id}/deposits.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.MovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	amount, err := req.Money()
	if err != nil {
		mapDomainError(w, err)
		return
	}

	entry, err := h.transfers.Deposit(r.Context(), usecase.DepositInput{
		AccountID:   chi.URLParam(r, "id"),
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(entry))
}

// Withdraw handles POST /api/v1/accounts/{id}/withdrawals.
func (h *TransferHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.MovementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	amount, err := req.Money()
	if err != nil {
		mapDomainError(w, err)
		return
	}

	entry, err := h.transfers.Withdraw(r.Context(), usecase.WithdrawInput{
		AccountID:   chi.URLParam(r, "id"),
		Amount:      amount,
		Description: req.Description,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(entry))
}
