package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// HoldService is the use case surface the hold handler needs.
type HoldService interface {
	Place(ctx context.Context, input usecase.PlaceHoldInput) (*domain.Hold, error)
	Release(ctx context.Context, holdID string) (*domain.Hold, error)
	Capture(ctx context.Context, holdID string) (*domain.Hold, error)
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Hold, error)
}

// HoldHandler handles hold endpoints.
type HoldHandler struct {
	holds HoldService
}

// NewHoldHandler creates a new hold handler.
func NewHoldHandler(holds HoldService) *HoldHandler {
	return &HoldHandler{holds: holds}
}

// Place handles POST /api/v1/accounts/{id}/holds.
func (h *HoldHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceHoldRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	input, err := req.ToUseCaseInput(chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	hold, err := h.holds.Place(r.Context(), input)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.HoldFromDomain(hold))
}

// Release handles POST /api/v1/holds/{id}/release.
func (h *HoldHandler) Release(w http.ResponseWriter, r *http.Request) {
	hold, err := h.holds.Release(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldFromDomain(hold))
}

// Capture handles POST /api/v1/holds/{id}/capture.
func (h *HoldHandler) Capture(w http.ResponseWriter, r *http.Request) {
	hold, err := h.holds.Capture(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldFromDomain(hold))
}

// ListByAccount handles GET /api/v1/accounts/{id}/holds.
func (h *HoldHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	holds, err := h.holds.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldsFromDomain(holds))
}
