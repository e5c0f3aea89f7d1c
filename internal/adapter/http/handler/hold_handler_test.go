package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/adapter/http/dto"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

type holdServiceStub struct {
	placeFn   func(ctx context.Context, input usecase.PlaceHoldInput) (*domain.Hold, error)
	releaseFn func(ctx context.Context, holdID string) (*domain.Hold, error)
	captureFn func(ctx context.Context, holdID string) (*domain.Hold, error)
	listFn    func(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Hold, error)
}

func (s *holdServiceStub) Place(ctx context.Context, input usecase.PlaceHoldInput) (*domain.Hold, error) {
	return s.placeFn(ctx, input)
}

func (s *holdServiceStub) Release(ctx context.Context, holdID string) (*domain.Hold, error) {
	return s.releaseFn(ctx, holdID)
}

func (s *holdServiceStub) Capture(ctx context.Context, holdID string) (*domain.Hold, error) {
	return s.captureFn(ctx, holdID)
}

func (s *holdServiceStub) ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Hold, error) {
	return s.listFn(ctx, input)
}

func TestHoldHandler_Place_Success(t *testing.T) {
	amount, _ := domain.NewMoneyFromString("30", "USD")
	h := NewHoldHandler(&holdServiceStub{
		placeFn: func(ctx context.Context, input usecase.PlaceHoldInput) (*domain.Hold, error) {
			if input.AccountID != "acc-1" || !input.Amount.Amount.Equal(amount.Amount) {
				t.Fatalf("unexpected input %+v", input)
			}
			return &domain.Hold{
				ID:        "hold-1",
				AccountID: input.AccountID,
				Amount:    input.Amount,
				Status:    domain.HoldStatusActive,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.PlaceHoldRequest{Amount: "30", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/holds", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Place(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.HoldResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.HoldStatusActive) {
		t.Fatalf("expected ACTIVE hold, got %s", resp.Status)
	}
}

func TestHoldHandler_Place_InsufficientFunds(t *testing.T) {
	h := NewHoldHandler(&holdServiceStub{
		placeFn: func(ctx context.Context, input usecase.PlaceHoldInput) (*domain.Hold, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.PlaceHoldRequest{Amount: "3000", Currency: "USD"})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/holds", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Place(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHoldHandler_Release_NotActive(t *testing.T) {
	h := NewHoldHandler(&holdServiceStub{
		releaseFn: func(ctx context.Context, holdID string) (*domain.Hold, error) {
			return nil, domain.ErrHoldNotActive
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/holds/hold-1/release", nil)
	req = setChiURLParam(req, "id", "hold-1")
	rec := httptest.NewRecorder()

	h.Release(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHoldHandler_Capture(t *testing.T) {
	amount, _ := domain.NewMoneyFromString("30", "USD")
	h := NewHoldHandler(&holdServiceStub{
		captureFn: func(ctx context.Context, holdID string) (*domain.Hold, error) {
			return &domain.Hold{
				ID:        holdID,
				AccountID: "acc-1",
				Amount:    amount,
				Status:    domain.HoldStatusCaptured,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/holds/hold-1/capture", nil)
	req = setChiURLParam(req, "id", "hold-1")
	rec := httptest.NewRecorder()

	h.Capture(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.HoldResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != string(domain.HoldStatusCaptured) {
		t.Fatalf("expected CAPTURED hold, got %s", resp.Status)
	}
}

func TestHoldHandler_ListByAccount(t *testing.T) {
	h := NewHoldHandler(&holdServiceStub{
		listFn: func(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.Hold, error) {
			if input.AccountID != "acc-1" {
				t.Fatalf("unexpected input %+v", input)
			}
			return []*domain.Hold{{ID: "hold-1", AccountID: "acc-1", Amount: domain.Zero("USD")}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/holds", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
