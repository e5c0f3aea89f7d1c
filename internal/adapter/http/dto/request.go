package dto

import (
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	CustomerID           string  `json:"customer_id"`
	Type                 string  `json:"type"`
	Currency             string  `json:"currency"`
	Alias                string  `json:"alias,omitempty"`
	DailyTransferLimit   *string `json:"daily_transfer_limit,omitempty"`
	MonthlyTransferLimit *string `json:"monthly_transfer_limit,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() (usecase.OpenAccountInput, error) {
	input := usecase.OpenAccountInput{
		CustomerID: r.CustomerID,
		Type:       domain.AccountType(r.Type),
		Currency:   r.Currency,
		Alias:      r.Alias,
	}

	if r.DailyTransferLimit != nil {
		limit, err := domain.NewMoneyFromString(*r.DailyTransferLimit, r.Currency)
		if err != nil {
			return usecase.OpenAccountInput{}, err
		}

		input.DailyTransferLimit = &limit
	}

	if r.MonthlyTransferLimit != nil {
		limit, err := domain.NewMoneyFromString(*r.MonthlyTransferLimit, r.Currency)
		if err != nil {
			return usecase.OpenAccountInput{}, err
		}

		input.MonthlyTransferLimit = &limit
	}

	return input, nil
}

// ExecuteTransferRequest represents a request to execute a transfer.
type ExecuteTransferRequest struct {
	SourceAccountID string  `json:"source_account_id"`
	TargetAccountID string  `json:"target_account_id"`
	Category        string  `json:"category,omitempty"`
	Amount          string  `json:"amount"`
	Currency        string  `json:"currency"`
	Fee             *string `json:"fee,omitempty"`
	Description     string  `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. The idempotency key arrives
// in the Idempotency-Key header, not the body.
func (r *ExecuteTransferRequest) ToUseCaseInput(idempotencyKey string) (usecase.ExecuteTransferInput, error) {
	amount, err := domain.NewMoneyFromString(r.Amount, r.Currency)
	if err != nil {
		return usecase.ExecuteTransferInput{}, err
	}

	input := usecase.ExecuteTransferInput{
		SourceAccountID: r.SourceAccountID,
		TargetAccountID: r.TargetAccountID,
		Category:        domain.TransferCategory(r.Category),
		Amount:          amount,
		Description:     r.Description,
		IdempotencyKey:  idempotencyKey,
	}

	if r.Fee != nil {
		fee, err := domain.NewMoneyFromString(*r.Fee, r.Currency)
		if err != nil {
			return usecase.ExecuteTransferInput{}, err
		}

		input.Fee = &fee
	}

	return input, nil
}

// ReverseTransferRequest represents a request to reverse a transfer.
type ReverseTransferRequest struct {
	Description string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseTransferRequest) ToUseCaseInput(transferID, idempotencyKey string) usecase.ReverseTransferInput {
	return usecase.ReverseTransferInput{
		TransferID:     transferID,
		IdempotencyKey: idempotencyKey,
		Description:    r.Description,
	}
}

// MovementRequest represents a deposit or withdrawal request.
type MovementRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// Money parses the request's amount.
func (r *MovementRequest) Money() (domain.Money, error) {
	return domain.NewMoneyFromString(r.Amount, r.Currency)
}

// PlaceHoldRequest represents a request to place a hold.
type PlaceHoldRequest struct {
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PlaceHoldRequest) ToUseCaseInput(accountID string) (usecase.PlaceHoldInput, error) {
	amount, err := domain.NewMoneyFromString(r.Amount, r.Currency)
	if err != nil {
		return usecase.PlaceHoldInput{}, err
	}

	return usecase.PlaceHoldInput{
		AccountID:   accountID,
		Amount:      amount,
		Description: r.Description,
	}, nil
}
