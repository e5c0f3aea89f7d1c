package dto

import (
	"time"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

// AccountResponse represents an account in API responses. Amounts render
// as fixed two-decimal strings.
type AccountResponse struct {
	ID                   string     `json:"id"`
	CustomerID           string     `json:"customer_id"`
	AccountNumber        string     `json:"account_number"`
	Alias                string     `json:"alias"`
	Type                 string     `json:"type"`
	Currency             string     `json:"currency"`
	Status               string     `json:"status"`
	Balance              string     `json:"balance"`
	AvailableBalance     string     `json:"available_balance"`
	DailyTransferLimit   string     `json:"daily_transfer_limit"`
	MonthlyTransferLimit string     `json:"monthly_transfer_limit"`
	Version              int64      `json:"version"`
	OpenedAt             time.Time  `json:"opened_at"`
	ClosedAt             *time.Time `json:"closed_at,omitempty"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:                   a.ID,
		CustomerID:           a.CustomerID,
		AccountNumber:        a.AccountNumber,
		Alias:                a.Alias,
		Type:                 string(a.Type),
		Currency:             a.Currency,
		Status:               string(a.Status),
		Balance:              a.Balance.Amount.StringFixed(2),
		AvailableBalance:     a.AvailableBalance.Amount.StringFixed(2),
		DailyTransferLimit:   a.DailyTransferLimit.Amount.StringFixed(2),
		MonthlyTransferLimit: a.MonthlyTransferLimit.Amount.StringFixed(2),
		Version:              a.Version,
		OpenedAt:             a.OpenedAt,
		ClosedAt:             a.ClosedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransferResponse represents a transfer in API responses.
type TransferResponse struct {
	ID                  string    `json:"id"`
	SourceAccountID     string    `json:"source_account_id"`
	TargetAccountID     string    `json:"target_account_id"`
	Category            string    `json:"category"`
	Amount              string    `json:"amount"`
	Currency            string    `json:"currency"`
	Fee                 *string   `json:"fee,omitempty"`
	Description         string    `json:"description,omitempty"`
	DebitTransactionID  string    `json:"debit_transaction_id"`
	CreditTransactionID string    `json:"credit_transaction_id"`
	FeeTransactionID    *string   `json:"fee_transaction_id,omitempty"`
	ReversedTransferID  *string   `json:"reversed_transfer_id,omitempty"`
	ExecutedAt          time.Time `json:"executed_at"`
}

// TransferFromDomain converts domain transfer to response.
func TransferFromDomain(t *domain.Transfer) *TransferResponse {
	resp := &TransferResponse{
		ID:                  t.ID,
		SourceAccountID:     t.SourceAccountID,
		TargetAccountID:     t.TargetAccountID,
		Category:            string(t.Category),
		Amount:              t.Amount.Amount.StringFixed(2),
		Currency:            t.Amount.Currency,
		Description:         t.Description,
		DebitTransactionID:  t.DebitTransactionID,
		CreditTransactionID: t.CreditTransactionID,
		FeeTransactionID:    t.FeeTransactionID,
		ReversedTransferID:  t.ReversedTransferID,
		ExecutedAt:          t.ExecutedAt,
	}

	if t.FeeAmount != nil {
		fee := t.FeeAmount.Amount.StringFixed(2)
		resp.Fee = &fee
	}

	return resp
}

// TransfersFromDomain converts domain transfers to responses.
func TransfersFromDomain(transfers []*domain.Transfer) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	Currency        string    `json:"currency"`
	BalanceAfter    string    `json:"balance_after"`
	Description     string    `json:"description,omitempty"`
	ReferenceNumber string    `json:"reference_number"`
	Status          string    `json:"status"`
	ExecutedAt      time.Time `json:"executed_at"`
}

// TransactionFromDomain converts a domain ledger entry to response.
func TransactionFromDomain(tx *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount.Amount.StringFixed(2),
		Currency:        tx.Amount.Currency,
		BalanceAfter:    tx.BalanceAfter.Amount.StringFixed(2),
		Description:     tx.Description,
		ReferenceNumber: tx.ReferenceNumber,
		Status:          string(tx.Status),
		ExecutedAt:      tx.ExecutedAt,
	}
}

// TransactionsFromDomain converts domain ledger entries to responses.
func TransactionsFromDomain(entries []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(entries))
	for i, tx := range entries {
		result[i] = TransactionFromDomain(tx)
	}
	return result
}

// HoldResponse represents a hold in API responses.
type HoldResponse struct {
	ID          string     `json:"id"`
	AccountID   string     `json:"account_id"`
	Amount      string     `json:"amount"`
	Currency    string     `json:"currency"`
	Status      string     `json:"status"`
	Description string     `json:"description,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// HoldFromDomain converts a domain hold to response.
func HoldFromDomain(h *domain.Hold) *HoldResponse {
	return &HoldResponse{
		ID:          h.ID,
		AccountID:   h.AccountID,
		Amount:      h.Amount.Amount.StringFixed(2),
		Currency:    h.Amount.Currency,
		Status:      string(h.Status),
		Description: h.Description,
		ExpiresAt:   h.ExpiresAt,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}

// HoldsFromDomain converts domain holds to responses.
func HoldsFromDomain(holds []*domain.Hold) []*HoldResponse {
	result := make([]*HoldResponse, len(holds))
	for i, h := range holds {
		result[i] = HoldFromDomain(h)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
