package domain

import "time"

// TransferCategory classifies a transfer.
type TransferCategory string

const (
	TransferCategoryInternal TransferCategory = "INTERNAL"
	TransferCategoryExternal TransferCategory = "EXTERNAL"
	TransferCategoryReversal TransferCategory = "REVERSAL"
)

// Transfer links one debit and one credit Transaction (plus an optional fee
// Transaction) as a single business event. It stores transaction ids, never
// live references. Immutable after creation; IdempotencyKey is unique
// across all transfers.
type Transfer struct {
	ID                  string
	SourceAccountID     string
	TargetAccountID     string
	Category            TransferCategory
	Amount              Money
	FeeAmount           *Money
	Description         string
	DebitTransactionID  string
	CreditTransactionID string
	FeeTransactionID    *string
	IdempotencyKey      string
	ReversedTransferID  *string
	ExecutedAt          time.Time
}

// Validate checks the structural invariants of a transfer request.
func (t *Transfer) Validate() error {
	if t.SourceAccountID == t.TargetAccountID {
		return ErrSameAccountTransfer
	}

	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if t.FeeAmount != nil && t.FeeAmount.IsNegative() {
		return ErrInvalidAmount
	}

	if t.IdempotencyKey == "" {
		return ErrMissingIdempotencyKey
	}

	return nil
}
