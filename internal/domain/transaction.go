package domain

import "time"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit     TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal  TransactionType = "WITHDRAWAL"
	TransactionTypeTransferIn  TransactionType = "TRANSFER_IN"
	TransactionTypeTransferOut TransactionType = "TRANSFER_OUT"
	TransactionTypeFee         TransactionType = "FEE"
)

// TransactionStatus is the settlement state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusReversed  TransactionStatus = "REVERSED"
)

// Transaction is a single immutable ledger entry on one account: the
// append-only audit trail. Amount always carries a positive magnitude; the
// Type says which direction the balance moved. BalanceAfter snapshots the
// account balance immediately after the entry was applied.
type Transaction struct {
	ID              string
	AccountID       string
	Type            TransactionType
	Amount          Money
	BalanceAfter    Money
	Description     string
	ReferenceNumber string
	Status          TransactionStatus
	ExecutedAt      time.Time
}
