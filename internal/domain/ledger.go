package domain

import "time"

// IDGenerator generates unique aggregate ids.
type IDGenerator interface {
	Generate() string
}

// ReferenceGenerator generates the opaque reference numbers stamped on
// transactions for external reconciliation. Uniqueness is enforced by the
// persistence layer.
type ReferenceGenerator interface {
	Generate() string
}

// LedgerService executes money movements over aggregates the caller has
// already loaded and locked. It is a pure computation: no storage access,
// no logging, no retries. Its result is only meaningful once the caller
// commits the whole bundle atomically.
type LedgerService struct {
	ids  IDGenerator
	refs ReferenceGenerator
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(ids IDGenerator, refs ReferenceGenerator) *LedgerService {
	return &LedgerService{ids: ids, refs: refs}
}

// TransferRequest is the input for ExecuteTransfer. Source and Target must
// be loaded for update by the caller for the duration of the unit of work.
type TransferRequest struct {
	Source             *Account
	Target             *Account
	Category           TransferCategory
	Amount             Money
	Fee                *Money
	Description        string
	IdempotencyKey     string
	ReversedTransferID *string
}

// TransferBundle is everything a transfer produced, returned as one unit
// for atomic persistence.
type TransferBundle struct {
	Transfer          *Transfer
	DebitTransaction  *Transaction
	CreditTransaction *Transaction
	FeeTransaction    *Transaction
}

// Transactions returns the bundle's ledger entries in application order.
func (b *TransferBundle) Transactions() []*Transaction {
	txs := []*Transaction{b.DebitTransaction}
	if b.FeeTransaction != nil {
		txs = append(txs, b.FeeTransaction)
	}

	return append(txs, b.CreditTransaction)
}

// ExecuteTransfer debits the source, optionally debits a fee, credits the
// target, and links the resulting transactions into a Transfer.
//
// Any failure aborts with the accounts possibly already mutated in memory;
// there is deliberately no in-core compensation. The caller runs this
// inside a transactional unit of work and discards all mutations on error,
// so no partial movement ever becomes durable.
func (s *LedgerService) ExecuteTransfer(req TransferRequest, now time.Time) (*TransferBundle, error) {
	if req.Source.ID == req.Target.ID {
		return nil, ErrSameAccountTransfer
	}

	if req.IdempotencyKey == "" {
		return nil, ErrMissingIdempotencyKey
	}

	bundle := &TransferBundle{}

	// Principal debit, balance snapshot taken after the mutation.
	if err := req.Source.Debit(req.Amount, now); err != nil {
		return nil, err
	}

	bundle.DebitTransaction = s.newTransaction(
		req.Source, TransactionTypeTransferOut, req.Amount, req.Description, now)

	// Fee is a second, independent debit with its own snapshot. A failure
	// here (e.g. funds left cover the principal but not the fee) aborts the
	// whole operation.
	if req.Fee != nil && !req.Fee.IsZero() {
		if err := req.Source.Debit(*req.Fee, now); err != nil {
			return nil, err
		}

		bundle.FeeTransaction = s.newTransaction(
			req.Source, TransactionTypeFee, *req.Fee, "transfer fee", now)
	}

	if err := req.Target.Credit(req.Amount, now); err != nil {
		return nil, err
	}

	bundle.CreditTransaction = s.newTransaction(
		req.Target, TransactionTypeTransferIn, req.Amount, req.Description, now)

	transfer := &Transfer{
		ID:                  s.ids.Generate(),
		SourceAccountID:     req.Source.ID,
		TargetAccountID:     req.Target.ID,
		Category:            req.Category,
		Amount:              req.Amount,
		FeeAmount:           req.Fee,
		Description:         req.Description,
		DebitTransactionID:  bundle.DebitTransaction.ID,
		CreditTransactionID: bundle.CreditTransaction.ID,
		IdempotencyKey:      req.IdempotencyKey,
		ReversedTransferID:  req.ReversedTransferID,
		ExecutedAt:          now,
	}

	if bundle.FeeTransaction != nil {
		transfer.FeeTransactionID = &bundle.FeeTransaction.ID
	}

	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	bundle.Transfer = transfer

	return bundle, nil
}

// Deposit credits a single account and returns the DEPOSIT entry.
func (s *LedgerService) Deposit(account *Account, amount Money, description string, now time.Time) (*Transaction, error) {
	if err := account.Credit(amount, now); err != nil {
		return nil, err
	}

	return s.newTransaction(account, TransactionTypeDeposit, amount, description, now), nil
}

// Withdraw debits a single account and returns the WITHDRAWAL entry.
func (s *LedgerService) Withdraw(account *Account, amount Money, description string, now time.Time) (*Transaction, error) {
	if err := account.Debit(amount, now); err != nil {
		return nil, err
	}

	return s.newTransaction(account, TransactionTypeWithdrawal, amount, description, now), nil
}

// Capture settles an active hold against the account balance and returns
// the WITHDRAWAL entry recording it. The hold's status transition is the
// caller's responsibility, inside the same unit of work.
func (s *LedgerService) Capture(account *Account, hold *Hold, now time.Time) (*Transaction, error) {
	if hold.Status != HoldStatusActive {
		return nil, ErrHoldNotActive
	}

	if err := account.CaptureHold(hold.Amount, now); err != nil {
		return nil, err
	}

	return s.newTransaction(account, TransactionTypeWithdrawal, hold.Amount, "hold capture", now), nil
}

func (s *LedgerService) newTransaction(account *Account, txType TransactionType, amount Money, description string, now time.Time) *Transaction {
	return &Transaction{
		ID:              s.ids.Generate(),
		AccountID:       account.ID,
		Type:            txType,
		Amount:          amount,
		BalanceAfter:    account.Balance,
		Description:     description,
		ReferenceNumber: s.refs.Generate(),
		Status:          TransactionStatusCompleted,
		ExecutedAt:      now,
	}
}
