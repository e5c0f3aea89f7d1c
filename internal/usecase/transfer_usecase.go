package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates money movements: it owns the idempotency
// protocol, canonical lock ordering, and atomic persistence of the bundle
// the ledger service produces.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	txRepo       TransactionRepository
	ledger       *domain.LedgerService
	cache        Cache
	metrics      *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. cache and metrics may
// be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	txRepo TransactionRepository,
	ledger *domain.LedgerService,
	cache Cache,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		txRepo:       txRepo,
		ledger:       ledger,
		cache:        cache,
		metrics:      m,
	}
}

// ExecuteTransferInput represents input for executing a transfer.
type ExecuteTransferInput struct {
	SourceAccountID string
	TargetAccountID string
	Category        domain.TransferCategory
	Amount          domain.Money
	Fee             *domain.Money
	Description     string
	IdempotencyKey  string
}

// Execute runs a transfer exactly once per idempotency key. A replayed
// request returns the previously recorded Transfer; when two identical
// requests race, the loser of the unique-constraint insert fetches and
// returns the winner's Transfer.
func (uc *TransferUseCase) Execute(ctx context.Context, input ExecuteTransferInput) (*domain.Transfer, error) {
	start := time.Now()

	if input.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}

	if input.SourceAccountID == input.TargetAccountID {
		return nil, domain.ErrSameAccountTransfer
	}

	if err := domain.ValidateTransferAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	if input.Category == "" {
		input.Category = domain.TransferCategoryInternal
	}

	// Replay check before touching any account.
	existing, err := uc.transferRepo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
	if err == nil {
		if uc.metrics != nil {
			uc.metrics.TransfersReplayed.Inc()
		}

		return existing, nil
	}

	if !errors.Is(err, domain.ErrTransferNotFound) {
		return nil, err
	}

	transfer, err := uc.executeOnce(ctx, input, nil)
	if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
		// Lost the race against an identical concurrent request: the
		// winner's transfer is the result.
		if uc.metrics != nil {
			uc.metrics.TransfersReplayed.Inc()
		}

		return uc.transferRepo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
	}

	if err != nil {
		if uc.metrics != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorKind(err)).Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersExecuted.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amountF, _ := transfer.Amount.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amountF)
	}

	return transfer, nil
}

// executeOnce performs a single attempt inside one database transaction.
func (uc *TransferUseCase) executeOnce(ctx context.Context, input ExecuteTransferInput, reversedTransferID *string) (*domain.Transfer, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	dbtx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbtx.Rollback(txCtx) }()

	// Canonical lock order prevents deadlocks between opposite-direction
	// transfers over the same account pair.
	ids := []string{input.SourceAccountID, input.TargetAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(txCtx, dbtx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, acc := range accounts {
		accountMap[acc.ID] = acc
	}

	source := accountMap[input.SourceAccountID]
	target := accountMap[input.TargetAccountID]

	if source == nil || target == nil {
		return nil, domain.ErrAccountNotFound
	}

	now := time.Now().UTC()

	if err := uc.checkTransferLimits(txCtx, dbtx, source, input.Amount, now); err != nil {
		return nil, err
	}

	bundle, err := uc.ledger.ExecuteTransfer(domain.TransferRequest{
		Source:             source,
		Target:             target,
		Category:           input.Category,
		Amount:             input.Amount,
		Fee:                input.Fee,
		Description:        input.Description,
		IdempotencyKey:     input.IdempotencyKey,
		ReversedTransferID: reversedTransferID,
	}, now)
	if err != nil {
		return nil, err
	}

	// The unique constraint on idempotency_key decides the race here.
	if err := uc.transferRepo.Create(txCtx, dbtx, bundle.Transfer); err != nil {
		return nil, err
	}

	for _, entry := range bundle.Transactions() {
		if err := uc.txRepo.Create(txCtx, dbtx, entry); err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.UpdateBalances(txCtx, dbtx, source); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalances(txCtx, dbtx, target); err != nil {
		return nil, err
	}

	if err := dbtx.Commit(txCtx); err != nil {
		return nil, err
	}

	return bundle.Transfer, nil
}

// checkTransferLimits enforces the account's daily and monthly transfer
// limits over prior TRANSFER_OUT principal amounts. A zero limit means
// unlimited.
func (uc *TransferUseCase) checkTransferLimits(ctx context.Context, dbtx Transaction, source *domain.Account, amount domain.Money, now time.Time) error {
	// The window sums are raw decimals, so the currency check has to happen
	// here; otherwise a mismatched request could surface as a limit breach.
	if amount.Currency != source.Currency {
		return domain.ErrCurrencyMismatch
	}

	checkWindow := func(limit domain.Money, since time.Time) error {
		if limit.IsZero() {
			return nil
		}

		transferred, err := uc.transferRepo.SumTransferredSince(ctx, dbtx, source.ID, since)
		if err != nil {
			return err
		}

		if transferred.Add(amount.Amount).GreaterThan(limit.Amount) {
			return domain.ErrTransferLimitExceeded
		}

		return nil
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := checkWindow(source.DailyTransferLimit, dayStart); err != nil {
		return err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return checkWindow(source.MonthlyTransferLimit, monthStart)
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID   string
	Amount      domain.Money
	Description string
}

// Deposit credits a single account and records the DEPOSIT entry.
func (uc *TransferUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.Transaction, error) {
	tx, err := uc.singleAccountMovement(ctx, input.AccountID, func(acc *domain.Account, now time.Time) (*domain.Transaction, error) {
		return uc.ledger.Deposit(acc, input.Amount, input.Description, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsExecuted.Inc()
	}

	return tx, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountID   string
	Amount      domain.Money
	Description string
}

// Withdraw debits a single account and records the WITHDRAWAL entry.
func (uc *TransferUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*domain.Transaction, error) {
	tx, err := uc.singleAccountMovement(ctx, input.AccountID, func(acc *domain.Account, now time.Time) (*domain.Transaction, error) {
		return uc.ledger.Withdraw(acc, input.Amount, input.Description, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.WithdrawalsExecuted.Inc()
	}

	return tx, nil
}

// singleAccountMovement locks one account, applies the movement, and
// commits the entry and new balances atomically.
func (uc *TransferUseCase) singleAccountMovement(ctx context.Context, accountID string, move func(*domain.Account, time.Time) (*domain.Transaction, error)) (*domain.Transaction, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	dbtx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbtx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, dbtx, accountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entry, err := move(account, now)
	if err != nil {
		return nil, err
	}

	if err := uc.txRepo.Create(txCtx, dbtx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalances(txCtx, dbtx, account); err != nil {
		return nil, err
	}

	if err := dbtx.Commit(txCtx); err != nil {
		return nil, err
	}

	return entry, nil
}

// ReverseTransferInput represents input for reversing a transfer.
type ReverseTransferInput struct {
	TransferID     string
	IdempotencyKey string
	Description    string
}

// Reverse moves the principal of an executed transfer back from target to
// source as a new REVERSAL transfer under its own idempotency key. A
// transfer can be reversed at most once; fees are not refunded.
func (uc *TransferUseCase) Reverse(ctx context.Context, input ReverseTransferInput) (*domain.Transfer, error) {
	if input.IdempotencyKey == "" {
		return nil, domain.ErrMissingIdempotencyKey
	}

	original, err := uc.transferRepo.GetByID(ctx, input.TransferID)
	if err != nil {
		return nil, err
	}

	if original.Category == domain.TransferCategoryReversal {
		return nil, domain.ErrCannotReverse
	}

	existing, err := uc.transferRepo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, domain.ErrTransferNotFound) {
		return nil, err
	}

	// A transfer is reversible at most once, even across distinct
	// idempotency keys. The partial unique index on reversed_transfer_id
	// backs this check against concurrent reversals.
	_, err = uc.transferRepo.GetByReversedTransferID(ctx, original.ID)
	if err == nil {
		return nil, domain.ErrTransferAlreadyReversed
	}

	if !errors.Is(err, domain.ErrTransferNotFound) {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = "reversal of " + original.ID
	}

	transfer, err := uc.executeOnce(ctx, ExecuteTransferInput{
		SourceAccountID: original.TargetAccountID,
		TargetAccountID: original.SourceAccountID,
		Category:        domain.TransferCategoryReversal,
		Amount:          original.Amount,
		Description:     description,
		IdempotencyKey:  input.IdempotencyKey,
	}, &original.ID)
	if errors.Is(err, domain.ErrDuplicateIdempotencyKey) {
		return uc.transferRepo.GetByIdempotencyKey(ctx, input.IdempotencyKey)
	}

	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersReversed.Inc()
	}

	return transfer, nil
}

// GetTransfer retrieves a transfer by ID through the read-through cache.
// Transfers are immutable, so cached copies never go stale.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.Transfer, error) {
	cacheKey := "transfer:" + id

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil && raw != nil {
			var transfer domain.Transfer
			if err := json.Unmarshal(raw, &transfer); err == nil {
				return &transfer, nil
			}
		}
	}

	transfer, err := uc.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(transfer); err == nil {
			_ = uc.cache.Set(ctx, cacheKey, raw, TransferCacheTTL)
		}
	}

	return transfer, nil
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists transfers touching an account.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.Transfer, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// errorKind labels a domain error for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "currency_mismatch"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrTransferLimitExceeded):
		return "limit_exceeded"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "other"
	}
}
