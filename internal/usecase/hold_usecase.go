package usecase

import (
	"context"
	"time"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/metrics"
)

// HoldUseCase manages balance holds: placing, releasing, and capturing
// encumbered funds.
type HoldUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	holdRepo    HoldRepository
	txRepo      TransactionRepository
	ledger      *domain.LedgerService
	ids         domain.IDGenerator
	metrics     *metrics.Metrics
}

// NewHoldUseCase creates a new HoldUseCase. metrics may be nil.
func NewHoldUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	holdRepo HoldRepository,
	txRepo TransactionRepository,
	ledger *domain.LedgerService,
	ids domain.IDGenerator,
	m *metrics.Metrics,
) *HoldUseCase {
	return &HoldUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		holdRepo:    holdRepo,
		txRepo:      txRepo,
		ledger:      ledger,
		ids:         ids,
		metrics:     m,
	}
}

// PlaceHoldInput represents input for placing a hold.
type PlaceHoldInput struct {
	AccountID   string
	Amount      domain.Money
	Description string
}

// Place encumbers funds on an account: available balance drops, balance is
// untouched, and an ACTIVE hold records the encumbrance.
func (uc *HoldUseCase) Place(ctx context.Context, input PlaceHoldInput) (*domain.Hold, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	dbtx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbtx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, dbtx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := account.PlaceHold(input.Amount, now); err != nil {
		return nil, err
	}

	hold := &domain.Hold{
		ID:          uc.ids.Generate(),
		AccountID:   account.ID,
		Amount:      input.Amount,
		Description: input.Description,
		Status:      domain.HoldStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := hold.Validate(); err != nil {
		return nil, err
	}

	if err := uc.holdRepo.Create(txCtx, dbtx, hold); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalances(txCtx, dbtx, account); err != nil {
		return nil, err
	}

	if err := dbtx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.HoldsPlaced.Inc()
	}

	return hold, nil
}

// Release cancels an active hold and returns the funds to the available
// balance.
func (uc *HoldUseCase) Release(ctx context.Context, holdID string) (*domain.Hold, error) {
	hold, err := uc.settle(ctx, holdID, domain.HoldStatusReleased, func(account *domain.Account, hold *domain.Hold, now time.Time) (*domain.Transaction, error) {
		return nil, account.ReleaseHold(hold.Amount, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.HoldsReleased.Inc()
	}

	return hold, nil
}

// Capture settles an active hold against the balance, recording a
// WITHDRAWAL ledger entry for the captured amount.
func (uc *HoldUseCase) Capture(ctx context.Context, holdID string) (*domain.Hold, error) {
	hold, err := uc.settle(ctx, holdID, domain.HoldStatusCaptured, func(account *domain.Account, hold *domain.Hold, now time.Time) (*domain.Transaction, error) {
		return uc.ledger.Capture(account, hold, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.HoldsCaptured.Inc()
	}

	return hold, nil
}

// settle loads the hold and its account under row locks, applies the
// terminal transition, and commits everything atomically.
func (uc *HoldUseCase) settle(ctx context.Context, holdID string, status domain.HoldStatus, apply func(*domain.Account, *domain.Hold, time.Time) (*domain.Transaction, error)) (*domain.Hold, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	dbtx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbtx.Rollback(txCtx) }()

	hold, err := uc.holdRepo.GetByIDForUpdate(txCtx, dbtx, holdID)
	if err != nil {
		return nil, err
	}

	if hold.Status != domain.HoldStatusActive {
		return nil, domain.ErrHoldNotActive
	}

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, dbtx, hold.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entry, err := apply(account, hold, now)
	if err != nil {
		return nil, err
	}

	if entry != nil {
		if err := uc.txRepo.Create(txCtx, dbtx, entry); err != nil {
			return nil, err
		}
	}

	if err := uc.holdRepo.UpdateStatus(txCtx, dbtx, hold.ID, status, now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalances(txCtx, dbtx, account); err != nil {
		return nil, err
	}

	if err := dbtx.Commit(txCtx); err != nil {
		return nil, err
	}

	hold.Status = status
	hold.UpdatedAt = now

	return hold, nil
}

// ListByAccountInput represents input for listing an account's holds.
type ListByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists holds placed on an account.
func (uc *HoldUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Hold, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.holdRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
