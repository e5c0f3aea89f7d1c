package usecase

import (
	"context"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

// StatementUseCase serves read-only views of the transaction ledger.
type StatementUseCase struct {
	txRepo TransactionRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(txRepo TransactionRepository) *StatementUseCase {
	return &StatementUseCase{txRepo: txRepo}
}

// GetTransaction retrieves a ledger entry by ID.
func (uc *StatementUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// GetByReference retrieves a ledger entry by its reference number.
func (uc *StatementUseCase) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	return uc.txRepo.GetByReference(ctx, referenceNumber)
}

// ListByAccount lists an account's ledger entries, newest first.
func (uc *StatementUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.Transaction, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.txRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
