package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByIDForUpdate loads an account under an exclusive row lock held
	// until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, dbtx Transaction, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks multiple accounts; ids must already be in
	// canonical (sorted) order to avoid deadlocks.
	GetByIDsForUpdate(ctx context.Context, dbtx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalances(ctx context.Context, dbtx Transaction, account *domain.Account) error
	UpdateStatus(ctx context.Context, dbtx Transaction, account *domain.Account) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Account, error)
}

// TransactionRepository defines data access for ledger entries.
type TransactionRepository interface {
	Create(ctx context.Context, dbtx Transaction, tx *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// TransferRepository defines data access for transfers.
type TransferRepository interface {
	// Create fails with domain.ErrDuplicateIdempotencyKey when the
	// idempotency-key unique constraint is violated.
	Create(ctx context.Context, dbtx Transaction, transfer *domain.Transfer) error
	GetByID(ctx context.Context, id string) (*domain.Transfer, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error)
	// GetByReversedTransferID finds the REVERSAL transfer compensating the
	// given transfer, if one exists.
	GetByReversedTransferID(ctx context.Context, transferID string) (*domain.Transfer, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error)
	// SumTransferredSince sums principal amounts moved out of the account
	// since the given instant (fees excluded), for limit enforcement.
	SumTransferredSince(ctx context.Context, dbtx Transaction, sourceAccountID string, since time.Time) (decimal.Decimal, error)
}

// HoldRepository defines data access for holds.
type HoldRepository interface {
	Create(ctx context.Context, dbtx Transaction, hold *domain.Hold) error
	GetByID(ctx context.Context, id string) (*domain.Hold, error)
	GetByIDForUpdate(ctx context.Context, dbtx Transaction, id string) (*domain.Hold, error)
	UpdateStatus(ctx context.Context, dbtx Transaction, id string, status domain.HoldStatus, updatedAt time.Time) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Hold, error)
}

// Transaction represents a database transaction: the atomic unit of work
// every money movement commits inside.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage at the HTTP boundary.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
