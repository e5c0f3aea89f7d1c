package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle operations.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	numbers     *domain.AccountNumberGenerator
	ids         domain.IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	numbers *domain.AccountNumberGenerator,
	ids domain.IDGenerator,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		numbers:     numbers,
		ids:         ids,
		metrics:     m,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	CustomerID           string
	Type                 domain.AccountType
	Currency             string
	Alias                string
	DailyTransferLimit   *domain.Money
	MonthlyTransferLimit *domain.Money
}

// Open creates a new active account with a freshly generated account
// number. Generation retries on the (astronomically unlikely) number
// collision.
func (uc *AccountUseCase) Open(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidAccountType
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	if input.Alias != "" {
		if err := domain.ValidateAlias(input.Alias); err != nil {
			return nil, err
		}
	}

	zero := domain.Zero(input.Currency)

	dailyLimit := zero
	if input.DailyTransferLimit != nil {
		dailyLimit = *input.DailyTransferLimit
	}

	monthlyLimit := zero
	if input.MonthlyTransferLimit != nil {
		monthlyLimit = *input.MonthlyTransferLimit
	}

	var lastErr error
	for attempt := 0; attempt < MaxAccountNumberAttempts; attempt++ {
		number := uc.numbers.Generate(input.Type)

		alias := input.Alias
		if alias == "" {
			alias = defaultAlias(input.Type, number)
		}

		now := time.Now().UTC()

		account := &domain.Account{
			ID:                   uc.ids.Generate(),
			CustomerID:           input.CustomerID,
			AccountNumber:        number,
			Alias:                alias,
			Type:                 input.Type,
			Currency:             input.Currency,
			Status:               domain.AccountStatusActive,
			Balance:              zero,
			AvailableBalance:     zero,
			DailyTransferLimit:   dailyLimit,
			MonthlyTransferLimit: monthlyLimit,
			Version:              1,
			OpenedAt:             now,
			UpdatedAt:            now,
		}

		err := uc.accountRepo.Create(ctx, account)
		if errors.Is(err, domain.ErrAccountNumberTaken) {
			lastErr = err
			continue
		}

		if err != nil {
			return nil, err
		}

		if uc.metrics != nil {
			uc.metrics.AccountsOpened.Inc()
		}

		return account, nil
	}

	return nil, lastErr
}

// defaultAlias derives a readable alias from the account type and the last
// four digits of the account number.
func defaultAlias(accountType domain.AccountType, number string) string {
	suffix := number
	if len(number) > 4 {
		suffix = number[len(number)-4:]
	}

	return strings.ToLower(string(accountType)) + "-" + suffix
}

// Get retrieves an account by ID.
func (uc *AccountUseCase) Get(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// GetByNumber retrieves an account by its account number after validating
// the checksum, so malformed numbers never reach the database.
func (uc *AccountUseCase) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListByCustomerInput represents input for listing a customer's accounts.
type ListByCustomerInput struct {
	CustomerID string
	Limit      int
	Offset     int
}

// ListByCustomer lists accounts owned by a customer.
func (uc *AccountUseCase) ListByCustomer(ctx context.Context, input ListByCustomerInput) ([]*domain.Account, error) {
	limit, offset := clampPage(input.Limit, input.Offset)

	return uc.accountRepo.ListByCustomer(ctx, input.CustomerID, limit, offset)
}

// Freeze suspends all mutations on an account.
func (uc *AccountUseCase) Freeze(ctx context.Context, id string) (*domain.Account, error) {
	return uc.transition(ctx, id, "freeze", func(acc *domain.Account, now time.Time) error {
		return acc.Freeze(now)
	})
}

// Unfreeze reactivates a frozen account.
func (uc *AccountUseCase) Unfreeze(ctx context.Context, id string) (*domain.Account, error) {
	return uc.transition(ctx, id, "unfreeze", func(acc *domain.Account, now time.Time) error {
		return acc.Unfreeze(now)
	})
}

// Close permanently closes an account. The balance must be zero.
func (uc *AccountUseCase) Close(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.transition(ctx, id, "close", func(acc *domain.Account, now time.Time) error {
		return acc.Close(now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsClosed.Inc()
	}

	return account, nil
}

// transition applies a status change under an exclusive row lock so it
// cannot interleave with a concurrent balance mutation.
func (uc *AccountUseCase) transition(ctx context.Context, id, operation string, apply func(*domain.Account, time.Time) error) (*domain.Account, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	dbtx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = dbtx.Rollback(txCtx) }()

	account, err := uc.accountRepo.GetByIDForUpdate(txCtx, dbtx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(account, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateStatus(txCtx, dbtx, account); err != nil {
		return nil, err
	}

	if err := dbtx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountOperations.WithLabelValues(operation).Inc()
	}

	return account, nil
}
