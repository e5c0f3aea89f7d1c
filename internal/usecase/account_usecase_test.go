package usecase_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase/mocks"
)

func newAccountUseCase(accRepo *mocks.MockAccountRepository) *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(
		mocks.NewMockTransactionManager(),
		accRepo,
		domain.NewAccountNumberGenerator(rand.NewSource(1)),
		mocks.NewMockIDGenerator(),
		nil,
	)
}

func TestAccountUseCase_Open(t *testing.T) {
	t.Run("opens an active zero-balance account", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		account, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountTypeSavings,
			Currency:   "USD",
		})
		require.NoError(t, err)

		assert.Equal(t, domain.AccountStatusActive, account.Status)
		assert.True(t, account.Balance.IsZero())
		assert.True(t, account.AvailableBalance.IsZero())
		assert.Equal(t, "20", account.AccountNumber[:2])
		require.NoError(t, domain.ValidateAccountNumber(account.AccountNumber))
	})

	t.Run("default alias combines type and number suffix", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		account, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountTypeChecking,
			Currency:   "USD",
		})
		require.NoError(t, err)

		assert.Equal(t, "checking-"+account.AccountNumber[len(account.AccountNumber)-4:], account.Alias)
	})

	t.Run("retries on account number collision", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		attempts := 0
		accRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
			attempts++
			if attempts < 3 {
				return domain.ErrAccountNumberTaken
			}
			return nil
		}

		_, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountTypeChecking,
			Currency:   "USD",
		})
		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after exhausting collision retries", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		accRepo.CreateFunc = func(ctx context.Context, account *domain.Account) error {
			return domain.ErrAccountNumberTaken
		}

		_, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountTypeChecking,
			Currency:   "USD",
		})
		assert.ErrorIs(t, err, domain.ErrAccountNumberTaken)
	})

	t.Run("rejects invalid currency", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		_, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountTypeChecking,
			Currency:   "usd",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
	})

	t.Run("rejects unknown account type", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		_, err := uc.Open(context.Background(), usecase.OpenAccountInput{
			CustomerID: "cust-1",
			Type:       domain.AccountType("LOTTERY"),
			Currency:   "USD",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidAccountType)
	})
}

func TestAccountUseCase_GetByNumber(t *testing.T) {
	t.Run("rejects a corrupted account number before the lookup", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)

		lookups := 0
		accRepo.GetByNumberFunc = func(ctx context.Context, number string) (*domain.Account, error) {
			lookups++
			return nil, domain.ErrAccountNotFound
		}

		_, err := uc.GetByNumber(context.Background(), "1000000000000000000001")
		assert.ErrorIs(t, err, domain.ErrInvalidAccountNumber)
		assert.Zero(t, lookups)
	})
}

func TestAccountUseCase_Lifecycle(t *testing.T) {
	t.Run("freeze then unfreeze", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)
		seedAccount(t, accRepo, "acc-1", "100.00")

		frozen, err := uc.Freeze(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusFrozen, frozen.Status)

		active, err := uc.Unfreeze(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusActive, active.Status)
	})

	t.Run("close requires a zero balance", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)
		seedAccount(t, accRepo, "acc-1", "100.00")

		_, err := uc.Close(context.Background(), "acc-1")
		assert.ErrorIs(t, err, domain.ErrAccountNotEmpty)
	})

	t.Run("close succeeds on an empty account", func(t *testing.T) {
		accRepo := mocks.NewMockAccountRepository()
		uc := newAccountUseCase(accRepo)
		seedAccount(t, accRepo, "acc-1", "0.00")

		closed, err := uc.Close(context.Background(), "acc-1")
		require.NoError(t, err)
		assert.Equal(t, domain.AccountStatusClosed, closed.Status)
		assert.NotNil(t, closed.ClosedAt)
	})
}
