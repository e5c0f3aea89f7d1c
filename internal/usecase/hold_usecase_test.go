package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase/mocks"
)

type holdFixture struct {
	accRepo  *mocks.MockAccountRepository
	holdRepo *mocks.MockHoldRepository
	txRepo   *mocks.MockTransactionRepository
	uc       *usecase.HoldUseCase
}

func newHoldFixture() *holdFixture {
	accRepo := mocks.NewMockAccountRepository()
	holdRepo := mocks.NewMockHoldRepository()
	txRepo := mocks.NewMockTransactionRepository()
	ids := mocks.NewMockIDGenerator()
	ledger := domain.NewLedgerService(ids, ids)

	return &holdFixture{
		accRepo:  accRepo,
		holdRepo: holdRepo,
		txRepo:   txRepo,
		uc: usecase.NewHoldUseCase(
			mocks.NewMockTransactionManager(), accRepo, holdRepo, txRepo, ledger, ids, nil),
	}
}

func TestHoldUseCase_Place(t *testing.T) {
	t.Run("placing a hold reduces only the available balance", func(t *testing.T) {
		f := newHoldFixture()
		acc := seedAccount(t, f.accRepo, "acc-1", "100.00")

		hold, err := f.uc.Place(context.Background(), usecase.PlaceHoldInput{
			AccountID: "acc-1",
			Amount:    usd(t, "30.00"),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.HoldStatusActive, hold.Status)
		assert.True(t, acc.Balance.Amount.Equal(decimal.RequireFromString("100")))
		assert.True(t, acc.AvailableBalance.Amount.Equal(decimal.RequireFromString("70")))
	})

	t.Run("hold beyond available balance fails", func(t *testing.T) {
		f := newHoldFixture()
		seedAccount(t, f.accRepo, "acc-1", "100.00")

		_, err := f.uc.Place(context.Background(), usecase.PlaceHoldInput{
			AccountID: "acc-1",
			Amount:    usd(t, "150.00"),
		})
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func TestHoldUseCase_Release(t *testing.T) {
	t.Run("release restores the available balance", func(t *testing.T) {
		f := newHoldFixture()
		acc := seedAccount(t, f.accRepo, "acc-1", "100.00")

		hold, err := f.uc.Place(context.Background(), usecase.PlaceHoldInput{
			AccountID: "acc-1",
			Amount:    usd(t, "30.00"),
		})
		require.NoError(t, err)

		released, err := f.uc.Release(context.Background(), hold.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.HoldStatusReleased, released.Status)
		assert.True(t, acc.AvailableBalance.Amount.Equal(decimal.RequireFromString("100")))
	})

	t.Run("releasing twice fails", func(t *testing.T) {
		f := newHoldFixture()
		seedAccount(t, f.accRepo, "acc-1", "100.00")

		hold, err := f.uc.Place(context.Background(), usecase.PlaceHoldInput{
			AccountID: "acc-1",
			Amount:    usd(t, "30.00"),
		})
		require.NoError(t, err)

		_, err = f.uc.Release(context.Background(), hold.ID)
		require.NoError(t, err)

		_, err = f.uc.Release(context.Background(), hold.ID)
		assert.ErrorIs(t, err, domain.ErrHoldNotActive)
	})
}

func TestHoldUseCase_Capture(t *testing.T) {
	t.Run("capture settles the hold against the balance", func(t *testing.T) {
		f := newHoldFixture()
		acc := seedAccount(t, f.accRepo, "acc-1", "100.00")

		hold, err := f.uc.Place(context.Background(), usecase.PlaceHoldInput{
			AccountID: "acc-1",
			Amount:    usd(t, "30.00"),
		})
		require.NoError(t, err)

		captured, err := f.uc.Capture(context.Background(), hold.ID)
		require.NoError(t, err)

		assert.Equal(t, domain.HoldStatusCaptured, captured.Status)
		assert.True(t, acc.Balance.Amount.Equal(decimal.RequireFromString("70")))
		assert.True(t, acc.AvailableBalance.Amount.Equal(decimal.RequireFromString("70")))

		// Capture is visible on the statement.
		entries, err := f.txRepo.ListByAccount(context.Background(), "acc-1", 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.TransactionTypeWithdrawal, entries[0].Type)
	})

	t.Run("unknown hold fails", func(t *testing.T) {
		f := newHoldFixture()

		_, err := f.uc.Capture(context.Background(), "hold-missing")
		assert.ErrorIs(t, err, domain.ErrHoldNotFound)
	})
}
