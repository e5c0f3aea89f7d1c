package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

func testUpdateAccount() *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		ID:               "acc-1",
		Currency:         "USD",
		Status:           domain.AccountStatusActive,
		Balance:          domain.Zero("USD"),
		AvailableBalance: domain.Zero("USD"),
		Version:          3,
		UpdatedAt:        now,
	}
}

func beginTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	return tx
}

func TestAccountRepositoryUpdateBalancesBumpsVersion(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx := beginTx(t, mockPool)
	account := testUpdateAccount()

	repo := &AccountRepository{}
	if err := repo.UpdateBalances(context.Background(), tx, account); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The SQL bumps version = version + 1; the aggregate must track it.
	if account.Version != 4 {
		t.Fatalf("expected version 4, got %d", account.Version)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateBalancesErrorKeepsVersion(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("connection lost"))

	tx := beginTx(t, mockPool)
	account := testUpdateAccount()

	repo := &AccountRepository{}
	if err := repo.UpdateBalances(context.Background(), tx, account); err == nil {
		t.Fatalf("expected error")
	}

	if account.Version != 3 {
		t.Fatalf("expected version 3, got %d", account.Version)
	}
}

func TestAccountRepositoryUpdateStatusBumpsVersion(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs("acc-1", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx := beginTx(t, mockPool)
	account := testUpdateAccount()
	account.Status = domain.AccountStatusFrozen

	repo := &AccountRepository{}
	if err := repo.UpdateStatus(context.Background(), tx, account); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if account.Version != 4 {
		t.Fatalf("expected version 4, got %d", account.Version)
	}

	assertExpectations(t, mockPool)
}
