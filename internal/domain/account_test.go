package domain

import (
	"errors"
	"testing"
	"time"
)

func testAccount(t *testing.T, balance, available string) *Account {
	t.Helper()

	return &Account{
		ID:               "acc-1",
		CustomerID:       "cust-1",
		AccountNumber:    "1012345678901234567897",
		Alias:            "main checking",
		Type:             AccountTypeChecking,
		Currency:         "USD",
		Status:           AccountStatusActive,
		Balance:          mustMoney(t, balance, "USD"),
		AvailableBalance: mustMoney(t, available, "USD"),
	}
}

func TestAccount_Debit(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		status      AccountStatus
		balance     string
		available   string
		amount      Money
		expectError error
	}{
		{
			name:      "debits both balances",
			status:    AccountStatusActive,
			balance:   "100.00",
			available: "100.00",
			amount:    Money{Amount: dec(t, "30.00"), Currency: "USD"},
		},
		{
			name:      "debit exact available balance",
			status:    AccountStatusActive,
			balance:   "100.00",
			available: "100.00",
			amount:    Money{Amount: dec(t, "100.00"), Currency: "USD"},
		},
		{
			name:        "exceeds available balance",
			status:      AccountStatusActive,
			balance:     "100.00",
			available:   "50.00",
			amount:      Money{Amount: dec(t, "60.00"), Currency: "USD"},
			expectError: ErrInsufficientFunds,
		},
		{
			name:        "zero amount",
			status:      AccountStatusActive,
			balance:     "100.00",
			available:   "100.00",
			amount:      Money{Amount: dec(t, "0"), Currency: "USD"},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			status:      AccountStatusActive,
			balance:     "100.00",
			available:   "100.00",
			amount:      Money{Amount: dec(t, "-10.00"), Currency: "USD"},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "frozen account",
			status:      AccountStatusFrozen,
			balance:     "100.00",
			available:   "100.00",
			amount:      Money{Amount: dec(t, "10.00"), Currency: "USD"},
			expectError: ErrAccountNotActive,
		},
		{
			name:        "closed account",
			status:      AccountStatusClosed,
			balance:     "100.00",
			available:   "100.00",
			amount:      Money{Amount: dec(t, "10.00"), Currency: "USD"},
			expectError: ErrAccountNotActive,
		},
		{
			name:        "currency mismatch never converts",
			status:      AccountStatusActive,
			balance:     "100.00",
			available:   "100.00",
			amount:      Money{Amount: dec(t, "10.00"), Currency: "EUR"},
			expectError: ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := testAccount(t, tt.balance, tt.available)
			acc.Status = tt.status

			prevBalance := acc.Balance
			prevAvailable := acc.AvailableBalance

			err := acc.Debit(tt.amount, now)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}

				// A failed debit must leave the account untouched.
				if !acc.Balance.Amount.Equal(prevBalance.Amount) ||
					!acc.AvailableBalance.Amount.Equal(prevAvailable.Amount) {
					t.Error("failed debit mutated the account")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantBalance := prevBalance.Amount.Sub(tt.amount.Amount)
			wantAvailable := prevAvailable.Amount.Sub(tt.amount.Amount)

			if !acc.Balance.Amount.Equal(wantBalance) {
				t.Errorf("balance: expected %s, got %s", wantBalance, acc.Balance.Amount)
			}
			if !acc.AvailableBalance.Amount.Equal(wantAvailable) {
				t.Errorf("available: expected %s, got %s", wantAvailable, acc.AvailableBalance.Amount)
			}
			if !acc.UpdatedAt.Equal(now) {
				t.Error("UpdatedAt not bumped")
			}
		})
	}
}

func TestAccount_Credit(t *testing.T) {
	now := time.Now().UTC()

	t.Run("credits both balances", func(t *testing.T) {
		acc := testAccount(t, "100.00", "80.00")

		if err := acc.Credit(mustMoney(t, "20.00", "USD"), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := acc.Balance.String(); got != "120.00 USD" {
			t.Errorf("balance: expected 120.00 USD, got %s", got)
		}
		if got := acc.AvailableBalance.String(); got != "100.00 USD" {
			t.Errorf("available: expected 100.00 USD, got %s", got)
		}
	})

	t.Run("no funds check on credit", func(t *testing.T) {
		acc := testAccount(t, "0.00", "0.00")

		if err := acc.Credit(mustMoney(t, "1000000.00", "USD"), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		acc := testAccount(t, "0.00", "0.00")
		acc.Status = AccountStatusFrozen

		if err := acc.Credit(mustMoney(t, "10.00", "USD"), now); !errors.Is(err, ErrAccountNotActive) {
			t.Errorf("expected ErrAccountNotActive, got %v", err)
		}
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		acc := testAccount(t, "0.00", "0.00")

		if err := acc.Credit(mustMoney(t, "10.00", "EUR"), now); !errors.Is(err, ErrCurrencyMismatch) {
			t.Errorf("expected ErrCurrencyMismatch, got %v", err)
		}
	})
}

func TestAccount_Holds(t *testing.T) {
	now := time.Now().UTC()

	t.Run("place reduces available only", func(t *testing.T) {
		acc := testAccount(t, "100.00", "100.00")

		if err := acc.PlaceHold(mustMoney(t, "40.00", "USD"), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := acc.Balance.String(); got != "100.00 USD" {
			t.Errorf("balance changed: %s", got)
		}
		if got := acc.AvailableBalance.String(); got != "60.00 USD" {
			t.Errorf("available: expected 60.00 USD, got %s", got)
		}
	})

	t.Run("place exceeding available fails", func(t *testing.T) {
		acc := testAccount(t, "100.00", "30.00")

		if err := acc.PlaceHold(mustMoney(t, "40.00", "USD"), now); !errors.Is(err, ErrInsufficientFunds) {
			t.Errorf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("release restores available", func(t *testing.T) {
		acc := testAccount(t, "100.00", "60.00")

		if err := acc.ReleaseHold(mustMoney(t, "40.00", "USD"), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := acc.AvailableBalance.String(); got != "100.00 USD" {
			t.Errorf("available: expected 100.00 USD, got %s", got)
		}
	})

	t.Run("release past balance violates invariant", func(t *testing.T) {
		acc := testAccount(t, "100.00", "90.00")

		if err := acc.ReleaseHold(mustMoney(t, "20.00", "USD"), now); err == nil {
			t.Error("expected error, got nil")
		}
	})

	t.Run("capture settles against balance", func(t *testing.T) {
		acc := testAccount(t, "100.00", "60.00")

		if err := acc.CaptureHold(mustMoney(t, "40.00", "USD"), now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := acc.Balance.String(); got != "60.00 USD" {
			t.Errorf("balance: expected 60.00 USD, got %s", got)
		}
		if got := acc.AvailableBalance.String(); got != "60.00 USD" {
			t.Errorf("available: expected 60.00 USD, got %s", got)
		}
	})
}

func TestAccount_Lifecycle(t *testing.T) {
	now := time.Now().UTC()

	t.Run("close requires zero balance", func(t *testing.T) {
		acc := testAccount(t, "10.00", "10.00")

		if err := acc.Close(now); !errors.Is(err, ErrAccountNotEmpty) {
			t.Errorf("expected ErrAccountNotEmpty, got %v", err)
		}
	})

	t.Run("close empty account", func(t *testing.T) {
		acc := testAccount(t, "0.00", "0.00")

		if err := acc.Close(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acc.Status != AccountStatusClosed || acc.ClosedAt == nil {
			t.Error("account not marked closed")
		}
	})

	t.Run("freeze and unfreeze", func(t *testing.T) {
		acc := testAccount(t, "10.00", "10.00")

		if err := acc.Freeze(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acc.Status != AccountStatusFrozen {
			t.Error("account not frozen")
		}

		if err := acc.Unfreeze(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if acc.Status != AccountStatusActive {
			t.Error("account not reactivated")
		}
	})

	t.Run("closed account cannot be frozen", func(t *testing.T) {
		acc := testAccount(t, "0.00", "0.00")
		if err := acc.Close(now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := acc.Freeze(now); !errors.Is(err, ErrAccountNotActive) {
			t.Errorf("expected ErrAccountNotActive, got %v", err)
		}
	})
}
