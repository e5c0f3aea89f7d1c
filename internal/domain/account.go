package domain

import (
	"time"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "ACTIVE"
	AccountStatusFrozen AccountStatus = "FROZEN"
	AccountStatusClosed AccountStatus = "CLOSED"
)

// AccountType determines the account number prefix and product behavior.
type AccountType string

const (
	AccountTypeChecking     AccountType = "CHECKING"
	AccountTypeSavings      AccountType = "SAVINGS"
	AccountTypeFixedDeposit AccountType = "FIXED_DEPOSIT"
)

// NumberPrefix returns the 2-digit account number prefix for the type.
func (t AccountType) NumberPrefix() string {
	switch t {
	case AccountTypeSavings:
		return "20"
	case AccountTypeFixedDeposit:
		return "30"
	default:
		return "10"
	}
}

// Valid reports whether t is a known account type.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeFixedDeposit:
		return true
	}

	return false
}

// Account is the balance-holding aggregate. Balances are mutated only
// through Debit/Credit and the hold operations; AvailableBalance never
// exceeds Balance and Balance never goes negative.
type Account struct {
	ID                   string
	CustomerID           string
	AccountNumber        string
	Alias                string
	Type                 AccountType
	Currency             string
	Status               AccountStatus
	Balance              Money
	AvailableBalance     Money
	DailyTransferLimit   Money
	MonthlyTransferLimit Money
	Version              int64
	OpenedAt             time.Time
	ClosedAt             *time.Time
	UpdatedAt            time.Time
}

// validateMutation holds the checks shared by every balance mutation.
func (a *Account) validateMutation(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if a.Status != AccountStatusActive {
		return ErrAccountNotActive
	}

	if amount.Currency != a.Currency {
		return ErrCurrencyMismatch
	}

	return nil
}

// Debit subtracts amount from both balance and available balance. Fails
// without mutating if the amount is non-positive, the account is not
// active, the currency differs, or the amount exceeds the available
// balance.
func (a *Account) Debit(amount Money, now time.Time) error {
	if err := a.validateMutation(amount); err != nil {
		return err
	}

	exceeds, err := amount.GreaterThan(a.AvailableBalance)
	if err != nil {
		return err
	}

	if exceeds {
		return ErrInsufficientFunds
	}

	newBalance, err := a.Balance.Sub(amount)
	if err != nil {
		return err
	}

	newAvailable, err := a.AvailableBalance.Sub(amount)
	if err != nil {
		return err
	}

	a.Balance = newBalance
	a.AvailableBalance = newAvailable
	a.UpdatedAt = now

	return nil
}

// Credit adds amount to both balance and available balance. Same checks as
// Debit except there is no funds check.
func (a *Account) Credit(amount Money, now time.Time) error {
	if err := a.validateMutation(amount); err != nil {
		return err
	}

	newBalance, err := a.Balance.Add(amount)
	if err != nil {
		return err
	}

	newAvailable, err := a.AvailableBalance.Add(amount)
	if err != nil {
		return err
	}

	a.Balance = newBalance
	a.AvailableBalance = newAvailable
	a.UpdatedAt = now

	return nil
}

// PlaceHold encumbers amount: available balance decreases, balance is
// untouched.
func (a *Account) PlaceHold(amount Money, now time.Time) error {
	if err := a.validateMutation(amount); err != nil {
		return err
	}

	exceeds, err := amount.GreaterThan(a.AvailableBalance)
	if err != nil {
		return err
	}

	if exceeds {
		return ErrInsufficientFunds
	}

	newAvailable, err := a.AvailableBalance.Sub(amount)
	if err != nil {
		return err
	}

	a.AvailableBalance = newAvailable
	a.UpdatedAt = now

	return nil
}

// ReleaseHold returns a previously encumbered amount to the available
// balance. The invariant AvailableBalance <= Balance must hold afterwards.
func (a *Account) ReleaseHold(amount Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.Currency != a.Currency {
		return ErrCurrencyMismatch
	}

	newAvailable, err := a.AvailableBalance.Add(amount)
	if err != nil {
		return err
	}

	exceeds, err := newAvailable.GreaterThan(a.Balance)
	if err != nil {
		return err
	}

	if exceeds {
		return ErrInvalidAmount
	}

	a.AvailableBalance = newAvailable
	a.UpdatedAt = now

	return nil
}

// CaptureHold settles an encumbered amount: balance decreases, available
// balance stays (it was already reduced when the hold was placed).
func (a *Account) CaptureHold(amount Money, now time.Time) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if amount.Currency != a.Currency {
		return ErrCurrencyMismatch
	}

	newBalance, err := a.Balance.Sub(amount)
	if err != nil {
		return err
	}

	below, err := newBalance.LessThan(a.AvailableBalance)
	if err != nil {
		return err
	}

	if newBalance.IsNegative() || below {
		return ErrInsufficientFunds
	}

	a.Balance = newBalance
	a.UpdatedAt = now

	return nil
}

// Freeze suspends the account; no balance mutation is accepted while frozen.
func (a *Account) Freeze(now time.Time) error {
	if a.Status == AccountStatusClosed {
		return ErrAccountNotActive
	}

	a.Status = AccountStatusFrozen
	a.UpdatedAt = now

	return nil
}

// Unfreeze reactivates a frozen account.
func (a *Account) Unfreeze(now time.Time) error {
	if a.Status == AccountStatusClosed {
		return ErrAccountNotActive
	}

	a.Status = AccountStatusActive
	a.UpdatedAt = now

	return nil
}

// Close terminates the account. The balance must be zero; accounts are
// closed, never deleted.
func (a *Account) Close(now time.Time) error {
	if a.Status == AccountStatusClosed {
		return ErrAccountNotActive
	}

	if !a.Balance.IsZero() {
		return ErrAccountNotEmpty
	}

	a.Status = AccountStatusClosed
	a.ClosedAt = &now
	a.UpdatedAt = now

	return nil
}
