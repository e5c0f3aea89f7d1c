package domain

import "time"

// HoldStatus is the lifecycle state of a hold.
type HoldStatus string

const (
	HoldStatusActive   HoldStatus = "ACTIVE"
	HoldStatusReleased HoldStatus = "RELEASED"
	HoldStatusCaptured HoldStatus = "CAPTURED"
)

// Hold encumbers part of an account balance: while active, the held amount
// is excluded from the available balance but still counted in the balance.
type Hold struct {
	ID          string
	AccountID   string
	Amount      Money
	Status      HoldStatus
	Description string
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks that the hold amount is acceptable.
func (h *Hold) Validate() error {
	if !h.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	return nil
}
