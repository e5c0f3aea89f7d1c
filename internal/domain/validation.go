package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation limits for request-level fields.
const (
	MaxAliasLength       = 64
	MaxDescriptionLength = 255
	MaxTransferAmount    = "1000000000000"
)

// ValidateCurrency checks the ISO 4217 code format (3 uppercase letters).
func ValidateCurrency(currency string) error {
	if !currencyPattern.MatchString(currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateTransferAmount bounds a transfer amount: positive, at most 2
// fractional digits, below the global ceiling.
func ValidateTransferAmount(amount Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.Amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxTransferAmount)
	}

	return nil
}

// ValidateAlias checks an account alias.
func ValidateAlias(alias string) error {
	alias = strings.TrimSpace(alias)

	if alias == "" || len(alias) > MaxAliasLength {
		return fmt.Errorf("%w: alias must be 1-%d characters", ErrInvalidAlias, MaxAliasLength)
	}

	return nil
}

// ValidateDescription checks a transaction/transfer description.
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}
