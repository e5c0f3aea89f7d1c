package domain

import "errors"

var (
	// Money errors
	ErrInvalidAmount    = errors.New("amount must be positive with at most 2 decimal places")
	ErrInvalidCurrency  = errors.New("invalid currency code")
	ErrCurrencyMismatch = errors.New("operand currencies differ")

	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrInsufficientFunds    = errors.New("insufficient available balance")
	ErrAccountNotEmpty      = errors.New("account balance must be zero before closing")
	ErrAccountNumberTaken   = errors.New("account number already exists")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAlias         = errors.New("invalid account alias")
	ErrInvalidDescription   = errors.New("invalid description")

	// Transfer errors
	ErrSameAccountTransfer     = errors.New("cannot transfer to same account")
	ErrTransferNotFound        = errors.New("transfer not found")
	ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")
	ErrMissingIdempotencyKey   = errors.New("idempotency key is required")
	ErrTransferLimitExceeded   = errors.New("transfer limit exceeded")
	ErrCannotReverse           = errors.New("transfer cannot be reversed")
	ErrTransferAlreadyReversed = errors.New("transfer already reversed")

	// Transaction errors
	ErrTransactionNotFound = errors.New("transaction not found")

	// Hold errors
	ErrHoldNotFound  = errors.New("hold not found")
	ErrHoldNotActive = errors.New("hold is not active")

	// Storage boundary errors
	ErrConstraintViolation = errors.New("storage constraint violated")
)
