package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
)

const pgErrUniqueViolation = "23505"

// Constraint names from the migrations, used to map unique violations onto
// domain errors.
const (
	constraintTransfersIdempotencyKey = "transfers_idempotency_key_key"
	constraintTransfersReversedID     = "transfers_reversed_transfer_id_key"
	constraintAccountsNumber          = "accounts_account_number_key"
)

// mapUniqueViolation translates a unique-constraint violation into the
// domain error the violated constraint stands for.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgErrUniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case constraintTransfersIdempotencyKey:
		return domain.ErrDuplicateIdempotencyKey
	case constraintTransfersReversedID:
		return domain.ErrTransferAlreadyReversed
	case constraintAccountsNumber:
		return domain.ErrAccountNumberTaken
	default:
		return domain.ErrConstraintViolation
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToMoney(n pgtype.Numeric, currency string) domain.Money {
	return domain.Money{Amount: numericToDecimal(n), Currency: currency}
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func pgTimestamptzToTimePtr(t pgtype.Timestamptz) *time.Time {
	if !t.Valid {
		return nil
	}

	v := t.Time

	return &v
}
