package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

const transferColumns = `id, source_account_id, target_account_id, category, amount, currency,
	fee_amount, description, debit_transaction_id, credit_transaction_id,
	fee_transaction_id, idempotency_key, reversed_transfer_id, executed_at`

// Create inserts a transfer. The unique index on idempotency_key turns a
// concurrent duplicate into domain.ErrDuplicateIdempotencyKey.
func (r *TransferRepository) Create(ctx context.Context, dbtx usecase.Transaction, transfer *domain.Transfer) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	var feeAmount any
	if transfer.FeeAmount != nil {
		feeAmount = decimalToNumeric(transfer.FeeAmount.Amount)
	}

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transfers (`+transferColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		transfer.ID,
		transfer.SourceAccountID,
		transfer.TargetAccountID,
		string(transfer.Category),
		decimalToNumeric(transfer.Amount.Amount),
		transfer.Amount.Currency,
		feeAmount,
		transfer.Description,
		transfer.DebitTransactionID,
		transfer.CreditTransactionID,
		transfer.FeeTransactionID,
		transfer.IdempotencyKey,
		transfer.ReversedTransferID,
		timeToPgTimestamptz(transfer.ExecutedAt),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)

	return scanTransfer(row)
}

// GetByIdempotencyKey retrieves a transfer by its idempotency key.
func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transferColumns+` FROM transfers WHERE idempotency_key = $1`, key)

	return scanTransfer(row)
}

// GetByReversedTransferID retrieves the reversal compensating the given
// transfer. The partial unique index on reversed_transfer_id guarantees at
// most one row.
func (r *TransferRepository) GetByReversedTransferID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transferColumns+` FROM transfers WHERE reversed_transfer_id = $1`, transferID)

	return scanTransfer(row)
}

// ListByAccount lists transfers where the account is source or target,
// newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transfer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transferColumns+` FROM transfers
		WHERE source_account_id = $1 OR target_account_id = $1
		ORDER BY executed_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*domain.Transfer
	for rows.Next() {
		transfer, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}

		transfers = append(transfers, transfer)
	}

	return transfers, rows.Err()
}

// SumTransferredSince sums principal amounts moved out of the account
// since the given instant. Reads inside the caller's transaction so the
// sum and the subsequent insert see the same snapshot.
func (r *TransferRepository) SumTransferredSince(ctx context.Context, dbtx usecase.Transaction, sourceAccountID string, since time.Time) (decimal.Decimal, error) {
	pgxTx := dbtx.(*Tx).PgxTx()

	var sum pgtype.Numeric
	err := pgxTx.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transfers
		WHERE source_account_id = $1 AND executed_at >= $2`,
		sourceAccountID, timeToPgTimestamptz(since)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func scanTransfer(row pgx.Row) (*domain.Transfer, error) {
	var (
		transfer   domain.Transfer
		category   string
		currency   string
		amount     pgtype.Numeric
		feeAmount  pgtype.Numeric
		executedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&transfer.ID,
		&transfer.SourceAccountID,
		&transfer.TargetAccountID,
		&category,
		&amount,
		&currency,
		&feeAmount,
		&transfer.Description,
		&transfer.DebitTransactionID,
		&transfer.CreditTransactionID,
		&transfer.FeeTransactionID,
		&transfer.IdempotencyKey,
		&transfer.ReversedTransferID,
		&executedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	transfer.Category = domain.TransferCategory(category)
	transfer.Amount = numericToMoney(amount, currency)
	if feeAmount.Valid {
		fee := numericToMoney(feeAmount, currency)
		transfer.FeeAmount = &fee
	}
	transfer.ExecutedAt = executedAt.Time

	return &transfer, nil
}
