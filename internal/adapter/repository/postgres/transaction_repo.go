package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Ledger
// entries are insert-only; there is no update path.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, account_id, type, amount, currency, balance_after,
	description, reference_number, status, executed_at`

// Create inserts a ledger entry inside the given transaction.
func (r *TransactionRepository) Create(ctx context.Context, dbtx usecase.Transaction, tx *domain.Transaction) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		tx.ID,
		tx.AccountID,
		string(tx.Type),
		decimalToNumeric(tx.Amount.Amount),
		tx.Amount.Currency,
		decimalToNumeric(tx.BalanceAfter.Amount),
		tx.Description,
		tx.ReferenceNumber,
		string(tx.Status),
		timeToPgTimestamptz(tx.ExecutedAt),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

// GetByID retrieves a ledger entry by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return scanTransaction(row)
}

// GetByReference retrieves a ledger entry by reference number.
func (r *TransactionRepository) GetByReference(ctx context.Context, referenceNumber string) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE reference_number = $1`, referenceNumber)

	return scanTransaction(row)
}

// ListByAccount lists an account's ledger entries, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE account_id = $1
		ORDER BY executed_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Transaction
	for rows.Next() {
		entry, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx                   domain.Transaction
		txType, status       string
		currency             string
		amount, balanceAfter pgtype.Numeric
		executedAt           pgtype.Timestamptz
	)

	err := row.Scan(
		&tx.ID,
		&tx.AccountID,
		&txType,
		&amount,
		&currency,
		&balanceAfter,
		&tx.Description,
		&tx.ReferenceNumber,
		&status,
		&executedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	tx.Type = domain.TransactionType(txType)
	tx.Status = domain.TransactionStatus(status)
	tx.Amount = numericToMoney(amount, currency)
	tx.BalanceAfter = numericToMoney(balanceAfter, currency)
	tx.ExecutedAt = executedAt.Time

	return &tx, nil
}
