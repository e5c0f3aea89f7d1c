package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/usecase"
)

// HoldRepository implements usecase.HoldRepository.
type HoldRepository struct {
	pool *pgxpool.Pool
}

// NewHoldRepository creates a new HoldRepository.
func NewHoldRepository(pool *pgxpool.Pool) *HoldRepository {
	return &HoldRepository{pool: pool}
}

const holdColumns = `id, account_id, amount, currency, status, description,
	expires_at, created_at, updated_at`

// Create inserts a hold inside the given transaction.
func (r *HoldRepository) Create(ctx context.Context, dbtx usecase.Transaction, hold *domain.Hold) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	var expiresAt any
	if hold.ExpiresAt != nil {
		expiresAt = timeToPgTimestamptz(*hold.ExpiresAt)
	}

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO holds (`+holdColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		hold.ID,
		hold.AccountID,
		decimalToNumeric(hold.Amount.Amount),
		hold.Amount.Currency,
		string(hold.Status),
		hold.Description,
		expiresAt,
		timeToPgTimestamptz(hold.CreatedAt),
		timeToPgTimestamptz(hold.UpdatedAt),
	)

	return err
}

// GetByID retrieves a hold by ID.
func (r *HoldRepository) GetByID(ctx context.Context, id string) (*domain.Hold, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+holdColumns+` FROM holds WHERE id = $1`, id)

	return scanHold(row)
}

// GetByIDForUpdate retrieves a hold by ID with a FOR UPDATE lock.
func (r *HoldRepository) GetByIDForUpdate(ctx context.Context, dbtx usecase.Transaction, id string) (*domain.Hold, error) {
	pgxTx := dbtx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+holdColumns+` FROM holds WHERE id = $1 FOR UPDATE`, id)

	return scanHold(row)
}

// UpdateStatus transitions a hold to a terminal status.
func (r *HoldRepository) UpdateStatus(ctx context.Context, dbtx usecase.Transaction, id string, status domain.HoldStatus, updatedAt time.Time) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE holds SET status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), timeToPgTimestamptz(updatedAt))

	return err
}

// ListByAccount lists an account's holds, newest first.
func (r *HoldRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Hold, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+holdColumns+` FROM holds
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holds []*domain.Hold
	for rows.Next() {
		hold, err := scanHold(rows)
		if err != nil {
			return nil, err
		}

		holds = append(holds, hold)
	}

	return holds, rows.Err()
}

func scanHold(row pgx.Row) (*domain.Hold, error) {
	var (
		hold                 domain.Hold
		status, currency     string
		amount               pgtype.Numeric
		expiresAt            pgtype.Timestamptz
		createdAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&hold.ID,
		&hold.AccountID,
		&amount,
		&currency,
		&status,
		&hold.Description,
		&expiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHoldNotFound
		}

		return nil, err
	}

	hold.Status = domain.HoldStatus(status)
	hold.Amount = numericToMoney(amount, currency)
	hold.ExpiresAt = pgTimestamptzToTimePtr(expiresAt)
	hold.CreatedAt = createdAt.Time
	hold.UpdatedAt = updatedAt.Time

	return &hold, nil
}
