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

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, customer_id, account_number, alias, type, currency, status,
	balance, available_balance, daily_transfer_limit, monthly_transfer_limit,
	version, opened_at, closed_at, updated_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		account.ID,
		account.CustomerID,
		account.AccountNumber,
		account.Alias,
		string(account.Type),
		account.Currency,
		string(account.Status),
		decimalToNumeric(account.Balance.Amount),
		decimalToNumeric(account.AvailableBalance.Amount),
		decimalToNumeric(account.DailyTransferLimit.Amount),
		decimalToNumeric(account.MonthlyTransferLimit.Amount),
		account.Version,
		timeToPgTimestamptz(account.OpenedAt),
		nil,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByNumber retrieves an account by account number.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, number)

	return scanAccount(row)
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, dbtx usecase.Transaction, id string) (*domain.Account, error) {
	pgxTx := dbtx.(*Tx).PgxTx()

	row := pgxTx.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)

	return scanAccount(row)
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE
// locks. Rows are locked in the order of ids; callers pass them sorted.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, dbtx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		account, err := r.GetByIDForUpdate(ctx, dbtx, id)
		if errors.Is(err, domain.ErrAccountNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, nil
}

// UpdateBalances persists the account's balance, available balance, and
// bumped version.
func (r *AccountRepository) UpdateBalances(ctx context.Context, dbtx usecase.Transaction, account *domain.Account) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET balance = $2, available_balance = $3, version = version + 1, updated_at = $4
		WHERE id = $1`,
		account.ID,
		decimalToNumeric(account.Balance.Amount),
		decimalToNumeric(account.AvailableBalance.Amount),
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	account.Version++

	return nil
}

// UpdateStatus persists the account's status and closed timestamp.
func (r *AccountRepository) UpdateStatus(ctx context.Context, dbtx usecase.Transaction, account *domain.Account) error {
	pgxTx := dbtx.(*Tx).PgxTx()

	var closedAt any
	if account.ClosedAt != nil {
		closedAt = timeToPgTimestamptz(*account.ClosedAt)
	}

	_, err := pgxTx.Exec(ctx, `
		UPDATE accounts
		SET status = $2, closed_at = $3, version = version + 1, updated_at = $4
		WHERE id = $1`,
		account.ID,
		string(account.Status),
		closedAt,
		timeToPgTimestamptz(account.UpdatedAt),
	)
	if err != nil {
		return err
	}

	account.Version++

	return nil
}

// ListByCustomer lists a customer's accounts with pagination.
func (r *AccountRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE customer_id = $1
		ORDER BY opened_at DESC
		LIMIT $2 OFFSET $3`,
		customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account                       domain.Account
		accountType, status           string
		balance, available            pgtype.Numeric
		dailyLimit, monthlyLimit      pgtype.Numeric
		openedAt, closedAt, updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Alias,
		&accountType,
		&account.Currency,
		&status,
		&balance,
		&available,
		&dailyLimit,
		&monthlyLimit,
		&account.Version,
		&openedAt,
		&closedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	account.Type = domain.AccountType(accountType)
	account.Status = domain.AccountStatus(status)
	account.Balance = numericToMoney(balance, account.Currency)
	account.AvailableBalance = numericToMoney(available, account.Currency)
	account.DailyTransferLimit = numericToMoney(dailyLimit, account.Currency)
	account.MonthlyTransferLimit = numericToMoney(monthlyLimit, account.Currency)
	account.OpenedAt = openedAt.Time
	account.ClosedAt = pgTimestamptzToTimePtr(closedAt)
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
