package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a database transaction so a stuck
	// unit of work cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultPageSize and MaxPageSize bound list queries.
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxAccountNumberAttempts bounds retry-on-collision when generating
	// account numbers.
	MaxAccountNumberAttempts = 5

	// TransferCacheTTL is how long immutable transfers may live in the
	// read-through cache.
	TransferCacheTTL = time.Hour
)

// clampPage normalizes pagination parameters.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
