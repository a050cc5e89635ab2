// Package services – IdempotencyService
//
// IdempotencyService remembers the responses of completed writes so that a
// client retrying with the same Idempotency-Key gets the original answer and
// the settings store is not mutated (or logged) a second time.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/stella-panel/internal/domain"
	"github.com/tbourn/stella-panel/internal/repo"
)

// IdempotencyService wraps the repository ledger with TTL handling.
type IdempotencyService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// TTL is how long a remembered response can be replayed.
	TTL time.Duration
	// Now is the clock used for expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// NewIdempotencyService constructs an IdempotencyService.
func NewIdempotencyService(db *gorm.DB, ttl time.Duration) *IdempotencyService {
	return &IdempotencyService{DB: db, TTL: ttl, Now: time.Now}
}

func (s *IdempotencyService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Exists reports whether a live record exists for (scope, key). Lookup
// failures are reported as "absent" together with the error.
func (s *IdempotencyService) Exists(ctx context.Context, scope, key string) (bool, error) {
	rec, err := s.Lookup(ctx, scope, key)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// Lookup returns the live record for (scope, key), or (nil, nil) if none.
func (s *IdempotencyService) Lookup(ctx context.Context, scope, key string) (*domain.Idempotency, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, scope, key, s.now())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Remember stores status and body for (scope, key). Expired rows are purged
// first; a concurrent duplicate is not an error since the first writer wins.
func (s *IdempotencyService) Remember(ctx context.Context, scope, key string, status int, body []byte) error {
	if _, err := repo.DeleteExpiredIdempotency(ctx, s.DB, s.now()); err != nil {
		return err
	}
	_, err := repo.CreateIdempotency(ctx, s.DB, scope, key, status, body, s.TTL)
	if errors.Is(err, repo.ErrDuplicate) {
		return nil
	}
	return err
}
