package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// DefaultCost matches the salt rounds the accounts were historically hashed with.
const DefaultCost = 10

// maxPasswordBytes is the longest input bcrypt uses. Longer passwords are
// truncated, the same as existing hashes were produced.
const maxPasswordBytes = 72

// BcryptHasher implements ports.PasswordHasher. bcrypt generates and embeds a
// random salt per hash.
type BcryptHasher struct {
	cost int
	pool *Pool
}

// NewBcryptHasher returns a hasher that runs on pool. A cost outside bcrypt's
// range falls back to DefaultCost.
func NewBcryptHasher(cost int, pool *Pool) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost, pool: pool}
}

func (h *BcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash []byte
		err  error
	)
	start := time.Now()
	if perr := h.pool.Do(ctx, func() {
		hash, err = bcrypt.GenerateFromPassword(truncate(password), h.cost)
	}); perr != nil {
		return "", fmt.Errorf("hash: %w", perr)
	}
	passwordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(ctx context.Context, hash, password string) error {
	var err error
	start := time.Now()
	if perr := h.pool.Do(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
	}); perr != nil {
		return fmt.Errorf("compare: %w", perr)
	}
	passwordHashDuration.WithLabelValues("compare").Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return fmt.Errorf("compare: %w", err)
	}
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
