package security

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

func newTestHasher(t *testing.T) *BcryptHasher {
	t.Helper()
	pool := NewPool(2, zerolog.Nop())
	t.Cleanup(pool.Close)
	return NewBcryptHasher(bcrypt.MinCost, pool)
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash(context.Background(), "abc123")
	require.NoError(t, err)
	assert.NotEqual(t, "abc123", hash)
	assert.NoError(t, h.Compare(context.Background(), hash, "abc123"))
}

func TestBcryptHasher_SaltedPerHash(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash(context.Background(), "same-password")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "two hashes of one password must differ")
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash(context.Background(), "right")
	require.NoError(t, err)
	assert.ErrorIs(t, h.Compare(context.Background(), hash, "wrong"), domain.ErrInvalidCredentials)
}

func TestBcryptHasher_CorruptHashIsNotACredentialError(t *testing.T) {
	h := newTestHasher(t)

	err := h.Compare(context.Background(), "not-a-bcrypt-hash", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(99, nil)
	assert.Equal(t, DefaultCost, h.cost)
}

func TestBcryptHasher_LongPasswordIsTruncated(t *testing.T) {
	h := newTestHasher(t)
	long := strings.Repeat("p", 80)

	hash, err := h.Hash(context.Background(), long)
	require.NoError(t, err)

	assert.NoError(t, h.Compare(context.Background(), hash, long))
	assert.NoError(t, h.Compare(context.Background(), hash, long[:72]), "bytes past 72 are ignored")
	assert.ErrorIs(t, h.Compare(context.Background(), hash, long[:71]), domain.ErrInvalidCredentials)
}
