package ports

import (
	"context"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// PasswordHasher produces and checks salted password hashes. Both calls are
// CPU-bound and honour ctx while waiting for capacity.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	// Compare returns domain.ErrInvalidCredentials on mismatch.
	Compare(ctx context.Context, hash, password string) error
}

// TokenIssuer signs access tokens for an identity.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier validates an access token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
