package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// DefaultTTL is the lifetime of an access token.
const DefaultTTL = 24 * time.Hour

// UserClaim is the identity block embedded in every token.
type UserClaim struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Claims is the JWT payload: {"user":{"id","role"},"iat","exp",...}.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 access tokens. Tokens are not stored;
// a token stays valid until exp regardless of later role changes.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithIssuer sets the iss claim.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a token Service. A non-positive ttl means DefaultTTL.
func NewService(secret string, ttl time.Duration, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for id.
func (s *Service) Issue(id domain.Identity) (string, error) {
	now := s.now()
	claims := Claims{
		User: UserClaim{ID: id.UserID, Role: string(id.Role)},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   id.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// identity. Every failure wraps domain.ErrInvalidToken.
func (s *Service) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expiry is checked below against the injected clock.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	// exp is inclusive: a token is still good at exactly exp.
	if claims.ExpiresAt == nil || s.now().After(claims.ExpiresAt.Time) {
		return domain.Identity{}, fmt.Errorf("%w: expired", domain.ErrInvalidToken)
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return domain.Identity{}, fmt.Errorf("%w: unexpected issuer", domain.ErrInvalidToken)
	}
	if claims.User.ID == "" || claims.User.Role == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing identity", domain.ErrInvalidToken)
	}

	return domain.Identity{UserID: claims.User.ID, Role: domain.Role(claims.User.Role)}, nil
}
