package ports

import (
	"context"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// RegisterInput is the self-registration payload. Role is not part of it:
// self-registered accounts are always customers.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Gender       string
	DateOfBirth  string
	MobileNumber string
	Address      string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  domain.Profile
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, id domain.Identity) (*domain.User, error)
}
