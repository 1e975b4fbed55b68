package ports

import (
	"context"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID. A duplicate
	// email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
