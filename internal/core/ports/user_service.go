package ports

import (
	"context"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// CreateUserInput is the admin user-creation payload; unlike RegisterInput
// the role is chosen by the caller.
type CreateUserInput struct {
	RegisterInput
	Role domain.Role
}

// UserService holds the admin-only user management use cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
