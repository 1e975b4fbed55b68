package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
)

// UserService implements the admin user-management use cases. Authorization
// is enforced by the transport layer before any of these run.
type UserService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
	now    func() time.Time
}

func NewUserService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, log: log, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create adds a user with a caller-chosen role.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	missing := missingRegisterFields(in.RegisterInput)
	if in.Role == "" {
		missing = append(missing, "role")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("", missing...)
	}
	if !in.Role.IsValid() {
		return nil, domain.NewValidationError("role must be one of: admin employee customer", "role")
	}

	user, err := newUser(ctx, s.repo, s.hasher, in.RegisterInput, in.Role, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Update applies patch to the user. Empty strings in the patch are treated as
// absent so a form that omits a field never blanks it.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	patch = compactPatch(patch)
	if patch.Role != nil && !patch.Role.IsValid() {
		return nil, domain.NewValidationError("role must be one of: admin employee customer", "role")
	}

	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	// Tokens already issued keep the role they were signed with until expiry.
	s.log.Info().Str("user_id", user.ID).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func compactPatch(p domain.UserPatch) domain.UserPatch {
	blank := func(s *string) *string {
		if s == nil || strings.TrimSpace(*s) == "" {
			return nil
		}
		return s
	}
	p.Name = blank(p.Name)
	p.Email = blank(p.Email)
	p.Gender = blank(p.Gender)
	p.DateOfBirth = blank(p.DateOfBirth)
	p.MobileNumber = blank(p.MobileNumber)
	p.Address = blank(p.Address)
	if p.Role != nil && *p.Role == "" {
		p.Role = nil
	}
	return p
}
