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

// AuthService implements self-registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, log: log, now: time.Now}
}

// Register creates a customer account. The email pre-check gives the common
// case a clean error; the unique index on email closes the race between the
// check and the insert.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if missing := missingRegisterFields(in); len(missing) > 0 {
		return nil, domain.NewValidationError("", missing...)
	}

	user, err := newUser(ctx, s.repo, s.hasher, in, domain.RoleCustomer, s.now())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login checks the credentials and issues an access token. An unknown email
// and a wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("", missing...)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Compare(ctx, user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: compare password: %w", err)
	}

	token, err := s.tokens.Issue(domain.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")
	return &ports.LoginResult{Token: token, User: user.Profile()}, nil
}

// Me loads the account behind a verified identity.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.repo.FindByID(ctx, id.UserID)
}

// newUser is shared by self-registration and admin creation.
func newUser(ctx context.Context, repo ports.UserRepository, hasher ports.PasswordHasher, in ports.RegisterInput, role domain.Role, now time.Time) (*domain.User, error) {
	if _, err := repo.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now = now.UTC()
	created, err := repo.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Gender:       in.Gender,
		DateOfBirth:  in.DateOfBirth,
		MobileNumber: in.MobileNumber,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func missingRegisterFields(in ports.RegisterInput) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("name", in.Name)
	check("email", in.Email)
	if in.Password == "" {
		missing = append(missing, "password")
	}
	check("gender", in.Gender)
	check("dateOfBirth", in.DateOfBirth)
	check("mobileNumber", in.MobileNumber)
	check("address", in.Address)
	return missing
}
