package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
)

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		Name:         "A",
		Email:        "a@x.com",
		Password:     "abc123",
		Gender:       "Male",
		DateOfBirth:  "1990-01-01",
		MobileNumber: "1234567890",
		Address:      "X",
	}
}

func newAuthSvc(repo *stubUserRepo, issuer *stubIssuer) *AuthService {
	return NewAuthService(repo, prefixHasher{}, issuer, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubIssuer{})

	user, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected an ID to be assigned")
	}
	if user.PasswordHash == "abc123" {
		t.Fatalf("expected password to be hashed")
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("self-registration must yield customer, got %s", user.Role)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt must be set")
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubIssuer{})

	in := validRegistration()
	in.Address = ""
	in.Password = ""

	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) != 2 {
		t.Fatalf("expected two missing fields, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubIssuer{})

	if _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.Register(context.Background(), validRegistration()); !errors.Is(err, domain.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	}
	if len(repo.byID) != 1 {
		t.Fatalf("expected exactly 1 stored user, got %d", len(repo.byID))
	}
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, prefixHasher{hashErr: errors.New("boom")}, &stubIssuer{}, zerolog.Nop())

	_, err := svc.Register(context.Background(), validRegistration())
	if err == nil || errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthService_Register_LookupFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errDBDown
	svc := newAuthSvc(repo, &stubIssuer{})

	if _, err := svc.Register(context.Background(), validRegistration()); !errors.Is(err, errDBDown) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	issuer := &stubIssuer{}
	svc := newAuthSvc(repo, issuer)

	registered, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(context.Background(), "a@x.com", "abc123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token, got empty")
	}
	if res.User.ID != registered.ID || res.User.Email != "a@x.com" || res.User.Role != domain.RoleCustomer {
		t.Fatalf("unexpected profile: %+v", res.User)
	}
	if len(issuer.issued) != 1 || issuer.issued[0].Role != domain.RoleCustomer {
		t.Fatalf("expected token issued for customer role, got %+v", issuer.issued)
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubIssuer{})
	_, _ = svc.Register(context.Background(), validRegistration())

	_, wrongPassword := svc.Login(context.Background(), "a@x.com", "nope")
	_, unknownEmail := svc.Login(context.Background(), "ghost@x.com", "abc123")

	if wrongPassword != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if unknownEmail != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthSvc(newStubUserRepo(), &stubIssuer{})

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Login_SigningFailureIsInternal(t *testing.T) {
	repo := newStubUserRepo()
	issuer := &stubIssuer{}
	svc := newAuthSvc(repo, issuer)
	_, _ = svc.Register(context.Background(), validRegistration())

	issuer.err = errors.New("signing key unavailable")
	_, err := svc.Login(context.Background(), "a@x.com", "abc123")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo, &stubIssuer{})
	u, _ := svc.Register(context.Background(), validRegistration())

	got, err := svc.Me(context.Background(), domain.Identity{UserID: u.ID, Role: u.Role})
	if err != nil || got.Email != "a@x.com" {
		t.Fatalf("unexpected Me result: %+v, %v", got, err)
	}

	if _, err := svc.Me(context.Background(), domain.Identity{UserID: "gone"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
