package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID    map[string]*domain.User
	nextID  int
	findErr error // if set, FindByEmail returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("u%03d", r.nextID)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if p.Email != nil {
		for otherID, o := range r.byID {
			if otherID != id && o.Email == *p.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.DateOfBirth != nil {
		u.DateOfBirth = *p.DateOfBirth
	}
	if p.MobileNumber != nil {
		u.MobileNumber = *p.MobileNumber
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Hasher and token stubs
// ---------------------------------------------------------------------------

// prefixHasher stands in for bcrypt; it is not a hash.
type prefixHasher struct {
	hashErr error
}

func (h prefixHasher) Hash(_ context.Context, password string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h prefixHasher) Compare(_ context.Context, hash, password string) error {
	if strings.TrimPrefix(hash, "hashed:") != password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type stubIssuer struct {
	err    error
	issued []domain.Identity
}

func (s *stubIssuer) Issue(id domain.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.issued = append(s.issued, id)
	return "token-for-" + id.UserID, nil
}

var errDBDown = errors.New("mongo unavailable")
