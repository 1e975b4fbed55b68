package domain

import "time"

// Role controls route-level authorization.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

// User models a back-office account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Gender       string    `json:"gender"`
	DateOfBirth  string    `json:"dateOfBirth"`
	MobileNumber string    `json:"mobileNumber"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile is the minimal view returned alongside a freshly issued token.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Profile returns the public subset of u.
func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	UserID string
	Role   Role
}

// UserPatch carries the mutable fields of an admin update. Nil fields are left
// untouched; the password is deliberately absent.
type UserPatch struct {
	Name         *string
	Email        *string
	Role         *Role
	Gender       *string
	DateOfBirth  *string
	MobileNumber *string
	Address      *string
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.Gender == nil &&
		p.DateOfBirth == nil && p.MobileNumber == nil && p.Address == nil
}
