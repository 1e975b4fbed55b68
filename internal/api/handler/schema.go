package handler

import (
	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
)

type registerRequest struct {
	Name         string `json:"name"         validate:"required"`
	Email        string `json:"email"        validate:"required"`
	Password     string `json:"password"     validate:"required"`
	Gender       string `json:"gender"       validate:"required"`
	DateOfBirth  string `json:"dateOfBirth"  validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Address      string `json:"address"      validate:"required"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Name:         r.Name,
		Email:        r.Email,
		Password:     r.Password,
		Gender:       r.Gender,
		DateOfBirth:  r.DateOfBirth,
		MobileNumber: r.MobileNumber,
		Address:      r.Address,
	}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createUserRequest struct {
	registerRequest
	Role string `json:"role" validate:"required,oneof=admin employee customer"`
}

func (r createUserRequest) toInput() ports.CreateUserInput {
	return ports.CreateUserInput{RegisterInput: r.registerRequest.toInput(), Role: domain.Role(r.Role)}
}

// updateUserRequest fields left empty are not changed. A password field, if
// sent, is ignored.
type updateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role" validate:"omitempty,oneof=admin employee customer"`
	Gender       string `json:"gender"`
	DateOfBirth  string `json:"dateOfBirth"`
	MobileNumber string `json:"mobileNumber"`
	Address      string `json:"address"`
}

func (r updateUserRequest) toPatch() domain.UserPatch {
	var p domain.UserPatch
	p.Name = nonEmpty(r.Name)
	p.Email = nonEmpty(r.Email)
	if r.Role != "" {
		role := domain.Role(r.Role)
		p.Role = &role
	}
	p.Gender = nonEmpty(r.Gender)
	p.DateOfBirth = nonEmpty(r.DateOfBirth)
	p.MobileNumber = nonEmpty(r.MobileNumber)
	p.Address = nonEmpty(r.Address)
	return p
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type userResponse struct {
	Msg  string       `json:"msg"`
	User *domain.User `json:"user"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}
