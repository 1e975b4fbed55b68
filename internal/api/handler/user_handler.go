package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/backoffice-erp/identity-api/internal/core/domain"
	"github.com/backoffice-erp/identity-api/internal/core/ports"
)

// UserHandler serves the admin user-management routes. Access control is the
// router's job; every handler here assumes an admin caller.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every user, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// Create adds a user with an explicit role.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{Msg: "User created successfully", User: user})
}

// Update changes the non-empty fields of a user. The password cannot be
// changed here.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Msg: "User updated successfully", User: user})
}

// Delete removes a user.
//
// @Summary      Delete user
// @Tags         users
// @Produce      json
// @Security     TokenAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "User deleted successfully"})
}
