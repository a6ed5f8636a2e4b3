package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lapor/internal/errors"
	"lapor/internal/model"
	"lapor/internal/service"
)

// UserHandler handles profile management endpoints.
type UserHandler struct {
	userService service.UserService
	actors      *ActorResolver
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, actors *ActorResolver) *UserHandler {
	return &UserHandler{userService: userService, actors: actors}
}

// CreateUserRequest represents an admin creating an officer account.
type CreateUserRequest struct {
	PJLPNumber      string     `json:"pjlp_number" validate:"required"`
	Name            string     `json:"name" validate:"required"`
	Role            model.Role `json:"role" validate:"required,oneof=PETUGAS ADMIN"`
	Phone           string     `json:"phone"`
	AvatarURL       string     `json:"avatar_url"`
	Password        string     `json:"password" validate:"required,min=6"`
	ConfirmPassword string     `json:"confirm_password" validate:"required,eqfield=Password"`
}

// UpdateUserRequest represents a partial profile edit. A password
// change must carry a matching confirmation.
type UpdateUserRequest struct {
	PJLPNumber      *string     `json:"pjlp_number,omitempty"`
	Name            *string     `json:"name,omitempty"`
	Role            *model.Role `json:"role,omitempty" validate:"omitempty,oneof=PETUGAS ADMIN"`
	IsActive        *bool       `json:"is_active,omitempty"`
	Phone           *string     `json:"phone,omitempty"`
	AvatarURL       *string     `json:"avatar_url,omitempty"`
	Password        string      `json:"password,omitempty" validate:"omitempty,min=6"`
	ConfirmPassword string      `json:"confirm_password,omitempty" validate:"eqfield=Password"`
}

// List godoc
// @Summary List profiles
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	if _, err := h.actors.FromContext(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.userService.List(c.Request().Context()))
}

// Get godoc
// @Summary Get a profile by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	if _, err := h.actors.FromContext(c); err != nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// Create godoc
// @Summary Create an officer account
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "New user"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}

	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.Create(c.Request().Context(), actor, service.NewUser{
		PJLPNumber: req.PJLPNumber,
		Name:       req.Name,
		Role:       req.Role,
		Phone:      req.Phone,
		AvatarURL:  req.AvatarURL,
		Password:   req.Password,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, user)
}

// Update godoc
// @Summary Edit a profile
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Profile patch"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := model.UserPatch{
		PJLPNumber: req.PJLPNumber,
		Name:       req.Name,
		Role:       req.Role,
		IsActive:   req.IsActive,
		Phone:      req.Phone,
		AvatarURL:  req.AvatarURL,
	}
	user, err := h.userService.Update(c.Request().Context(), actor, c.Param("id"), patch, req.Password)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// Delete godoc
// @Summary Deactivate an account (soft delete)
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}
	if err := h.userService.SoftDelete(c.Request().Context(), actor, c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deactivated"})
}

// DeletePermanent godoc
// @Summary Permanently delete an account and its reports
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/permanent [delete]
func (h *UserHandler) DeletePermanent(c echo.Context) error {
	actor, err := h.actors.FromContext(c)
	if err != nil {
		return err
	}
	if err := h.userService.HardDelete(c.Request().Context(), actor, c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user permanently deleted"})
}
