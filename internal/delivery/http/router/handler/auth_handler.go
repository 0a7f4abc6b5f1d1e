// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"giftlink/internal/delivery/http/middleware"
	"giftlink/internal/delivery/http/response"
	domainerrors "giftlink/internal/domain/errors"
	"giftlink/internal/usecase"
)

// AuthHandler holds dependencies for the auth endpoints.
type AuthHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type profileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Register handles the user registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed registration body")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Auth{
		AuthToken: output.AuthToken,
		Email:     output.Email,
	})
}

// Login handles the user login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed login body")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Auth{
		AuthToken: output.AuthToken,
		UserName:  output.UserName,
		UserEmail: output.UserEmail,
	})
}

// UpdateProfile handles the profile update request. The target account comes
// from the `email` request header, matching the public interface this API
// replaces; the bearer token is not cross-checked against it.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	email := c.Request().Header.Get("email")
	if email == "" {
		return domainerrors.ErrMissingEmailHeader
	}

	var input updateProfileRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed update body")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), &usecase.UpdateProfileInput{
		Email:     email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, response.Auth{AuthToken: output.AuthToken})
}

// GetProfile returns the account behind the bearer token.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return domainerrors.ErrUnauthorized.WithDetails("user ID missing from token")
	}

	user, err := h.uc.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, profileResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, response.Message{Message: "ok"})
}
