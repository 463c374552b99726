// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"member/internal/delivery/http/middleware"
	"member/internal/delivery/http/response"
	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for registration and session handlers.
type AuthHandler struct {
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(session usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{session: session, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty"`
	AuthCode string `json:"authCode" validate:"required"`
}

// Register handles the member registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.session.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		AuthCode: req.AuthCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Member, "Member registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles the member login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.session.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Refresh mints a new access token against the Refresh_Token request header
// and returns it in the Access_Token response header as well as the body.
func (h *AuthHandler) Refresh(c echo.Context) error {
	refreshToken := c.Request().Header.Get(middleware.HeaderRefreshToken)
	if refreshToken == "" {
		return response.Unauthorized(c, "REFRESH_INVALID", "Refresh token header is missing")
	}

	output, err := h.session.Refresh(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(middleware.HeaderAccessToken, output.AccessToken)

	return response.Success(c, http.StatusOK, output, "Token refreshed successfully")
}

// Logout invalidates the presented access token for its remaining lifetime.
func (h *AuthHandler) Logout(c echo.Context) error {
	accessToken, ok := service.ExtractBearer(c.Request().Header.Get(middleware.HeaderAuthorization))
	if !ok {
		return response.Unauthorized(c, "TOKEN_MALFORMED", "Bearer access token is missing")
	}

	if err := h.session.Logout(c.Request().Context(), accessToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Successfully signed out"}, "Logout successful")
}
