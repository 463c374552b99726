package handler

import (
	"log/slog"
	"net/http"

	"member/internal/delivery/http/response"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// VerificationHandler holds dependencies for email verification handlers.
type VerificationHandler struct {
	verification usecase.VerificationUsecase
	logger       *slog.Logger
}

// NewVerificationHandler is the constructor for VerificationHandler, injected by Fx.
func NewVerificationHandler(verification usecase.VerificationUsecase, logger *slog.Logger) *VerificationHandler {
	return &VerificationHandler{verification: verification, logger: logger}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendCode mails a verification code to an email that is about to register.
func (h *VerificationHandler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.verification.SendCode(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Verification code sent"}, "")
}

// SendRecoveryCode mails a verification code to a registered email for the
// account-recovery flows.
func (h *VerificationHandler) SendRecoveryCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.verification.SendCodeToExistingAccount(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Verification code sent"}, "")
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// VerifyCode checks a code for the new-registration flow.
func (h *VerificationHandler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	verified, err := h.verification.VerifyNewAccountCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"verified": verified}, "")
}

// VerifyRecoveryCode checks a code for the account-recovery flow.
func (h *VerificationHandler) VerifyRecoveryCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	verified, err := h.verification.VerifyExistingAccountCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"verified": verified}, "")
}
