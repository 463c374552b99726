package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "member/internal/delivery/context"
	"member/internal/delivery/http/response"
	"member/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MemberHandler holds dependencies for member profile and recovery handlers.
type MemberHandler struct {
	member usecase.MemberUsecase
	logger *slog.Logger
}

// NewMemberHandler is the constructor for MemberHandler, injected by Fx.
func NewMemberHandler(member usecase.MemberUsecase, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{member: member, logger: logger}
}

// GetMe returns the authenticated member's profile. The identity always
// comes from the principal, never from the request body.
func (h *MemberHandler) GetMe(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	summary, err := h.member.GetMember(c.Request().Context(), principal.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}

type modifyInfoRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"omitempty"`
}

// ModifyInfo updates the authenticated member's name and phone.
func (h *MemberHandler) ModifyInfo(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req modifyInfoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	summary, err := h.member.ModifyInfo(c.Request().Context(), usecase.ModifyInfoInput{
		Email: principal.Email,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "Profile updated successfully")
}

type modifyPasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ModifyPassword changes the authenticated member's password.
func (h *MemberHandler) ModifyPassword(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req modifyPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.member.ModifyPassword(c.Request().Context(), usecase.ModifyPasswordInput{
		Email:       principal.Email,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password changed"}, "Password changed successfully")
}

type withdrawRequest struct {
	Password string `json:"password" validate:"required"`
}

// Withdraw deletes the authenticated member's account.
func (h *MemberHandler) Withdraw(c echo.Context) error {
	principal, ok := deliverycontext.GetPrincipal(c.Request().Context())
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req withdrawRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid withdrawal input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.member.Withdraw(c.Request().Context(), usecase.WithdrawInput{
		Email:    principal.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Withdrawal successful")
}

type findEmailRequest struct {
	Phone    string `json:"phone" validate:"required"`
	AuthCode string `json:"authCode" validate:"required"`
}

// FindEmail recovers the email registered under a phone number.
func (h *MemberHandler) FindEmail(c echo.Context) error {
	var req findEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recovery input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	email, err := h.member.FindRegisteredEmail(c.Request().Context(), usecase.FindEmailInput{
		Phone:    req.Phone,
		AuthCode: req.AuthCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"email": email}, "")
}

type findPasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	AuthCode string `json:"authCode" validate:"required"`
}

// FindPassword mails a temporary password to a member who lost theirs.
func (h *MemberHandler) FindPassword(c echo.Context) error {
	var req findPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid recovery input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.member.ForwardTempPassword(c.Request().Context(), usecase.ForwardTempPasswordInput{
		Email:    req.Email,
		Phone:    req.Phone,
		AuthCode: req.AuthCode,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Temporary password sent"}, "")
}

// GetByEmail returns any member's profile. Admin only.
func (h *MemberHandler) GetByEmail(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Email path parameter is required")
	}

	summary, err := h.member.GetMember(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary, "")
}
