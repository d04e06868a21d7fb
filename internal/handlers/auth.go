// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/auth"
	"github.com/ruangtekno/backend/internal/services/account"
	"github.com/ruangtekno/backend/internal/services/token"
)

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and mails the OTP code.
func (h *Handlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	user, err := h.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			return fail(c, http.StatusConflict, "email is already registered, please log in")
		case errors.Is(err, account.ErrInvalidEmail):
			return fail(c, http.StatusBadRequest, "invalid email format")
		default:
			slog.Error("register failed", "error", err, "email", req.Email)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusCreated, "user registered successfully, check your email for the OTP", map[string]any{
		"userId":    user.ID,
		"userName":  user.Name,
		"userEmail": user.Email,
	})
}

// VerifyOTPRequest is the request body for OTP verification.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP confirms the registration code.
func (h *Handlers) VerifyOTP(c echo.Context) error {
	var req VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.OTP == "" {
		return fail(c, http.StatusBadRequest, "email and otp are required")
	}

	if err := h.accounts.VerifyOTP(c.Request().Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, account.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "user not found")
		case errors.Is(err, account.ErrAlreadyVerified):
			return fail(c, http.StatusBadRequest, "account is already verified, please log in")
		case errors.Is(err, account.ErrInvalidOTP):
			return fail(c, http.StatusBadRequest, "invalid otp, please try again")
		default:
			slog.Error("otp verification failed", "error", err, "email", req.Email)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusOK, "account verified successfully, you can now log in", nil)
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login issues a fresh token pair, superseding any previous session.
func (h *Handlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	pair, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrNotFound):
			return fail(c, http.StatusNotFound, "user not found")
		case errors.Is(err, token.ErrInvalidCredentials):
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		default:
			slog.Error("login failed", "error", err, "email", req.Email)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusOK, "login successful", pair)
}

// ValidateLogin reports the authenticated claims. When the middleware
// rotated the access token the envelope carries the replacement.
func (h *Handlers) ValidateLogin(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())
	return success(c, http.StatusOK, "user is logged in", map[string]any{
		"userId": claims.UserID,
		"name":   claims.Name,
		"email":  claims.Email,
	})
}

// RefreshRequest is the request body for an explicit token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh mints a new access token from a refresh token.
func (h *Handlers) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refresh token is required")
	}

	// An empty access token forces the rotation path.
	_, rotated, err := h.authority.Authenticate(c.Request().Context(), "", req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrInvalidRefreshToken):
			return fail(c, http.StatusForbidden, "invalid refresh token")
		case errors.Is(err, token.ErrInvalidSession):
			return fail(c, http.StatusUnauthorized, "session is no longer valid")
		default:
			slog.Error("token refresh failed", "error", err)
			return fail(c, http.StatusInternalServerError, "internal server error")
		}
	}

	return success(c, http.StatusOK, "token refreshed", map[string]string{"accessToken": rotated})
}

// Logout clears the caller's session. Idempotent.
func (h *Handlers) Logout(c echo.Context) error {
	claims := auth.GetClaims(c.Request().Context())
	if err := h.accounts.Logout(c.Request().Context(), claims.UserID); err != nil {
		slog.Error("logout failed", "error", err, "user_id", claims.UserID)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}
	return success(c, http.StatusOK, "logout successful", nil)
}

// ForgotPasswordRequest is the request body for a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword mails a password reset link.
func (h *Handlers) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fail(c, http.StatusBadRequest, "email is required")
	}

	if err := h.accounts.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "user not found")
		}
		slog.Error("forgot password failed", "error", err, "email", req.Email)
		return fail(c, http.StatusInternalServerError, "internal server error")
	}

	return success(c, http.StatusOK, "password reset link has been sent to your email", nil)
}

// ResetPasswordRequest is the request body for a password reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ResetPassword installs a new password from a mailed reset token.
func (h *Handlers) ResetPassword(c echo.Context) error {
	resetToken := c.Param("token")

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if resetToken == "" || req.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "token and new password are required")
	}

	if err := h.accounts.ResetPassword(c.Request().Context(), resetToken, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, account.ErrSamePassword):
			return fail(c, http.StatusBadRequest, "new password must be different from the previous password")
		case errors.Is(err, account.ErrUserNotFound):
			return fail(c, http.StatusNotFound, "user not found")
		default:
			return fail(c, http.StatusBadRequest, "invalid or expired token")
		}
	}

	return success(c, http.StatusOK, "password has been updated successfully", nil)
}
