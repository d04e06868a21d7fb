// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package account implements registration, OTP verification and password
// recovery on top of the repository and the token authority.
package account

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net/mail"

	"golang.org/x/crypto/bcrypt"

	"github.com/ruangtekno/backend/internal/models"
	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/services/token"
)

var (
	ErrEmailTaken      = errors.New("email is already registered")
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrUserNotFound    = errors.New("user not found")
	ErrAlreadyVerified = errors.New("account is already verified")
	ErrInvalidOTP      = errors.New("invalid otp code")
	ErrSamePassword    = errors.New("new password must differ from the previous password")
)

// Mailer is the outbound mail surface the service needs. Satisfied by
// *email.Service.
type Mailer interface {
	SendOTP(to, name, otp string) error
	SendPasswordReset(to, resetToken string) error
}

// Service wires accounts to the repository, the token authority and the
// mailer.
type Service struct {
	repo      *repository.Repository
	authority *token.Authority
	mailer    Mailer
}

// NewService creates a new account service.
func NewService(repo *repository.Repository, authority *token.Authority, mailer Mailer) *Service {
	return &Service{repo: repo, authority: authority, mailer: mailer}
}

// Register creates a new unverified user and mails the OTP code. The
// duplicate-email check runs before any password hashing.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	exists, err := s.repo.UserExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, name, email, string(passwordHash), otp)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendOTP(email, name, otp); err != nil {
		return nil, fmt.Errorf("failed to send otp mail: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", email)
	return user, nil
}

// VerifyOTP confirms the registration code and marks the account verified.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.Verified() {
		return ErrAlreadyVerified
	}
	if !user.OTPCode.Valid || user.OTPCode.String != otp {
		return ErrInvalidOTP
	}

	if err := s.repo.MarkUserVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	slog.Info("otp_verified", "user_id", user.ID)
	return nil
}

// Login delegates to the token authority.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	return s.authority.IssueSession(ctx, email, password)
}

// Logout ends the user's session.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.authority.EndSession(ctx, userID)
}

// ForgotPassword mails a reset link for the account behind the email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	resetToken, err := s.authority.IssueResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to sign reset token: %w", err)
	}

	if err := s.mailer.SendPasswordReset(email, resetToken); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	slog.Info("password_reset_requested", "user_id", user.ID)
	return nil
}

// ResetPassword validates the reset token and installs the new password.
// The new password must differ from the current one.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	userID, err := s.authority.VerifyResetToken(resetToken)
	if err != nil {
		return fmt.Errorf("invalid reset token: %w", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(newPassword)) == nil {
		return ErrSamePassword
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password_reset", "user_id", userID)
	return nil
}

// generateOTP returns a random six digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
