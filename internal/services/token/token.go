// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package token implements the session token authority: it issues signed
// access/refresh token pairs at login, validates bearer tokens on protected
// requests and transparently rotates expired access tokens.
//
// Validation is stateful: a cryptographically valid access token is only
// accepted when it equals the token stored on the user's session row. Issuing
// a new pair overwrites that row, so only the most recently issued session is
// valid (single-active-session policy).
package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ruangtekno/backend/internal/models"
	"github.com/ruangtekno/backend/internal/repository"
)

var (
	ErrNotFound            = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidSession      = errors.New("session superseded or logged out")
	ErrMissingRefreshToken = errors.New("no refresh token provided")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

const (
	// DefaultAccessTTL bounds the validity of access tokens.
	DefaultAccessTTL = time.Hour
	// DefaultRefreshTTL bounds the validity of refresh tokens.
	DefaultRefreshTTL = 7 * 24 * time.Hour
	// resetTTL bounds the validity of password reset tokens.
	resetTTL = 15 * time.Minute
)

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Claims is the payload embedded in access and refresh tokens.
type Claims struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ResetClaims is the payload of a single-purpose password reset token.
type ResetClaims struct {
	UserID  int64  `json:"userId"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Store is the persistence surface the authority needs. Satisfied by
// *repository.Repository.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetSession(ctx context.Context, userID int64) (*models.Session, error)
	SetSessionTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error
	UpdateAccessToken(ctx context.Context, userID int64, accessToken string) error
	ClearSession(ctx context.Context, userID int64) error
}

// Config holds the signing secrets and validity windows. Each token class
// has its own secret; a token of one class never verifies against another.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	ResetSecret   []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Authority issues, validates and rotates session tokens.
type Authority struct {
	store Store
	cfg   Config
	now   func() time.Time
}

// New creates a token authority. Zero TTLs fall back to the defaults.
func New(store Store, cfg Config) *Authority {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Authority{store: store, cfg: cfg, now: time.Now}
}

// IssueSession authenticates the credentials and mints a fresh token pair.
// Both tokens are persisted onto the user's session row, unconditionally
// overwriting any previously active session.
func (a *Authority) IssueSession(ctx context.Context, email, password string) (*models.TokenPair, error) {
	user, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform the bcrypt comparison
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	access, err := a.mint(user.ID, user.Name, user.Email, a.cfg.AccessSecret, a.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err := a.mint(user.ID, user.Name, user.Email, a.cfg.RefreshSecret, a.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := a.store.SetSessionTokens(ctx, user.ID, access, refresh); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Authenticate validates a bearer access token. When the access token is
// expired or malformed and a valid refresh token is supplied, a new access
// token is minted, persisted and returned alongside the claims so the caller
// can relay it to the client. Rotation is attempted exactly once.
func (a *Authority) Authenticate(ctx context.Context, accessToken, refreshToken string) (*Claims, string, error) {
	claims, err := a.verify(accessToken, a.cfg.AccessSecret)
	if err == nil {
		session, serr := a.store.GetSession(ctx, claims.UserID)
		if serr != nil {
			if errors.Is(serr, repository.ErrNotFound) {
				return nil, "", ErrInvalidSession
			}
			return nil, "", fmt.Errorf("failed to load session: %w", serr)
		}
		if session.AccessToken != accessToken {
			return nil, "", ErrInvalidSession
		}
		return claims, "", nil
	}

	if refreshToken == "" {
		return nil, "", ErrMissingRefreshToken
	}

	rclaims, err := a.verify(refreshToken, a.cfg.RefreshSecret)
	if err != nil {
		return nil, "", ErrInvalidRefreshToken
	}

	access, err := a.mint(rclaims.UserID, rclaims.Name, rclaims.Email, a.cfg.AccessSecret, a.cfg.AccessTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}
	if err := a.store.UpdateAccessToken(ctx, rclaims.UserID, access); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Logged out in the meantime; the refresh token died with the session.
			return nil, "", ErrInvalidSession
		}
		return nil, "", fmt.Errorf("failed to store rotated token: %w", err)
	}

	slog.Info("token_rotated", "user_id", rclaims.UserID)
	return rclaims, access, nil
}

// EndSession clears the user's session. Idempotent: ending an already-ended
// session succeeds.
func (a *Authority) EndSession(ctx context.Context, userID int64) error {
	if err := a.store.ClearSession(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	slog.Info("logout_success", "user_id", userID)
	return nil
}

// IssueResetToken mints a short-lived password reset token.
func (a *Authority) IssueResetToken(userID int64) (string, error) {
	now := a.now()
	claims := &ResetClaims{
		UserID:  userID,
		Purpose: "password-reset",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.cfg.ResetSecret)
}

// VerifyResetToken validates a password reset token and returns the user ID.
func (a *Authority) VerifyResetToken(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.cfg.ResetSecret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.Purpose != "password-reset" {
		return 0, errors.New("invalid reset token")
	}
	return claims.UserID, nil
}

// mint signs a token carrying the user's identity with the given secret and
// validity window.
func (a *Authority) mint(userID int64, name, email string, secret []byte, ttl time.Duration) (string, error) {
	now := a.now()
	claims := &Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// verify checks signature and expiry of a token against one secret.
func (a *Authority) verify(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
