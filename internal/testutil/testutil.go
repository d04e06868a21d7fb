// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/ruangtekno/backend/internal/database"
	"github.com/ruangtekno/backend/internal/models"
	"github.com/ruangtekno/backend/internal/repository"
)

// Password is the plaintext password of every user these helpers create.
const Password = "correct horse battery staple"

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// NewTestUser creates an unverified test user with the shared Password.
func NewTestUser(t *testing.T, repo *repository.Repository, name, email string) *models.User {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.DefaultCost)
	require.NoError(t, err)
	user, err := repo.CreateUser(ctx, name, email, string(hash), "123456")
	require.NoError(t, err)
	return user
}

// NewVerifiedUser creates a verified test user with the shared Password.
func NewVerifiedUser(t *testing.T, repo *repository.Repository, name, email string) *models.User {
	t.Helper()
	ctx := context.Background()
	user := NewTestUser(t, repo, name, email)
	require.NoError(t, repo.MarkUserVerified(ctx, user.ID))
	user.IsVerified = 1
	return user
}

// NewTestPost creates a post owned by the given user.
func NewTestPost(t *testing.T, repo *repository.Repository, userID int64, title, content string) *models.Post {
	t.Helper()
	post, err := repo.CreatePost(context.Background(), userID, title, content)
	require.NoError(t, err)
	return post
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewEchoContextWithHeaders creates an Echo context with custom headers.
func NewEchoContextWithHeaders(e *echo.Echo, method, path string, body io.Reader, headers map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// Mailer records outbound mail instead of sending it.
type Mailer struct {
	OTPs   []SentOTP
	Resets []SentReset
}

// SentOTP is one recorded verification mail.
type SentOTP struct {
	To   string
	Name string
	OTP  string
}

// SentReset is one recorded password reset mail.
type SentReset struct {
	To    string
	Token string
}

func (m *Mailer) SendOTP(to, name, otp string) error {
	m.OTPs = append(m.OTPs, SentOTP{To: to, Name: name, OTP: otp})
	return nil
}

func (m *Mailer) SendPasswordReset(to, resetToken string) error {
	m.Resets = append(m.Resets, SentReset{To: to, Token: resetToken})
	return nil
}
