// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/testutil"
)

func TestRegisterHandler(t *testing.T) {
	app := newTestApp(t)
	body := `{"name":"alice","email":"alice@example.com","password":"s3cret-password"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/register", strings.NewReader(body))

	require.NoError(t, app.handlers.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "success", envelope["status"])
	require.Len(t, app.mailer.OTPs, 1)
}

func TestRegisterHandlerDuplicateEmail(t *testing.T) {
	app := newTestApp(t)
	body := `{"name":"alice","email":"alice@example.com","password":"s3cret-password"}`

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/register", strings.NewReader(body))
	require.NoError(t, app.handlers.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/register", strings.NewReader(body))
	require.NoError(t, app.handlers.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterHandlerMissingFields(t *testing.T) {
	app := newTestApp(t)
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/register", strings.NewReader(`{"name":"alice"}`))

	require.NoError(t, app.handlers.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"email":"` + user.Email + `","password":"` + testutil.Password + `"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/login", strings.NewReader(body))

	require.NoError(t, app.handlers.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, data["accessToken"])
	assert.NotEmpty(t, data["refreshToken"])
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"email":"` + user.Email + `","password":"wrong"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/login", strings.NewReader(body))

	require.NoError(t, app.handlers.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandlerUnknownUser(t *testing.T) {
	app := newTestApp(t)
	body := `{"email":"nobody@example.com","password":"whatever"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/login", strings.NewReader(body))

	require.NoError(t, app.handlers.Login(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	pair, err := app.authority.IssueSession(context.Background(), user.Email, testutil.Password)
	require.NoError(t, err)

	body := `{"refreshToken":"` + pair.RefreshToken + `"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/refresh", strings.NewReader(body))

	require.NoError(t, app.handlers.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeEnvelope(t, rec)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	rotated, ok := data["accessToken"].(string)
	require.True(t, ok)
	require.NotEmpty(t, rotated)

	session, err := app.repo.GetSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, rotated, session.AccessToken)
}

func TestRefreshHandlerAfterLogout(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	pair, err := app.authority.IssueSession(context.Background(), user.Email, testutil.Password)
	require.NoError(t, err)
	require.NoError(t, app.authority.EndSession(context.Background(), user.ID))

	body := `{"refreshToken":"` + pair.RefreshToken + `"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/refresh", strings.NewReader(body))

	require.NoError(t, app.handlers.Refresh(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshHandlerGarbageToken(t *testing.T) {
	app := newTestApp(t)
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/refresh", strings.NewReader(`{"refreshToken":"garbage"}`))

	require.NoError(t, app.handlers.Refresh(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")
	_, err := app.authority.IssueSession(context.Background(), user.Email, testutil.Password)
	require.NoError(t, err)

	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/logout", nil)
	authenticate(c, user)

	require.NoError(t, app.handlers.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err = app.repo.GetSession(context.Background(), user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVerifyOTPHandler(t *testing.T) {
	app := newTestApp(t)

	body := `{"name":"alice","email":"alice@example.com","password":"s3cret-password"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/register", strings.NewReader(body))
	require.NoError(t, app.handlers.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	otp := app.mailer.OTPs[0].OTP

	body = `{"email":"alice@example.com","otp":"` + otp + `"}`
	c, rec = testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/verify-otp", strings.NewReader(body))
	require.NoError(t, app.handlers.VerifyOTP(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	user, err := app.repo.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, user.Verified())
}

func TestResetPasswordHandler(t *testing.T) {
	app := newTestApp(t)
	user := testutil.NewVerifiedUser(t, app.repo, "alice", "alice@example.com")

	body := `{"email":"` + user.Email + `"}`
	c, rec := testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/forgot-password", strings.NewReader(body))
	require.NoError(t, app.handlers.ForgotPassword(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, app.mailer.Resets, 1)

	body = `{"newPassword":"brand-new-password"}`
	c, rec = testutil.NewEchoContext(app.echo, http.MethodPost, "/auth/reset-password/x", strings.NewReader(body))
	c.SetParamNames("token")
	c.SetParamValues(app.mailer.Resets[0].Token)
	require.NoError(t, app.handlers.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, err := app.authority.IssueSession(context.Background(), user.Email, "brand-new-password")
	require.NoError(t, err)
}
