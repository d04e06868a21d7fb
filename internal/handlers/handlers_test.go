// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruangtekno/backend/internal/auth"
	"github.com/ruangtekno/backend/internal/handlers"
	"github.com/ruangtekno/backend/internal/models"
	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/services/account"
	"github.com/ruangtekno/backend/internal/services/recommend"
	"github.com/ruangtekno/backend/internal/services/token"
	"github.com/ruangtekno/backend/internal/testutil"
)

type testApp struct {
	handlers  *handlers.Handlers
	repo      *repository.Repository
	authority *token.Authority
	mailer    *testutil.Mailer
	echo      *echo.Echo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	_, repo := testutil.NewTestDB(t)
	authority := token.New(repo, token.Config{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		ResetSecret:   []byte("reset-secret-for-tests"),
		AccessTTL:     time.Hour,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	mailer := &testutil.Mailer{}
	accounts := account.NewService(repo, authority, mailer)
	recommender := recommend.NewService(repo)
	return &testApp{
		handlers:  handlers.New(repo, accounts, authority, recommender),
		repo:      repo,
		authority: authority,
		mailer:    mailer,
		echo:      echo.New(),
	}
}

// authenticate attaches the user's claims to the request context the way the
// auth middleware would.
func authenticate(c echo.Context, user *models.User) {
	claims := &token.Claims{UserID: user.ID, Name: user.Name, Email: user.Email}
	ctx := auth.SetClaims(c.Request().Context(), claims)
	c.SetRequest(c.Request().WithContext(ctx))
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	c, rec := testutil.NewEchoContext(app.echo, http.MethodGet, "/health", nil)

	require.NoError(t, app.handlers.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
