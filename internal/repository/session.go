// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/ruangtekno/backend/internal/models"
)

// SetSessionTokens stores the active token pair for a user, overwriting any
// previous session. Last write wins; there is deliberately no conditional
// check against the prior value.
func (r *Repository) SetSessionTokens(ctx context.Context, userID int64, accessToken, refreshToken string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, access_token, refresh_token) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		   access_token = excluded.access_token,
		   refresh_token = excluded.refresh_token,
		   updated_at = CURRENT_TIMESTAMP`,
		userID, accessToken, refreshToken)
	return err
}

// UpdateAccessToken replaces only the access token of an existing session.
// Used by the silent-rotation path.
func (r *Repository) UpdateAccessToken(ctx context.Context, userID int64, accessToken string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET access_token = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?`,
		accessToken, userID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// GetSession retrieves the active session for a user.
func (r *Repository) GetSession(ctx context.Context, userID int64) (*models.Session, error) {
	var session models.Session
	if err := r.db.GetContext(ctx, &session, `SELECT * FROM sessions WHERE user_id = ?`, userID); err != nil {
		return nil, wrapError(err)
	}
	return &session, nil
}

// ClearSession removes a user's session. Clearing a non-existent session is
// not an error; logout is idempotent.
func (r *Repository) ClearSession(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}
