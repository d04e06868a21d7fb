// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/ruangtekno/backend/internal/models"
)

// CreateSearchLog records a search query for a user.
func (r *Repository) CreateSearchLog(ctx context.Context, userID int64, query string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO search_logs (user_id, query) VALUES (?, ?)`, userID, query)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRecentSearchQueries returns the user's most recent distinct queries,
// newest first, capped at limit.
func (r *Repository) ListRecentSearchQueries(ctx context.Context, userID int64, limit int) ([]string, error) {
	var queries []string
	err := r.db.SelectContext(ctx, &queries,
		`SELECT query FROM (
		   SELECT query, MAX(searched_at) AS latest
		   FROM search_logs
		   WHERE user_id = ?
		   GROUP BY query
		 )
		 ORDER BY latest DESC
		 LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	return queries, nil
}

// ListSearchLogsByUser returns every log entry for a user.
func (r *Repository) ListSearchLogsByUser(ctx context.Context, userID int64) ([]models.SearchLog, error) {
	var logs []models.SearchLog
	err := r.db.SelectContext(ctx, &logs,
		`SELECT * FROM search_logs WHERE user_id = ? ORDER BY searched_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// GetSearchLogByID retrieves one log entry.
func (r *Repository) GetSearchLogByID(ctx context.Context, logID int64) (*models.SearchLog, error) {
	var log models.SearchLog
	if err := r.db.GetContext(ctx, &log, `SELECT * FROM search_logs WHERE log_id = ?`, logID); err != nil {
		return nil, wrapError(err)
	}
	return &log, nil
}

// DeleteSearchLog deletes one log entry.
func (r *Repository) DeleteSearchLog(ctx context.Context, logID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM search_logs WHERE log_id = ?`, logID)
	if err != nil {
		return err
	}
	return requireRows(res)
}
