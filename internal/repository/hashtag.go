// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/ruangtekno/backend/internal/models"
)

// CreateHashtag creates a new hashtag.
func (r *Repository) CreateHashtag(ctx context.Context, name string) (*models.Hashtag, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO hashtags (name) VALUES (?)`, name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetHashtagByID(ctx, id)
}

// GetHashtagByID retrieves a hashtag by ID.
func (r *Repository) GetHashtagByID(ctx context.Context, hashtagID int64) (*models.Hashtag, error) {
	var tag models.Hashtag
	if err := r.db.GetContext(ctx, &tag, `SELECT * FROM hashtags WHERE hashtag_id = ?`, hashtagID); err != nil {
		return nil, wrapError(err)
	}
	return &tag, nil
}

// ListHashtags returns all hashtags sorted by name.
func (r *Repository) ListHashtags(ctx context.Context) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	if err := r.db.SelectContext(ctx, &tags, `SELECT * FROM hashtags ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListHashtagsByPost returns the hashtags linked to a post.
func (r *Repository) ListHashtagsByPost(ctx context.Context, postID int64) ([]models.Hashtag, error) {
	var tags []models.Hashtag
	err := r.db.SelectContext(ctx, &tags,
		`SELECT h.* FROM hashtags h
		 JOIN post_hashtags ph ON ph.hashtag_id = h.hashtag_id
		 WHERE ph.post_id = ?
		 ORDER BY h.name ASC`, postID)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
