// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"

	"github.com/ruangtekno/backend/internal/models"
)

// CreateComment creates a comment or, when replyTo is set, a reply.
func (r *Repository) CreateComment(ctx context.Context, userID, postID int64, replyTo *int64, content string) (*models.Comment, error) {
	var reply sql.NullInt64
	if replyTo != nil {
		reply = sql.NullInt64{Int64: *replyTo, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (user_id, post_id, reply_to, content) VALUES (?, ?, ?, ?)`,
		userID, postID, reply, content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetCommentByID(ctx, id)
}

// GetCommentByID retrieves a comment by ID.
func (r *Repository) GetCommentByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT * FROM comments WHERE comment_id = ?`, commentID); err != nil {
		return nil, wrapError(err)
	}
	return &comment, nil
}

// ListTopLevelComments returns the top-level comments of a post with authors.
func (r *Repository) ListTopLevelComments(ctx context.Context, postID int64) ([]models.CommentWithAuthor, error) {
	var comments []models.CommentWithAuthor
	err := r.db.SelectContext(ctx, &comments,
		`SELECT c.*, u.name AS author_name
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.reply_to IS NULL AND c.post_id = ?
		 ORDER BY c.created_at ASC`, postID)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListReplies returns the replies of a comment with authors.
func (r *Repository) ListReplies(ctx context.Context, commentID int64) ([]models.CommentWithAuthor, error) {
	var replies []models.CommentWithAuthor
	err := r.db.SelectContext(ctx, &replies,
		`SELECT c.*, u.name AS author_name
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.reply_to = ?
		 ORDER BY c.created_at ASC`, commentID)
	if err != nil {
		return nil, err
	}
	return replies, nil
}

// DeleteComment deletes a comment; replies cascade.
func (r *Repository) DeleteComment(ctx context.Context, commentID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE comment_id = ?`, commentID)
	if err != nil {
		return err
	}
	return requireRows(res)
}
