// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"database/sql"

	"github.com/ruangtekno/backend/internal/models"
)

// CreateDiscussion creates a question (answerTo nil) or an answer.
func (r *Repository) CreateDiscussion(ctx context.Context, userID int64, answerTo *int64, title, content string) (*models.Discussion, error) {
	var answer sql.NullInt64
	if answerTo != nil {
		answer = sql.NullInt64{Int64: *answerTo, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO discussions (user_id, answer_to, title, content) VALUES (?, ?, ?, ?)`,
		userID, answer, title, content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetDiscussionByID(ctx, id)
}

// GetDiscussionByID retrieves a discussion by ID.
func (r *Repository) GetDiscussionByID(ctx context.Context, discussionID int64) (*models.Discussion, error) {
	var d models.Discussion
	if err := r.db.GetContext(ctx, &d, `SELECT * FROM discussions WHERE discussion_id = ?`, discussionID); err != nil {
		return nil, wrapError(err)
	}
	return &d, nil
}

// GetDiscussionDetail retrieves a discussion with author, hashtag names and
// answer count.
func (r *Repository) GetDiscussionDetail(ctx context.Context, discussionID int64) (*models.DiscussionDetail, error) {
	var detail models.DiscussionDetail
	err := r.db.GetContext(ctx, &detail,
		`SELECT d.*, u.name AS author_name,
		        GROUP_CONCAT(DISTINCT h.name) AS hashtags,
		        COUNT(DISTINCT a.discussion_id) AS answer_count
		 FROM discussions d
		 JOIN users u ON u.id = d.user_id
		 LEFT JOIN discussion_hashtags dh ON dh.discussion_id = d.discussion_id
		 LEFT JOIN hashtags h ON h.hashtag_id = dh.hashtag_id
		 LEFT JOIN discussions a ON a.answer_to = d.discussion_id
		 WHERE d.discussion_id = ?
		 GROUP BY d.discussion_id`, discussionID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &detail, nil
}

// ListQuestions returns all top-level discussions with detail columns.
func (r *Repository) ListQuestions(ctx context.Context) ([]models.DiscussionDetail, error) {
	var questions []models.DiscussionDetail
	err := r.db.SelectContext(ctx, &questions,
		`SELECT d.*, u.name AS author_name,
		        GROUP_CONCAT(DISTINCT h.name) AS hashtags,
		        COUNT(DISTINCT a.discussion_id) AS answer_count
		 FROM discussions d
		 JOIN users u ON u.id = d.user_id
		 LEFT JOIN discussion_hashtags dh ON dh.discussion_id = d.discussion_id
		 LEFT JOIN hashtags h ON h.hashtag_id = dh.hashtag_id
		 LEFT JOIN discussions a ON a.answer_to = d.discussion_id
		 WHERE d.answer_to IS NULL
		 GROUP BY d.discussion_id
		 ORDER BY d.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// ListQuestionsWithUserState returns all questions joined with the user's
// state rows, creating missing rows first.
func (r *Repository) ListQuestionsWithUserState(ctx context.Context, userID int64) ([]models.DiscussionWithUserState, error) {
	if err := r.EnsureUserDiscussionRows(ctx, userID); err != nil {
		return nil, err
	}
	var questions []models.DiscussionWithUserState
	err := r.db.SelectContext(ctx, &questions,
		`SELECT d.*, u.name AS author_name,
		        GROUP_CONCAT(DISTINCT h.name) AS hashtags,
		        COUNT(DISTINCT a.discussion_id) AS answer_count,
		        ud.user_vote, ud.user_views, ud.is_bookmarked
		 FROM discussions d
		 JOIN users u ON u.id = d.user_id
		 JOIN user_discussions ud ON ud.discussion_id = d.discussion_id AND ud.user_id = ?
		 LEFT JOIN discussion_hashtags dh ON dh.discussion_id = d.discussion_id
		 LEFT JOIN hashtags h ON h.hashtag_id = dh.hashtag_id
		 LEFT JOIN discussions a ON a.answer_to = d.discussion_id
		 WHERE d.answer_to IS NULL
		 GROUP BY d.discussion_id
		 ORDER BY d.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// EnsureUserDiscussionRows creates missing user_discussions rows for every
// question for the given user.
func (r *Repository) EnsureUserDiscussionRows(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_discussions (user_id, discussion_id)
		 SELECT ?, d.discussion_id
		 FROM discussions d
		 LEFT JOIN user_discussions ud ON ud.discussion_id = d.discussion_id AND ud.user_id = ?
		 WHERE ud.discussion_id IS NULL AND d.answer_to IS NULL`, userID, userID)
	return err
}

// EnsureUserDiscussionRow creates the state row for one discussion if absent.
// The discussion must exist; an unknown id yields ErrNotFound.
func (r *Repository) EnsureUserDiscussionRow(ctx context.Context, userID, discussionID int64) error {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM discussions WHERE discussion_id = ?`, discussionID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_discussions (user_id, discussion_id) VALUES (?, ?)`,
		userID, discussionID)
	return err
}

// ListAnswers returns the answers of a question with detail columns.
func (r *Repository) ListAnswers(ctx context.Context, discussionID int64) ([]models.DiscussionDetail, error) {
	var answers []models.DiscussionDetail
	err := r.db.SelectContext(ctx, &answers,
		`SELECT d.*, u.name AS author_name,
		        NULL AS hashtags, 0 AS answer_count
		 FROM discussions d
		 JOIN users u ON u.id = d.user_id
		 WHERE d.answer_to = ?
		 ORDER BY d.votes DESC, d.created_at ASC`, discussionID)
	if err != nil {
		return nil, err
	}
	return answers, nil
}

// ListDiscussionsByUser returns every discussion a user authored.
func (r *Repository) ListDiscussionsByUser(ctx context.Context, userID int64) ([]models.Discussion, error) {
	var discussions []models.Discussion
	err := r.db.SelectContext(ctx, &discussions,
		`SELECT * FROM discussions WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return discussions, nil
}

// UpdateDiscussion replaces title and content.
func (r *Repository) UpdateDiscussion(ctx context.Context, discussionID int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE discussions SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE discussion_id = ?`,
		title, content, discussionID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// DeleteDiscussion deletes a discussion; answers and state rows cascade.
func (r *Repository) DeleteDiscussion(ctx context.Context, discussionID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discussions WHERE discussion_id = ?`, discussionID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// VoteDiscussion records a vote with the same delta semantics as VotePost.
func (r *Repository) VoteDiscussion(ctx context.Context, userID, discussionID, vote int64) error {
	if err := r.EnsureUserDiscussionRow(ctx, userID, discussionID); err != nil {
		return err
	}

	var prev int64
	err := r.db.GetContext(ctx, &prev,
		`SELECT user_vote FROM user_discussions WHERE user_id = ? AND discussion_id = ?`,
		userID, discussionID)
	if err != nil {
		return wrapError(err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE user_discussions SET user_vote = ? WHERE user_id = ? AND discussion_id = ?`,
		vote, userID, discussionID); err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE discussions SET votes = votes + ? WHERE discussion_id = ?`, vote-prev, discussionID)
	return err
}

// AddDiscussionView increments the discussion's view counter.
func (r *Repository) AddDiscussionView(ctx context.Context, discussionID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE discussions SET views = views + 1 WHERE discussion_id = ?`, discussionID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// AddDiscussionHashtag links a hashtag to a discussion.
func (r *Repository) AddDiscussionHashtag(ctx context.Context, discussionID, hashtagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO discussion_hashtags (discussion_id, hashtag_id) VALUES (?, ?)`,
		discussionID, hashtagID)
	return err
}
