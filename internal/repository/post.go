// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"github.com/ruangtekno/backend/internal/models"
)

// CreatePost creates a new post and returns it.
func (r *Repository) CreatePost(ctx context.Context, userID int64, title, content string) (*models.Post, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO posts (user_id, title, content) VALUES (?, ?, ?)`,
		userID, title, content)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetPostByID(ctx, id)
}

// GetPostByID retrieves a post by ID.
func (r *Repository) GetPostByID(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE post_id = ?`, postID); err != nil {
		return nil, wrapError(err)
	}
	return &post, nil
}

// GetPostDetailByID retrieves a post joined with its author and hashtag names.
func (r *Repository) GetPostDetailByID(ctx context.Context, postID int64) (*models.PostDetail, error) {
	var detail models.PostDetail
	err := r.db.GetContext(ctx, &detail,
		`SELECT p.*, u.name AS author_name, u.email AS author_email,
		        GROUP_CONCAT(h.name) AS hashtags
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 LEFT JOIN post_hashtags ph ON ph.post_id = p.post_id
		 LEFT JOIN hashtags h ON h.hashtag_id = ph.hashtag_id
		 WHERE p.post_id = ?
		 GROUP BY p.post_id`, postID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &detail, nil
}

// ListPosts returns all posts, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, `SELECT * FROM posts ORDER BY created_at DESC`); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostsWithUserState returns all posts joined with the given user's state
// rows, creating missing state rows first.
func (r *Repository) ListPostsWithUserState(ctx context.Context, userID int64) ([]models.PostWithUserState, error) {
	if err := r.EnsureUserPostRows(ctx, userID); err != nil {
		return nil, err
	}
	var posts []models.PostWithUserState
	err := r.db.SelectContext(ctx, &posts,
		`SELECT p.*, up.user_vote, up.user_views, up.is_bookmarked
		 FROM posts p
		 JOIN user_posts up ON up.post_id = p.post_id
		 WHERE up.user_id = ?
		 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListBookmarkedPosts returns the user's bookmarked posts with state.
func (r *Repository) ListBookmarkedPosts(ctx context.Context, userID int64) ([]models.PostWithUserState, error) {
	var posts []models.PostWithUserState
	err := r.db.SelectContext(ctx, &posts,
		`SELECT p.*, up.user_vote, up.user_views, up.is_bookmarked
		 FROM posts p
		 JOIN user_posts up ON up.post_id = p.post_id
		 WHERE up.user_id = ? AND up.is_bookmarked = 1
		 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// EnsureUserPostRows creates missing user_posts rows for every post for the
// given user.
func (r *Repository) EnsureUserPostRows(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_posts (user_id, post_id)
		 SELECT ?, p.post_id
		 FROM posts p
		 LEFT JOIN user_posts up ON up.post_id = p.post_id AND up.user_id = ?
		 WHERE up.post_id IS NULL`, userID, userID)
	return err
}

// EnsureUserPostRow creates the state row for one post if absent. The post
// must exist; an unknown post id yields ErrNotFound.
func (r *Repository) EnsureUserPostRow(ctx context.Context, userID, postID int64) error {
	if err := r.requirePost(ctx, postID); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_posts (user_id, post_id) VALUES (?, ?)`, userID, postID)
	return err
}

// requirePost returns ErrNotFound unless the post exists.
func (r *Repository) requirePost(ctx context.Context, postID int64) error {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM posts WHERE post_id = ?`, postID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserPost retrieves the state row a user holds for a post.
func (r *Repository) GetUserPost(ctx context.Context, userID, postID int64) (*models.UserPost, error) {
	var up models.UserPost
	err := r.db.GetContext(ctx, &up,
		`SELECT * FROM user_posts WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &up, nil
}

// UpdatePost replaces a post's title and content.
func (r *Repository) UpdatePost(ctx context.Context, postID int64, title, content string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = ?, content = ?, updated_at = CURRENT_TIMESTAMP WHERE post_id = ?`,
		title, content, postID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// DeletePost deletes a post; hashtag links, comments and user state cascade.
func (r *Repository) DeletePost(ctx context.Context, postID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE post_id = ?`, postID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// VotePost records the user's vote (-1, 0 or 1) and adjusts the post's vote
// aggregate by the delta against the previous vote. The user must already
// hold a state row for the post.
func (r *Repository) VotePost(ctx context.Context, userID, postID, vote int64) error {
	var prev int64
	err := r.db.GetContext(ctx, &prev,
		`SELECT user_vote FROM user_posts WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		return wrapError(err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE user_posts SET user_vote = ? WHERE user_id = ? AND post_id = ?`,
		vote, userID, postID); err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE posts SET votes = votes + ? WHERE post_id = ?`, vote-prev, postID)
	return err
}

// AddPostView increments the post's view counter and, when a user is known,
// the per-user view counter.
func (r *Repository) AddPostView(ctx context.Context, postID int64, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE post_id = ?`, postID)
	if err != nil {
		return err
	}
	if err := requireRows(res); err != nil {
		return err
	}
	if userID != 0 {
		_, err = r.db.ExecContext(ctx,
			`UPDATE user_posts SET user_views = user_views + 1 WHERE user_id = ? AND post_id = ?`,
			userID, postID)
	}
	return err
}

// ToggleBookmark flips the bookmark flag, creating the state row when absent.
// Bookmarking an unknown post yields ErrNotFound.
func (r *Repository) ToggleBookmark(ctx context.Context, userID, postID int64) error {
	if err := r.requirePost(ctx, postID); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_posts (user_id, post_id, is_bookmarked) VALUES (?, ?, 1)
		 ON CONFLICT (user_id, post_id) DO UPDATE SET is_bookmarked = 1 - is_bookmarked`,
		userID, postID)
	return err
}

// AddPostHashtag links a hashtag to a post. Linking twice is not an error.
func (r *Repository) AddPostHashtag(ctx context.Context, postID, hashtagID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO post_hashtags (post_id, hashtag_id) VALUES (?, ?)`,
		postID, hashtagID)
	return err
}

// ReplacePostHashtags removes all hashtag links of a post and installs the
// given set.
func (r *Repository) ReplacePostHashtags(ctx context.Context, postID int64, hashtagIDs []int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM post_hashtags WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, id := range hashtagIDs {
		if err := r.AddPostHashtag(ctx, postID, id); err != nil {
			return err
		}
	}
	return nil
}

// SearchPosts finds posts whose title or content contains the keyword.
func (r *Repository) SearchPosts(ctx context.Context, keyword string) ([]models.PostDetail, error) {
	pattern := "%" + keyword + "%"
	var posts []models.PostDetail
	err := r.db.SelectContext(ctx, &posts,
		`SELECT p.*, u.name AS author_name, u.email AS author_email, NULL AS hashtags
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.title LIKE ? OR p.content LIKE ?
		 ORDER BY p.created_at DESC`, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return posts, nil
}
