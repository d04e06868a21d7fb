// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Post is a published article.
type Post struct { //nolint:govet // fieldalignment not critical for models
	PostID    int64     `db:"post_id" json:"postId"`
	UserID    int64     `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	Views     int64     `db:"views" json:"views"`
	Votes     int64     `db:"votes" json:"votes"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// PostDetail joins a post with its author and the comma-separated hashtag
// names attached to it.
type PostDetail struct { //nolint:govet // fieldalignment not critical for models
	Post
	AuthorName  string         `db:"author_name" json:"authorName"`
	AuthorEmail string         `db:"author_email" json:"authorEmail"`
	Hashtags    sql.NullString `db:"hashtags" json:"hashtags"`
}

// UserPost is the per-user state of a post: vote cast, personal view count
// and bookmark flag. Rows are created lazily on first contact.
type UserPost struct { //nolint:govet // fieldalignment not critical for models
	UserID       int64 `db:"user_id" json:"userId"`
	PostID       int64 `db:"post_id" json:"postId"`
	UserVote     int64 `db:"user_vote" json:"userVote"`
	UserViews    int64 `db:"user_views" json:"userViews"`
	IsBookmarked int64 `db:"is_bookmarked" json:"isBookmarked"`
}

// PostWithUserState is a post joined with the requesting user's state row.
type PostWithUserState struct { //nolint:govet // fieldalignment not critical for models
	Post
	UserVote     int64 `db:"user_vote" json:"userVote"`
	UserViews    int64 `db:"user_views" json:"userViews"`
	IsBookmarked int64 `db:"is_bookmarked" json:"isBookmarked"`
}
