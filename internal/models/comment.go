// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Comment belongs to a post. A non-null ReplyTo makes it a reply to
// another comment.
type Comment struct { //nolint:govet // fieldalignment not critical for models
	CommentID int64         `db:"comment_id" json:"commentId"`
	UserID    int64         `db:"user_id" json:"userId"`
	PostID    int64         `db:"post_id" json:"postId"`
	ReplyTo   sql.NullInt64 `db:"reply_to" json:"replyTo"`
	Content   string        `db:"content" json:"content"`
	CreatedAt time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `db:"updated_at" json:"updatedAt"`
}

// CommentWithAuthor joins a comment with the author's display name.
type CommentWithAuthor struct { //nolint:govet // fieldalignment not critical for models
	Comment
	AuthorName string `db:"author_name" json:"authorName"`
}
