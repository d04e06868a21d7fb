// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// Discussion is a Q&A thread entry. A row with a null AnswerTo is a
// question; otherwise it is an answer to the referenced discussion.
type Discussion struct { //nolint:govet // fieldalignment not critical for models
	DiscussionID int64         `db:"discussion_id" json:"discussionId"`
	UserID       int64         `db:"user_id" json:"userId"`
	AnswerTo     sql.NullInt64 `db:"answer_to" json:"answerTo"`
	Title        string        `db:"title" json:"title"`
	Content      string        `db:"content" json:"content"`
	Views        int64         `db:"views" json:"views"`
	Votes        int64         `db:"votes" json:"votes"`
	CreatedAt    time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updatedAt"`
}

// DiscussionDetail joins a discussion with its author, hashtag names and
// answer count.
type DiscussionDetail struct { //nolint:govet // fieldalignment not critical for models
	Discussion
	AuthorName  string         `db:"author_name" json:"authorName"`
	Hashtags    sql.NullString `db:"hashtags" json:"hashtags"`
	AnswerCount int64          `db:"answer_count" json:"answerCount"`
}

// UserDiscussion is the per-user state of a discussion.
type UserDiscussion struct { //nolint:govet // fieldalignment not critical for models
	UserID       int64 `db:"user_id" json:"userId"`
	DiscussionID int64 `db:"discussion_id" json:"discussionId"`
	UserVote     int64 `db:"user_vote" json:"userVote"`
	UserViews    int64 `db:"user_views" json:"userViews"`
	IsBookmarked int64 `db:"is_bookmarked" json:"isBookmarked"`
}

// DiscussionWithUserState is a discussion detail joined with the requesting
// user's state row.
type DiscussionWithUserState struct { //nolint:govet // fieldalignment not critical for models
	DiscussionDetail
	UserVote     int64 `db:"user_vote" json:"userVote"`
	UserViews    int64 `db:"user_views" json:"userViews"`
	IsBookmarked int64 `db:"is_bookmarked" json:"isBookmarked"`
}
