// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Hashtag is a content label shared by posts and discussions.
type Hashtag struct { //nolint:govet // fieldalignment not critical for models
	HashtagID int64     `db:"hashtag_id" json:"hashtagId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
