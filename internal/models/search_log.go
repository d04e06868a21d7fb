// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// SearchLog records a search a user performed. Recent entries feed the
// article recommender.
type SearchLog struct { //nolint:govet // fieldalignment not critical for models
	LogID      int64     `db:"log_id" json:"logId"`
	UserID     int64     `db:"user_id" json:"userId"`
	Query      string    `db:"query" json:"searchQuery"`
	SearchedAt time.Time `db:"searched_at" json:"searchDate"`
}
