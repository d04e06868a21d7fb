// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import (
	"database/sql"
	"time"
)

// User is a registered account. OTPCode is only set between registration
// and verification.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID           int64          `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Email        string         `db:"email" json:"email"`
	PasswordHash string         `db:"password_hash" json:"-"`
	OTPCode      sql.NullString `db:"otp_code" json:"-"`
	IsVerified   int64          `db:"is_verified" json:"is_verified"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Verified reports whether the account completed OTP verification.
func (u *User) Verified() bool {
	return u.IsVerified != 0
}
