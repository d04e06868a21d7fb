// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package ctxkeys defines typed context keys used across packages.
package ctxkeys

// Claims is the context key for the authenticated token claims.
type Claims struct{}

// NewAccessToken is the context key for an access token minted by silent
// rotation during the current request.
type NewAccessToken struct{}
