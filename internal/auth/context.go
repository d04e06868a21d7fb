// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth provides authentication context helpers.
package auth

import (
	"context"

	"github.com/ruangtekno/backend/internal/ctxkeys"
	"github.com/ruangtekno/backend/internal/services/token"
)

// SetClaims stores the authenticated claims in the context.
func SetClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ctxkeys.Claims{}, claims)
}

// GetClaims returns the authenticated claims, or nil when the request is
// anonymous.
func GetClaims(ctx context.Context) *token.Claims {
	if claims, ok := ctx.Value(ctxkeys.Claims{}).(*token.Claims); ok {
		return claims
	}
	return nil
}

// IsAuthenticated returns true if the context has authenticated claims.
func IsAuthenticated(ctx context.Context) bool {
	return GetClaims(ctx) != nil
}

// SetNewAccessToken stores a rotated access token in the context.
func SetNewAccessToken(ctx context.Context, accessToken string) context.Context {
	return context.WithValue(ctx, ctxkeys.NewAccessToken{}, accessToken)
}

// NewAccessToken returns the access token minted by silent rotation during
// this request, or "" when no rotation occurred.
func NewAccessToken(ctx context.Context) string {
	if t, ok := ctx.Value(ctxkeys.NewAccessToken{}).(string); ok {
		return t
	}
	return ""
}
