// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware contains echo middleware for the API.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/auth"
	"github.com/ruangtekno/backend/internal/services/token"
)

const (
	// HeaderRefreshToken carries the client's refresh token.
	HeaderRefreshToken = "X-Refresh-Token"
	// HeaderNewAccessToken relays a rotated access token back to the client.
	HeaderNewAccessToken = "X-New-Access-Token"
)

// RequireAuth authenticates the bearer token ahead of protected handlers.
// When the access token is expired and a valid refresh token is present, the
// rotated access token is attached to the context and relayed via the
// X-New-Access-Token response header.
func RequireAuth(authority *token.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessToken := bearerToken(c.Request())
			if accessToken == "" {
				return errorJSON(c, http.StatusUnauthorized, "access denied, no token provided")
			}

			refreshToken := c.Request().Header.Get(HeaderRefreshToken)

			claims, rotated, err := authority.Authenticate(c.Request().Context(), accessToken, refreshToken)
			if err != nil {
				switch {
				case errors.Is(err, token.ErrMissingRefreshToken):
					return errorJSON(c, http.StatusBadRequest, "invalid token and no refresh token provided")
				case errors.Is(err, token.ErrInvalidRefreshToken):
					return errorJSON(c, http.StatusForbidden, "invalid refresh token")
				case errors.Is(err, token.ErrInvalidSession):
					return errorJSON(c, http.StatusUnauthorized, "session is no longer valid")
				default:
					return errorJSON(c, http.StatusInternalServerError, "internal server error")
				}
			}

			ctx := auth.SetClaims(c.Request().Context(), claims)
			if rotated != "" {
				ctx = auth.SetNewAccessToken(ctx, rotated)
				c.Response().Header().Set(HeaderNewAccessToken, rotated)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// OptionalAuth attaches claims when a valid bearer token is present but lets
// anonymous requests through. Used by endpoints like the post view counter
// that record extra state for known users.
func OptionalAuth(authority *token.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			accessToken := bearerToken(c.Request())
			if accessToken == "" {
				return next(c)
			}

			claims, rotated, err := authority.Authenticate(c.Request().Context(), accessToken,
				c.Request().Header.Get(HeaderRefreshToken))
			if err != nil {
				return next(c)
			}

			ctx := auth.SetClaims(c.Request().Context(), claims)
			if rotated != "" {
				ctx = auth.SetNewAccessToken(ctx, rotated)
				c.Response().Header().Set(HeaderNewAccessToken, rotated)
			}
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"status": "error", "message": message})
}
