// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers of the forum API.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/services/account"
	"github.com/ruangtekno/backend/internal/services/recommend"
	"github.com/ruangtekno/backend/internal/services/token"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo        *repository.Repository
	accounts    *account.Service
	authority   *token.Authority
	recommender *recommend.Service
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, accounts *account.Service, authority *token.Authority, recommender *recommend.Service) *Handlers {
	return &Handlers{
		repo:        repo,
		accounts:    accounts,
		authority:   authority,
		recommender: recommender,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
