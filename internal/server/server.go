// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the configuration, database, services and routes
// into a running HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/ruangtekno/backend/internal/config"
	"github.com/ruangtekno/backend/internal/database"
	"github.com/ruangtekno/backend/internal/handlers"
	"github.com/ruangtekno/backend/internal/middleware"
	"github.com/ruangtekno/backend/internal/repository"
	"github.com/ruangtekno/backend/internal/services/account"
	"github.com/ruangtekno/backend/internal/services/email"
	"github.com/ruangtekno/backend/internal/services/recommend"
	"github.com/ruangtekno/backend/internal/services/token"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	if cfg.Auth.AccessSecret == "" || cfg.Auth.RefreshSecret == "" || cfg.Auth.ResetSecret == "" {
		return errors.New("auth secrets must be configured")
	}

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// Repository
	repo := repository.New(db)

	// Services
	authority := token.New(repo, token.Config{
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
		ResetSecret:   []byte(cfg.Auth.ResetSecret),
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})

	mailer, err := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to set up mailer: %w", err)
	}

	accounts := account.NewService(repo, authority, mailer)
	recommender := recommend.NewService(repo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	setupMiddleware(e, cfg)

	// Routes
	setupRoutes(e, repo, accounts, authority, recommender)

	// Start server
	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(
	e *echo.Echo,
	repo *repository.Repository,
	accounts *account.Service,
	authority *token.Authority,
	recommender *recommend.Service,
) {
	h := handlers.New(repo, accounts, authority, recommender)

	requireAuth := middleware.RequireAuth(authority)
	optionalAuth := middleware.OptionalAuth(authority)

	e.GET("/health", h.Health)

	// Account lifecycle
	auth := e.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/verify-otp", h.VerifyOTP)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password/:token", h.ResetPassword)
	auth.GET("/validate", h.ValidateLogin, requireAuth)
	auth.POST("/logout", h.Logout, requireAuth)

	// Users
	users := e.Group("/users", requireAuth)
	users.GET("", h.ListUsers)
	users.GET("/me", h.GetMe)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	// Posts
	posts := e.Group("/posts")
	posts.GET("", h.ListPosts)
	posts.GET("/:postId", h.GetPost)
	posts.GET("/:postId/detail", h.GetPostDetail)
	posts.GET("/:postId/hashtags", h.ListPostHashtags)
	posts.GET("/:postId/comments", h.ListComments)
	posts.GET("/search", h.SearchPosts, optionalAuth)
	posts.POST("/:postId/view", h.AddPostView, optionalAuth)

	posts.POST("", h.CreatePost, requireAuth)
	posts.POST("/with-hashtags", h.CreatePostWithHashtags, requireAuth)
	posts.GET("/feed", h.ListPostsWithUserState, requireAuth)
	posts.GET("/bookmarked", h.ListBookmarkedPosts, requireAuth)
	posts.GET("/recommended", h.RecommendPosts, requireAuth)
	posts.GET("/:postId/state", h.GetUserPostState, requireAuth)
	posts.PUT("/:postId", h.UpdatePost, requireAuth)
	posts.PUT("/:postId/with-hashtags", h.UpdatePostWithHashtags, requireAuth)
	posts.DELETE("/:postId", h.DeletePost, requireAuth)
	posts.POST("/:postId/vote", h.VotePost, requireAuth)
	posts.POST("/:postId/bookmark", h.ToggleBookmark, requireAuth)
	posts.POST("/:postId/hashtags", h.AddPostHashtag, requireAuth)
	posts.POST("/:postId/comments", h.CreateComment, requireAuth)

	// Comments
	comments := e.Group("/comments")
	comments.GET("/:commentId/replies", h.ListReplies)
	comments.DELETE("/:commentId", h.DeleteComment, requireAuth)

	// Hashtags
	hashtags := e.Group("/hashtags")
	hashtags.GET("", h.ListHashtags)
	hashtags.GET("/:hashtagId", h.GetHashtag)
	hashtags.POST("", h.CreateHashtag, requireAuth)

	// Discussions
	discussions := e.Group("/discussions")
	discussions.GET("", h.ListQuestions)
	discussions.GET("/:discussionId", h.GetDiscussion)
	discussions.GET("/:discussionId/answers", h.ListAnswers)
	discussions.POST("/:discussionId/view", h.AddDiscussionView)

	discussions.POST("", h.CreateDiscussion, requireAuth)
	discussions.GET("/feed", h.ListQuestionsWithUserState, requireAuth)
	discussions.GET("/mine", h.ListMyDiscussions, requireAuth)
	discussions.PUT("/:discussionId", h.UpdateDiscussion, requireAuth)
	discussions.DELETE("/:discussionId", h.DeleteDiscussion, requireAuth)
	discussions.POST("/:discussionId/vote", h.VoteDiscussion, requireAuth)
	discussions.POST("/:discussionId/hashtags", h.AddDiscussionHashtag, requireAuth)

	// Search history
	history := e.Group("/search-history", requireAuth)
	history.GET("", h.ListSearchHistory)
	history.DELETE("/:logId", h.DeleteSearchLog)
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
