package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/items-api/internal/apperr"
	"github.com/iliyamo/items-api/internal/auth"
	"github.com/iliyamo/items-api/internal/config"
	"github.com/iliyamo/items-api/internal/middleware"
	"github.com/iliyamo/items-api/internal/model"
	"github.com/iliyamo/items-api/internal/queue"
	"github.com/iliyamo/items-api/internal/repository"
	"github.com/iliyamo/items-api/internal/task"
)

const minPasswordLen = 8

// UserStore is the auth handlers' view of user persistence.
type UserStore interface {
	Create(ctx context.Context, username, email, passwordHash string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
}

// AuditSink receives audit events after the response is committed.
type AuditSink interface {
	Publish(ctx context.Context, event queue.AuditEvent) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens *auth.TokenService
	Runner *task.Runner
	Tasks  *task.Tasks
	Audit  AuditSink
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens *auth.TokenService,
	runner *task.Runner, tasks *task.Tasks, audit AuditSink) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens, Runner: runner, Tasks: tasks, Audit: audit}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResp struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func toUserResp(u model.User) userResp {
	return userResp{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// Register creates a new account. The response echoes username and
// email but never the password hash. Duplicate username/email surface
// as 409 with distinct codes.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperr.Validation("username, email and password are required")
	}
	if !strings.Contains(req.Email, "@") {
		return apperr.Validation("email is not a valid address")
	}
	if len(req.Password) < minPasswordLen {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return apperr.UsernameExists()
		case errors.Is(err, repository.ErrEmailExists):
			return apperr.EmailExists()
		}
		return err
	}

	// Tasks enqueue only once the response is committed; JSON returns
	// after the write.
	if err := c.JSON(http.StatusCreated, toUserResp(u)); err != nil {
		return err
	}
	h.Runner.Go("welcome_email", func(ctx context.Context) error {
		return h.Tasks.SendWelcomeEmail(ctx, u.Email, u.Username)
	})
	h.audit(u.Username, "REGISTER", "email: "+u.Email)
	return nil
}

// Login verifies credentials and returns a bearer token. Unknown
// usernames and wrong passwords produce the identical 401 so the
// response does not reveal which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return apperr.BadRequest("Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperr.InvalidCredentials()
		}
		return err
	}
	ok, err := auth.VerifyPassword(u.PasswordHash, req.Password)
	if err != nil {
		// Stored hash unreadable: a server-side data problem, not a
		// client mistake.
		return err
	}
	if !ok {
		return apperr.InvalidCredentials()
	}

	token, err := h.Tokens.Issue(u.Username, time.Duration(h.Cfg.AccessTTLMin)*time.Minute)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, tokenResp{AccessToken: token, TokenType: "bearer"}); err != nil {
		return err
	}
	h.audit(u.Username, "LOGIN", "successful authentication")
	return nil
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c echo.Context) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.MissingCredentials()
	}
	return c.JSON(http.StatusOK, toUserResp(u))
}

// audit schedules the audit-trail task and the broker event without
// blocking the response.
func (h *AuthHandler) audit(username, action, details string) {
	h.Runner.Go("audit", func(ctx context.Context) error {
		if err := h.Tasks.LogUserAction(ctx, username, action, details); err != nil {
			return err
		}
		if h.Audit == nil {
			return nil
		}
		return h.Audit.Publish(ctx, queue.AuditEvent{
			Username:   username,
			Action:     action,
			Details:    details,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	})
}
