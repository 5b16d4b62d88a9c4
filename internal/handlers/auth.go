package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pawel3ala/wavestone/internal/hash"
	"github.com/pawel3ala/wavestone/internal/logging"
	"github.com/pawel3ala/wavestone/internal/mykafka"
	"github.com/pawel3ala/wavestone/internal/store"
	"github.com/pawel3ala/wavestone/internal/token"
	"github.com/pawel3ala/wavestone/internal/transport"
	"github.com/pawel3ala/wavestone/internal/validate"
)

type AuthHandler struct {
	Store     *store.Store
	JWTSecret []byte
	Producer  *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_error", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if errs := validate.Credentials(req); len(errs) > 0 {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return c.JSON(http.StatusBadRequest, transport.ErrorsResponse{Errors: errs})
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot hash password")
	}

	user, err := h.Store.CreateUser(ctx, req.Username, pwHash)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			l.Warn("register_failed", "status", 400, "reason", "username taken", "username", req.Username)
			return c.JSON(http.StatusBadRequest, transport.MessageResponse{Message: "User already exists."})
		}
		l.Error("register_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create user")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "userID", user.ID)
	return c.JSON(http.StatusCreated, transport.MessageResponse{Message: "User created successfully"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Store.UserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Warn("login_failed", "status", 404, "reason", "unknown user")
			return c.JSON(http.StatusNotFound, transport.LoginResponse{
				Auth: false, Token: nil, Message: "User not found.",
			})
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot look up user")
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "userID", user.ID)
		return c.JSON(http.StatusUnauthorized, transport.LoginResponse{
			Auth: false, Token: nil, Message: "Invalid password.",
		})
	}

	signed, err := token.Sign(user.ID, h.JWTSecret)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot sign token")
	}

	h.publish(c, fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_success", "userID", user.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{Auth: true, Token: &signed})
}
