package jwtmiddleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pawel3ala/wavestone/internal/logging"
	"github.com/pawel3ala/wavestone/internal/token"
)

// ContextUserID is the echo context key carrying the authenticated user id.
const ContextUserID = "userID"

// RequireToken guards the product routes. The header value is split on the
// first space and the remainder is verified; a missing header is 401, any
// verification failure is 500 "Failed to authenticate token." — that status
// is part of the published contract and is kept as-is.
func RequireToken(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"auth":    false,
					"message": "No token provided.",
				})
			}

			var raw string
			if _, after, found := strings.Cut(header, " "); found {
				raw = after
			}

			claims, err := token.Parse(raw, secret)
			if err != nil {
				logging.FromContext(c.Request().Context()).Warn("token_verify_failed", "error", err)
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"auth":    false,
					"message": "Failed to authenticate token.",
				})
			}

			c.Set(ContextUserID, claims.UserID)
			return next(c)
		}
	}
}
