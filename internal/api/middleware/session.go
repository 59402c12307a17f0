package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/geodonnees/admin-console/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the operator token, the
// only client-persisted state the console has.
const SessionCookie = "console_session"

// Session guards the protected screens. A missing or invalid token redirects
// to the login screen; a valid one injects the operator name into context.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			operator, err := auth.Verify(cookie.Value)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set("operator", operator)
			return next(c)
		}
	}
}
