package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	identityCookieName = "userId"
	identityContextKey = "userId"
	identityCookieTTL  = 10 * 365 * 24 * time.Hour
)

// identityMiddleware gives every client an anonymous, long-lived user ID.
// It is the identity the per-person ticket quota is counted against.
func identityMiddleware(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(identityCookieName)
			if err == nil && cookie.Value != "" {
				c.Set(identityContextKey, cookie.Value)
				return next(c)
			}

			userID := uuid.NewString()
			c.SetCookie(&http.Cookie{
				Name:     identityCookieName,
				Value:    userID,
				Path:     "/",
				Expires:  time.Now().Add(identityCookieTTL),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteStrictMode,
			})
			c.Set(identityContextKey, userID)

			return next(c)
		}
	}
}

func userIDFromContext(c echo.Context) string {
	userID, _ := c.Get(identityContextKey).(string)
	return userID
}
