package middlewares

import (
	"context"
	"net/http"
	"os"
	"strings"

	"bitbucket.org/mmdatafocus/servicedesk_backend/config"
	"bitbucket.org/mmdatafocus/servicedesk_backend/utils"
	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the server-side session token.
const SessionCookieName = "session_token"

// SecureCookies reports whether session cookies should carry the Secure flag.
func SecureCookies() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production")
}

// SessionMiddleware resolves the session token (cookie first, "token" header
// as fallback for non-browser clients) into a username on the request
// context. Requests without a token pass through anonymously. A token Redis
// no longer knows also passes through anonymously; the cookie is httpOnly, so
// the server must clear it here or a browser holding an expired or revoked
// session could never reach the login endpoint again.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		fromCookie := err == nil && token != ""
		if !fromCookie {
			token = c.Request.Header.Get("token")
		}
		if token == "" {
			c.Next()
			return
		}
		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			if fromCookie {
				c.SetCookie(SessionCookieName, "", -1, "/", "", SecureCookies(), true)
			}
			c.Next()
			return
		}

		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyToken, token)
		ctx = context.WithValue(ctx, utils.ContextKeyUsername, username)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireSession rejects requests that did not resolve to a logged-in user.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUsernameFromContext(c.Request.Context()); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
