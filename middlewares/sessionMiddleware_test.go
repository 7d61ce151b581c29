package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// A browser cannot drop an httpOnly cookie itself, so a session token the
// server no longer recognizes must not block the login endpoint.
func TestSessionMiddlewareStaleCookieStillReachesLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())

	loginRan := false
	r.POST("/api/login", func(c *gin.Context) {
		loginRan = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if !loginRan {
		t.Fatalf("login handler did not run; got status %d", w.Code)
	}
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	// The stale cookie must be cleared so the browser stops sending it.
	cleared := false
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("stale session cookie was not cleared: %v", w.Header().Values("Set-Cookie"))
	}
}

func TestRequireSessionRejectsStaleCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/api/tickets", RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tickets", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-token"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSessionMiddlewareUnknownHeaderTokenSetsNoCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware())
	r.GET("/api/auth/status", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.Header.Set("token", "stale-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected anonymous pass-through, got %d", w.Code)
	}
	for _, v := range w.Header().Values("Set-Cookie") {
		if strings.Contains(v, SessionCookieName) {
			t.Fatalf("header-channel token must not touch cookies: %s", v)
		}
	}
}
