package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := auth.NewIssuer("secret", time.Hour)
	client, _ := issuer.Issue(&models.User{ID: "u1", Email: "c@example.com", Role: models.RoleClient})
	admin, _ := issuer.Issue(&models.User{ID: "a1", Email: "a@example.com", Role: models.RoleAdmin})

	r := gin.New()
	r.GET("/me", AuthMiddleware(issuer), func(c *gin.Context) {
		c.String(http.StatusOK, IdentityFrom(c).UserID)
	})
	r.GET("/admin", AuthMiddleware(issuer), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/me", "", http.StatusUnauthorized},
		{"not bearer", "/me", "Basic abc", http.StatusUnauthorized},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"client", "/me", "Bearer " + client, http.StatusOK},
		{"client on admin route", "/admin", "Bearer " + client, http.StatusForbidden},
		{"admin", "/admin", "Bearer " + admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := map[string]string{}
			if tt.header != "" {
				h["Authorization"] = tt.header
			}
			w := do(r, http.MethodGet, tt.path, h)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d (%s)", tt.status, w.Code, w.Body.String())
			}
		})
	}

	w := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + client})
	if w.Body.String() != "u1" {
		t.Fatalf("expected identity on context, got %q", w.Body.String())
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://registrar.example"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/x", map[string]string{"Origin": "https://registrar.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://registrar.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	w = do(r, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin must not be allowed, got %q", got)
	}

	w = do(r, http.MethodOptions, "/x", map[string]string{"Origin": "https://registrar.example"})
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on preflight, got %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodPost, "/login", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := do(r, http.MethodPost, "/login", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
}

func TestRecoveryAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestLogger(log), Recovery(log))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/panic", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("recovered from panic")) ||
		!bytes.Contains(buf.Bytes(), []byte(`"status":500`)) {
		t.Fatalf("expected panic and request lines, got %s", buf.String())
	}
}
