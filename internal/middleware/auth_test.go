package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/licitacoes-backend/internal/auth"
	"github.com/gofiber/fiber/v2"
)

func TestJWTProtected(t *testing.T) {
	issuer, err := auth.NewTokenIssuer("middleware-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	app := fiber.New()
	app.Get("/me", JWTProtected(issuer), func(c *fiber.Ctx) error {
		return c.SendString(Username(c))
	})

	valid, _, err := issuer.Issue("admin", time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other, _ := auth.NewTokenIssuer("other-secret")
	forged, _, _ := other.Issue("admin", time.Minute)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"forged", "Bearer " + forged, http.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestJWTProtectedExpired(t *testing.T) {
	issuer, _ := auth.NewTokenIssuer("middleware-secret")
	issuer.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, _, err := issuer.Issue("admin", 30*time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	issuer.Now = time.Now

	app := fiber.New()
	app.Get("/me", JWTProtected(issuer), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+stale)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}
