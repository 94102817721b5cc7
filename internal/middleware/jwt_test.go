package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Visheshvd/playarena/internal/model"
	"github.com/Visheshvd/playarena/internal/utils"
)

const testSecret = "test-secret"

func buildTestApp() *echo.Echo {
	e := echo.New()
	g := e.Group("/v1/admin")
	g.Use(JWTAuth(testSecret))
	g.Use(RequireRole(model.RoleAdmin))
	g.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, 1, role, 5)
	if err != nil {
		t.Fatal(err)
	}
	return tok.Token
}

func TestAdminRouteRejectsMissingToken(t *testing.T) {
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}
}

func TestAdminRouteRejectsGarbageToken(t *testing.T) {
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestAdminRouteRejectsCustomerRole(t *testing.T) {
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleCustomer))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("customer role: status = %d, want 403", rec.Code)
	}
}

func TestAdminRouteAllowsAdmin(t *testing.T) {
	e := buildTestApp()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, model.RoleAdmin))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin role: status = %d, want 200", rec.Code)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	e := buildTestApp()
	tok, err := utils.NewAccessToken("other-secret", 1, model.RoleAdmin, 5)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: status = %d, want 401", rec.Code)
	}
}
