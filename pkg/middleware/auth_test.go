package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	handler := Auth(func(string) (*Claims, error) {
		t.Fatal("validator should not be called")
		return nil, nil
	})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/turnos", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestAuth_MalformedHeader(t *testing.T) {
	handler := Auth(func(string) (*Claims, error) {
		return &Claims{AdminID: "1"}, nil
	})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turnos", nil)
	req.Header.Set("Authorization", "Token abc123")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	handler := Auth(func(string) (*Claims, error) {
		return nil, fmt.Errorf("token expired")
	})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turnos", nil)
	req.Header.Set("Authorization", "Bearer expired.token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	var gotAdminID, gotRole string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdminID = AdminIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(func(token string) (*Claims, error) {
		assert.Equal(t, "good.token", token)
		return &Claims{AdminID: "42", Username: "quino", Role: "admin"}, nil
	})(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/turnos", nil)
	req.Header.Set("Authorization", "Bearer good.token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", gotAdminID)
	assert.Equal(t, "admin", gotRole)
}

func TestRequireRole(t *testing.T) {
	handler := Auth(func(string) (*Claims, error) {
		return &Claims{AdminID: "7", Role: "viewer"}, nil
	})(RequireRole("admin")(okHandler()))

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/suscriptores/1", nil)
	req.Header.Set("Authorization", "Bearer viewer.token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "FORBIDDEN")
}
