package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/records-api/internal/core/domain"
)

func rbacContext(role string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}
	return c
}

func TestRBAC_AllowedRole(t *testing.T) {
	c := rbacContext("admin")

	called := false
	mw := RBAC("admin")
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next not called for allowed role")
	}
}

func TestRBAC_DeniedRole(t *testing.T) {
	c := rbacContext("user")

	mw := RBAC("admin")
	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_MissingRole(t *testing.T) {
	c := rbacContext("")

	mw := RBAC("admin")
	handler := mw(func(c echo.Context) error {
		t.Fatal("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRBAC_MultipleRoles(t *testing.T) {
	mw := RBAC("admin", "user")

	for _, role := range []string{"admin", "user"} {
		c := rbacContext(role)
		called := false
		handler := mw(func(c echo.Context) error {
			called = true
			return nil
		})
		if err := handler(c); err != nil {
			t.Fatalf("role %q: %v", role, err)
		}
		if !called {
			t.Fatalf("role %q: next not called", role)
		}
	}
}
