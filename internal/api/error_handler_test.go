package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/records-api/internal/core/domain"
)

func handleError(t *testing.T, err error, env string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHTTPErrorHandler(zerolog.Nop(), env)
	h(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v\n%s", err, rec.Body.String())
	}
	return rec, body
}

func TestErrorHandler_ValidationError(t *testing.T) {
	err := &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "email", Message: "email must be a valid email address", Value: "nope"},
		{Field: "phone", Message: "phone must be a valid phone number"},
	}}

	rec, body := handleError(t, err, "production")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["success"] != false {
		t.Error("success must be false")
	}
	fields, ok := body["errors"].([]any)
	if !ok {
		t.Fatal("errors array missing")
	}
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(fields))
	}
	first := fields[0].(map[string]any)
	if first["field"] != "email" {
		t.Errorf("expected field email, got %v", first["field"])
	}
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
	}{
		{fmt.Errorf("no contact exists with ID %q: %w", "x", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("a contact with this email already exists: %w", domain.ErrConflict), http.StatusConflict},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrUnauthenticated, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		rec, body := handleError(t, tc.err, "production")
		if rec.Code != tc.wantCode {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.wantCode, rec.Code)
		}
		if body["success"] != false {
			t.Errorf("%v: success must be false", tc.err)
		}
		if body["error"] == "" || body["error"] == nil {
			t.Errorf("%v: error string missing", tc.err)
		}
	}
}

func TestErrorHandler_NotFoundIncludesID(t *testing.T) {
	err := fmt.Errorf("no contact exists with ID %q: %w", "abc123", domain.ErrNotFound)
	_, body := handleError(t, err, "production")

	if got := body["error"].(string); !strings.Contains(got, "abc123") {
		t.Errorf("error should include the id: %q", got)
	}
}

func TestErrorHandler_ForbiddenHidesDetail(t *testing.T) {
	rec, body := handleError(t, domain.ErrForbidden, "production")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if body["error"] != "Not authorized" {
		t.Errorf("expected fixed message, got %v", body["error"])
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	rec, body := handleError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "production")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body["error"] != "invalid payload" {
		t.Errorf("expected passthrough message, got %v", body["error"])
	}
}

func TestErrorHandler_UnexpectedErrorHiddenInProduction(t *testing.T) {
	cause := errors.New("connection refused to 10.0.0.5:27017")

	rec, body := handleError(t, cause, "production")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(body["error"].(string), "10.0.0.5") {
		t.Error("internal detail must not leak in production")
	}

	_, devBody := handleError(t, cause, "development")
	if !strings.Contains(devBody["error"].(string), "connection refused") {
		t.Error("development mode should expose the cause")
	}
}
