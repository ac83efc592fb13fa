package handler

import (
	"errors"
	"testing"

	"github.com/taskhub/records-api/internal/core/domain"
)

func validationFields(t *testing.T, err error) map[string]domain.FieldError {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	byField := make(map[string]domain.FieldError, len(ve.Fields))
	for _, f := range ve.Fields {
		byField[f.Field] = f
	}
	return byField
}

func TestValidator_ReportsEveryFailingField(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&contactRequest{
		FirstName: "",            // required
		LastName:  "Doe",
		Email:     "not-an-email",
		Phone:     "abc",         // fails phone pattern
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}

	fields := validationFields(t, err)
	if len(fields) != 3 {
		t.Fatalf("expected 3 failing fields, got %d: %v", len(fields), fields)
	}
	for _, want := range []string{"firstName", "email", "phone"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing field error for %q", want)
		}
	}
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&contactRequest{
		LastName: "Doe",
		Email:    "jane@example.com",
		Phone:    "+1 555 0100",
	})
	fields := validationFields(t, err)

	fe, ok := fields["firstName"]
	if !ok {
		t.Fatal("expected the json name firstName, not the Go field name")
	}
	if fe.Message != "firstName is required" {
		t.Errorf("unexpected message: %q", fe.Message)
	}
}

func TestValidator_PhoneRule(t *testing.T) {
	v := NewValidator()

	valid := []string{"+1 555 0100", "555-0100", "(55) 1234-5678", "5550100"}
	for _, p := range valid {
		err := v.Validate(&contactRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: p,
		})
		if err != nil {
			t.Errorf("phone %q should be valid: %v", p, err)
		}
	}

	invalid := []string{"abc", "12345", "555#0100"}
	for _, p := range invalid {
		err := v.Validate(&contactRequest{
			FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: p,
		})
		if err == nil {
			t.Errorf("phone %q should be rejected", p)
		}
	}
}

func TestValidator_PasswordRule(t *testing.T) {
	v := NewValidator()

	base := userRequest{Name: "Jane", Email: "jane@example.com", Age: 30}

	base.Password = "Passw0rd"
	if err := v.Validate(&base); err != nil {
		t.Errorf("compliant password rejected: %v", err)
	}

	for _, pw := range []string{"alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		base.Password = pw
		if err := v.Validate(&base); err == nil {
			t.Errorf("password %q should be rejected", pw)
		}
	}
}

func TestValidator_PasswordValueNeverEchoed(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&userRequest{
		Name: "Jane", Email: "jane@example.com", Age: 30, Password: "tooweak",
	})
	fields := validationFields(t, err)

	fe, ok := fields["password"]
	if !ok {
		t.Fatal("expected a password field error")
	}
	if fe.Value != nil {
		t.Errorf("password value must not be echoed back, got %v", fe.Value)
	}
}

func TestValidator_PatchSkipsAbsentFields(t *testing.T) {
	v := NewValidator()

	// A zero patch has nothing to validate.
	if err := v.Validate(&contactPatch{}); err != nil {
		t.Fatalf("empty patch must pass: %v", err)
	}

	bad := "nope"
	err := v.Validate(&contactPatch{Email: &bad})
	fields := validationFields(t, err)
	if _, ok := fields["email"]; !ok {
		t.Error("present invalid field must still fail")
	}
}

func TestValidator_CategoryOneOf(t *testing.T) {
	v := NewValidator()

	req := postRequest{Title: "T", Content: "c", Category: "Gardening"}
	err := v.Validate(&req)
	fields := validationFields(t, err)
	fe, ok := fields["category"]
	if !ok {
		t.Fatal("expected category error")
	}
	if fe.Message == "" {
		t.Error("category error needs a message")
	}

	req.Category = "Travel"
	if err := v.Validate(&req); err != nil {
		t.Errorf("valid category rejected: %v", err)
	}
}
