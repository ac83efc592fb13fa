package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhub/records-api/internal/core/domain"
	"github.com/taskhub/records-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub user store
// ---------------------------------------------------------------------------

type stubUserStore struct {
	byEmail map[string]*domain.User
	findErr error // if set, FindByUniqueKey returns this error
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{byEmail: make(map[string]*domain.User)}
}

func (s *stubUserStore) Create(_ context.Context, u *domain.User) error {
	s.byEmail[strings.ToLower(u.Email)] = u.Clone()
	return nil
}

func (s *stubUserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) FindAll(_ context.Context, _ ports.ListQuery) ([]*domain.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserStore) Update(_ context.Context, u *domain.User) error {
	s.byEmail[strings.ToLower(u.Email)] = u.Clone()
	return nil
}

func (s *stubUserStore) DeleteByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrNotFound
}

func (s *stubUserStore) FindByUniqueKey(_ context.Context, key string) (*domain.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *stubUserStore) Count(_ context.Context, _ string) (int64, error) {
	return int64(len(s.byEmail)), nil
}

func seedUser(t *testing.T, store *stubUserStore, email, password, role string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &domain.User{
		Meta:         domain.Meta{ID: "user_1", CreatedAt: time.Now().UTC()},
		Name:         "Jane",
		Email:        email,
		Age:          30,
		Role:         role,
		PasswordHash: hash,
	}
	if err := store.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_Success(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "jane@example.com", "Passw0rd", domain.RoleUser)
	svc := NewAuthService(store, "secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "jane@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}
	if user.Email != "jane@example.com" {
		t.Errorf("wrong user returned: %q", user.Email)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "jane@example.com", "Passw0rd", domain.RoleAdmin)
	svc := NewAuthService(store, "secret", time.Hour)

	token, _, err := svc.Login(context.Background(), "jane@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["user_id"] != "user_1" {
		t.Errorf("user_id claim: expected user_1, got %v", claims["user_id"])
	}
	if claims["role"] != domain.RoleAdmin {
		t.Errorf("role claim: expected admin, got %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("exp claim missing")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "jane@example.com", "Passw0rd", domain.RoleUser)
	svc := NewAuthService(store, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "Passw0rd")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email must look identical to a bad password, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	store := newStubUserStore()
	svc := NewAuthService(store, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.c", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreErrorPropagates(t *testing.T) {
	store := newStubUserStore()
	store.findErr = errors.New("db unavailable")
	svc := NewAuthService(store, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "Passw0rd")
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatal("infrastructure failures must not masquerade as bad credentials")
	}
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestAuthService_Login_CaseInsensitiveEmail(t *testing.T) {
	store := newStubUserStore()
	seedUser(t, store, "jane@example.com", "Passw0rd", domain.RoleUser)
	svc := NewAuthService(store, "secret", time.Hour)

	_, _, err := svc.Login(context.Background(), "JANE@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("email lookup must be case-insensitive: %v", err)
	}
}

// ---------------------------------------------------------------------------
// HashPassword
// ---------------------------------------------------------------------------

func TestHashPassword_NeverPlaintext(t *testing.T) {
	hash, err := HashPassword("Passw0rd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "Passw0rd" || strings.Contains(hash, "Passw0rd") {
		t.Error("hash must not contain the plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", hash)
	}
}
