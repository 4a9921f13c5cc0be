package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realganganadul/gingin-backend/internal/auth"
	"github.com/realganganadul/gingin-backend/internal/session"
)

func newService() (*auth.Service, session.Store) {
	store := session.NewMemoryStore(time.Hour)
	return auth.NewService("admin", "hunter2", store), store
}

func TestLoginSuccess(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	id, err := svc.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if id == "" {
		t.Fatal("expected session id")
	}
	if role := store.Resolve(ctx, id); role != session.RoleAdmin {
		t.Fatalf("expected admin session, got %q", role)
	}
}

func TestLoginRejectsEitherWrongField(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, wrongPass := svc.Login(ctx, "admin", "wrong")
	_, wrongUser := svc.Login(ctx, "intruder", "hunter2")

	if !errors.Is(wrongPass, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", wrongPass)
	}
	// Wrong username and wrong password are indistinguishable.
	if !errors.Is(wrongUser, auth.ErrInvalidCredentials) {
		t.Fatalf("wrong username: got %v", wrongUser)
	}
	if wrongPass.Error() != wrongUser.Error() {
		t.Fatal("error text must not reveal which field was wrong")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, store := newService()
	ctx := context.Background()

	id, err := svc.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}

	svc.Logout(ctx, id)
	if store.Resolve(ctx, id) != session.RoleNone {
		t.Fatal("expected session revoked")
	}

	// Logging out again, or with no session at all, must not blow up.
	svc.Logout(ctx, id)
	svc.Logout(ctx, "")
}

func TestIsLoggedIn(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if svc.IsLoggedIn(ctx, "") || svc.IsLoggedIn(ctx, "bogus") {
		t.Fatal("expected logged out")
	}

	id, err := svc.Login(ctx, "admin", "hunter2")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !svc.IsLoggedIn(ctx, id) {
		t.Fatal("expected logged in")
	}
}

func TestConfigured(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)

	if auth.NewService("", "pw", store).Configured() {
		t.Fatal("missing username must not be configured")
	}
	if auth.NewService("admin", "", store).Configured() {
		t.Fatal("missing password must not be configured")
	}
	if auth.NewService("admin", "pw", nil).Configured() {
		t.Fatal("missing store must not be configured")
	}
	if !auth.NewService("admin", "pw", store).Configured() {
		t.Fatal("expected configured")
	}
}
