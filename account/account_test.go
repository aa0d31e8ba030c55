package account

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lexandro/codestudio-mcp/kv"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) (*Service, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	svc := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.cost = bcrypt.MinCost
	return svc, store
}

func Test_Service_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register("a@b.com", "a", "s"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register("a@b.com", "a", "s")
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected ErrAccountExists, got %v", err)
	}

	_, err = svc.Register(" A@B.com ", "other", "x")
	if !errors.Is(err, ErrAccountExists) {
		t.Errorf("expected case-insensitive duplicate check, got %v", err)
	}
}

func Test_Service_RegisterValidation(t *testing.T) {
	svc, store := newTestService(t)

	tests := []struct {
		name, email, username, secret string
	}{
		{"empty email", "", "a", "s"},
		{"empty username", "a@b.com", " ", "s"},
		{"empty secret", "a@b.com", "a", ""},
		{"secret too long", "a@b.com", "a", strings.Repeat("s", 80)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.email, tt.username, tt.secret)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
	if store.Len() != 0 {
		t.Error("failed registrations must not write")
	}
}

func Test_Service_RegisterAcceptsMaxLengthSecret(t *testing.T) {
	svc, _ := newTestService(t)
	secret := strings.Repeat("s", 72)

	if _, err := svc.Register("a@b.com", "a", secret); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login("a@b.com", secret); err != nil {
		t.Errorf("login: %v", err)
	}
}

func Test_Service_RegisterLogsInAndHidesHash(t *testing.T) {
	svc, store := newTestService(t)

	acc, err := svc.Register("a@b.com", "a", "s")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acc.ID == "" || acc.SecretHash != "" {
		t.Errorf("unexpected returned account: %+v", acc)
	}

	current, ok, err := svc.Current()
	if err != nil || !ok {
		t.Fatalf("expected a current account, ok=%v err=%v", ok, err)
	}
	if current.ID != acc.ID || current.SecretHash != "" {
		t.Errorf("unexpected current account: %+v", current)
	}

	raw, _, _ := store.Get(AccountsKey)
	if strings.Contains(raw, `"s"`) {
		t.Error("secret must not be stored in plain text")
	}
}

func Test_Service_Login(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Register("a@b.com", "a", "s")
	svc.Logout()

	if _, err := svc.Login("a@b.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad secret, got %v", err)
	}
	if _, err := svc.Login("nobody@b.com", "s"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, ok, _ := svc.Current(); ok {
		t.Error("failed login must not set a current account")
	}

	acc, err := svc.Login("a@b.com", "s")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if acc.Username != "a" {
		t.Errorf("expected username a, got %s", acc.Username)
	}
	if _, ok, _ := svc.Current(); !ok {
		t.Error("expected a current account after login")
	}
}

func Test_Service_Logout(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Register("a@b.com", "a", "s")

	if err := svc.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok, _ := svc.Current(); ok {
		t.Error("expected no current account after logout")
	}
	if err := svc.Logout(); err != nil {
		t.Errorf("second logout should be a no-op, got %v", err)
	}

	exists, err := svc.ExistsByEmail("a@b.com")
	if err != nil || !exists {
		t.Errorf("logout must keep the account, exists=%v err=%v", exists, err)
	}
}

func Test_Service_CorruptAccounts(t *testing.T) {
	svc, store := newTestService(t)
	store.Set(AccountsKey, "not json")

	if _, err := svc.Register("a@b.com", "a", "s"); err == nil {
		t.Error("expected decode error")
	}
}
