// Package account is a small account directory kept in the key-value store
// under "accounts", with the logged-in account under "currentAccount".
// Secrets are stored as bcrypt hashes and never in plain text.
package account

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexandro/codestudio-mcp/kv"
	"golang.org/x/crypto/bcrypt"
)

// Storage keys.
const (
	AccountsKey = "accounts"
	CurrentKey  = "currentAccount"
)

// maxSecretLen is the longest secret bcrypt accepts.
const maxSecretLen = 72

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
)

// Account is one registered user. SecretHash is omitted from the
// currentAccount record.
type Account struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	SecretHash string    `json:"secretHash,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// public returns a copy without the credential hash.
func (a Account) public() Account {
	a.SecretHash = ""
	return a
}

// Service registers and authenticates accounts against a kv.Store.
type Service struct {
	mu     sync.Mutex
	store  kv.Store
	logger *slog.Logger
	cost   int
	now    func() time.Time
}

// NewService creates an account service over store.
func NewService(store kv.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		cost:   bcrypt.DefaultCost,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Register creates an account and logs it in. All fields are required and
// emails are unique (case-insensitive).
func (s *Service) Register(email, username, secret string) (Account, error) {
	email = normalizeEmail(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" || secret == "" {
		return Account{}, fmt.Errorf("%w: email, username and secret are required", ErrValidation)
	}
	if len(secret) > maxSecretLen {
		return Account{}, fmt.Errorf("%w: secret must be at most %d bytes", ErrValidation, maxSecretLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return Account{}, err
	}
	for _, existing := range accounts {
		if existing.Email == email {
			return Account{}, fmt.Errorf("register %s: %w", email, ErrAccountExists)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return Account{}, fmt.Errorf("hashing secret: %w", err)
	}
	acc := Account{
		ID:         uuid.NewString(),
		Email:      email,
		Username:   username,
		SecretHash: string(hash),
		CreatedAt:  s.now(),
	}
	accounts = append(accounts, acc)
	if err := s.writeJSON(AccountsKey, accounts); err != nil {
		return Account{}, err
	}
	if err := s.writeJSON(CurrentKey, acc.public()); err != nil {
		return Account{}, err
	}

	s.logger.Info("account registered", "email", email, "id", acc.ID)
	return acc.public(), nil
}

// Login checks email and secret and records the account as current.
func (s *Service) Login(email, secret string) (Account, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return Account{}, err
	}
	for _, acc := range accounts {
		if acc.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(acc.SecretHash), []byte(secret)); err != nil {
			break
		}
		if err := s.writeJSON(CurrentKey, acc.public()); err != nil {
			return Account{}, err
		}
		s.logger.Info("account logged in", "email", email)
		return acc.public(), nil
	}

	s.logger.Debug("login rejected", "email", email)
	return Account{}, ErrInvalidCredentials
}

// Logout clears the current account. Logging out with nobody logged in is a no-op.
func (s *Service) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(CurrentKey); err != nil {
		return fmt.Errorf("removing %s: %w", CurrentKey, err)
	}
	return nil
}

// Current returns the logged-in account, if any.
func (s *Service) Current() (Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(CurrentKey)
	if err != nil {
		return Account{}, false, fmt.Errorf("reading %s: %w", CurrentKey, err)
	}
	if !ok {
		return Account{}, false, nil
	}
	var acc Account
	if err := json.Unmarshal([]byte(raw), &acc); err != nil {
		return Account{}, false, fmt.Errorf("decoding %s: %w", CurrentKey, err)
	}
	return acc, true, nil
}

// ExistsByEmail reports whether an account with email is registered.
func (s *Service) ExistsByEmail(email string) (bool, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return false, err
	}
	for _, acc := range accounts {
		if acc.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) readAccounts() ([]Account, error) {
	raw, ok, err := s.store.Get(AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", AccountsKey, err)
	}
	if !ok {
		return nil, nil
	}
	var accounts []Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", AccountsKey, err)
	}
	return accounts, nil
}

func (s *Service) writeJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.store.Set(key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
