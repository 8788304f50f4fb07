package credentials

import (
	"context"
	"errors"
	"sync"

	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/zalando/go-keyring"
)

// DefaultService is the keyring service the secrets are stored under.
const DefaultService = "jh"

// Secret names.
const (
	KeyServer = "jira_server"
	KeyEmail  = "jira_email"
	KeyToken  = "jira_token"
)

// ErrNotFound is returned by a Store when the secret does not exist.
var ErrNotFound = errors.New("secret not found")

// Store keeps named secrets.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KeyringStore stores secrets in the operating system keyring.
type KeyringStore struct {
	service string
}

var _ Store = (*KeyringStore)(nil)

func NewKeyringStore(service string) *KeyringStore {
	if service == "" {
		service = DefaultService
	}
	return &KeyringStore{service: service}
}

func (s *KeyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *KeyringStore) Set(key, value string) error {
	return keyring.Set(s.service, key, value)
}

func (s *KeyringStore) Delete(key string) error {
	err := keyring.Delete(s.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// MemoryStore keeps secrets in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	secrets map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.secrets[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.secrets[key]; !ok {
		return ErrNotFound
	}
	delete(s.secrets, key)
	return nil
}

// Credentials are the Jira credentials of the current user.
type Credentials struct {
	Server string
	Email  string
	Token  string
}

// Complete reports whether all three secrets are present.
func (c Credentials) Complete() bool {
	return c.Server != "" && c.Email != "" && c.Token != ""
}

// Load reads whatever credentials are stored. Missing secrets are left
// empty; only store failures are returned.
func Load(ctx context.Context, store Store) (Credentials, error) {
	var creds Credentials
	fields := []struct {
		key string
		dst *string
	}{
		{KeyServer, &creds.Server},
		{KeyEmail, &creds.Email},
		{KeyToken, &creds.Token},
	}

	for _, f := range fields {
		value, err := store.Get(f.key)
		switch {
		case err == nil:
			*f.dst = value
		case errors.Is(err, ErrNotFound):
			logger.Debug(ctx, "credential not stored", "key", f.key)
		default:
			return Credentials{}, domainErrors.ErrCredentialStore.
				WithError(err).
				WithContext("key", f.key)
		}
	}

	return creds, nil
}

// Save writes all three secrets.
func Save(store Store, creds Credentials) error {
	for key, value := range map[string]string{
		KeyServer: creds.Server,
		KeyEmail:  creds.Email,
		KeyToken:  creds.Token,
	} {
		if err := store.Set(key, value); err != nil {
			return domainErrors.ErrCredentialStore.WithError(err).WithContext("key", key)
		}
	}
	return nil
}

// SaveToken replaces only the API token.
func SaveToken(store Store, token string) error {
	if err := store.Set(KeyToken, token); err != nil {
		return domainErrors.ErrCredentialStore.WithError(err).WithContext("key", KeyToken)
	}
	return nil
}

// Clear deletes the three secrets, ignoring the ones already missing.
func Clear(store Store) error {
	for _, key := range []string{KeyServer, KeyEmail, KeyToken} {
		if err := store.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
			return domainErrors.ErrCredentialStore.WithError(err).WithContext("key", key)
		}
	}
	return nil
}
