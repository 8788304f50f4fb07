package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/zalando/go-keyring"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Set(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *MockStore) Delete(key string) error {
	return m.Called(key).Error(0)
}

func TestKeyringStore_RoundTrip(t *testing.T) {
	keyring.MockInit()
	store := NewKeyringStore("")

	_, err := store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(KeyToken, "secret"))
	value, err := store.Get(KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "secret", value)

	require.NoError(t, store.Delete(KeyToken))
	assert.ErrorIs(t, store.Delete(KeyToken), ErrNotFound)
}

func TestKeyringStore_ServicesAreIsolated(t *testing.T) {
	keyring.MockInit()
	a := NewKeyringStore("jh")
	b := NewKeyringStore("jh-test")

	require.NoError(t, a.Set(KeyEmail, "dev@example.com"))

	_, err := b.Get(KeyEmail)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKeyringStore_BackendError(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Cleanup(keyring.MockInit)

	_, err := Load(context.Background(), NewKeyringStore("jh"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrCredentialStore)
}

func TestLoadSaveClear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	creds, err := Load(ctx, store)
	require.NoError(t, err)
	assert.False(t, creds.Complete())

	want := Credentials{Server: "https://acme.atlassian.net", Email: "dev@acme.com", Token: "t0k"}
	require.NoError(t, Save(store, want))

	creds, err = Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, want, creds)
	assert.True(t, creds.Complete())

	require.NoError(t, SaveToken(store, "new"))
	creds, _ = Load(ctx, store)
	assert.Equal(t, "new", creds.Token)
	assert.Equal(t, want.Server, creds.Server)

	require.NoError(t, Clear(store))
	require.NoError(t, Clear(store), "clearing twice ignores missing secrets")
	creds, _ = Load(ctx, store)
	assert.Equal(t, Credentials{}, creds)
}

func TestLoad_PartialCredentials(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(KeyServer, "https://acme.atlassian.net"))
	require.NoError(t, store.Set(KeyEmail, "dev@acme.com"))

	creds, err := Load(context.Background(), store)

	require.NoError(t, err)
	assert.False(t, creds.Complete())
	assert.Empty(t, creds.Token)
}

func TestClear_StoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Delete", KeyServer).Return(nil)
	store.On("Delete", KeyEmail).Return(errors.New("locked"))

	err := Clear(store)

	assert.ErrorIs(t, err, domainErrors.ErrCredentialStore)
	store.AssertNotCalled(t, "Delete", KeyToken)
}

func TestSave_StoreFailure(t *testing.T) {
	store := new(MockStore)
	store.On("Set", mock.Anything, mock.Anything).Return(errors.New("locked"))

	err := Save(store, Credentials{Server: "s", Email: "e", Token: "t"})

	assert.ErrorIs(t, err, domainErrors.ErrCredentialStore)
}
