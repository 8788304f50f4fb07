package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(_ *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{Name: m.name}
}

func newTestRegistry(t *testing.T) (*Registry, *config.Config, *i18n.Translations) {
	t.Helper()
	cfg := config.Default()
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return NewRegistry(cfg, translations), cfg, translations
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)

		err := registry.Register("pr", &mockCommandFactory{name: "pr"})

		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "pr")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)

		_ = registry.Register("pr", &mockCommandFactory{name: "pr"})
		err := registry.Register("pr", &mockCommandFactory{name: "pr"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "'pr'")
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands in name order", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)
		_ = registry.Register("status", &mockCommandFactory{name: "status"})
		_ = registry.Register("login", &mockCommandFactory{name: "login"})
		_ = registry.Register("pr", &mockCommandFactory{name: "pr"})

		commands := registry.CreateCommands()

		require.Len(t, commands, 3)
		assert.Equal(t, "login", commands[0].Name)
		assert.Equal(t, "pr", commands[1].Name)
		assert.Equal(t, "status", commands[2].Name)
	})

	t.Run("should return empty slice when no factories registered", func(t *testing.T) {
		registry, _, _ := newTestRegistry(t)

		assert.Empty(t, registry.CreateCommands())
	})
}

func TestNewRegistry(t *testing.T) {
	registry, cfg, translations := newTestRegistry(t)

	assert.NotNil(t, registry)
	assert.Empty(t, registry.factories)
	assert.Equal(t, cfg, registry.config)
	assert.Equal(t, translations, registry.t)
}
