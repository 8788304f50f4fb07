package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/jh/internal/config"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/urfave/cli/v3"
)

func setupConfigTest(t *testing.T) (*config.Config, *i18n.Translations) {
	t.Helper()
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)

	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return cfg, translations
}

func runConfig(t *testing.T, cfg *config.Config, translations *i18n.Translations, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.Command{
		Name:     "jh",
		Writer:   &out,
		Commands: []*cli.Command{NewConfigCommandFactory().CreateCommand(translations, cfg)},
	}
	err := app.Run(context.Background(), append([]string{"jh", "config"}, args...))
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	cfg, translations := setupConfigTest(t)
	cfg.GitHubToken = "ghp_abcdef1234"

	out, err := runConfig(t, cfg, translations, "show")

	require.NoError(t, err)
	assert.Contains(t, out, cfg.PathFile)
	assert.Contains(t, out, "pr_provider")
	assert.Contains(t, out, "********1234")
	assert.NotContains(t, out, "ghp_abcdef1234")
}

func TestSetCommand(t *testing.T) {
	t.Run("persists a valid value", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)

		out, err := runConfig(t, cfg, translations, "set", "default_base", "develop")

		require.NoError(t, err)
		assert.Contains(t, out, "default_base")
		reloaded, err := config.LoadConfig(cfg.PathFile)
		require.NoError(t, err)
		assert.Equal(t, "develop", reloaded.DefaultBase)
	})

	t.Run("keys are case insensitive", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)

		_, err := runConfig(t, cfg, translations, "set", "PUSH", "false")

		require.NoError(t, err)
		assert.False(t, cfg.Push)
	})

	t.Run("rejects an invalid provider", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)

		_, err := runConfig(t, cfg, translations, "set", "pr_provider", "gitlab")

		assert.ErrorIs(t, err, domainErrors.ErrConfigInvalid)
		assert.Equal(t, config.ProviderGH, cfg.PRProvider)
	})

	t.Run("rejects an unknown key", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)

		_, err := runConfig(t, cfg, translations, "set", "colour", "blue")

		assert.ErrorIs(t, err, domainErrors.ErrConfigUnknownKey)
	})

	t.Run("requires key and value", func(t *testing.T) {
		cfg, translations := setupConfigTest(t)

		out, err := runConfig(t, cfg, translations, "set", "push")

		assert.Error(t, err)
		assert.Contains(t, out, "default_base")
	})
}
