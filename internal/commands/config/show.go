package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			ui.PrintSectionBanner(w, t.GetMessage("config.current", 0, nil))
			ui.PrintKeyValue(w, t.GetMessage("config.file", 0, nil), cfg.PathFile)
			ui.PrintKeyValue(w, "language", cfg.Language)
			ui.PrintKeyValue(w, "pr_provider", cfg.PRProvider)
			ui.PrintKeyValue(w, "default_base", orNotSet(t, cfg.DefaultBase))
			ui.PrintKeyValue(w, "push", strconv.FormatBool(cfg.Push))
			ui.PrintKeyValue(w, "keyring_service", cfg.KeyringService)
			ui.PrintKeyValue(w, "github_token", orNotSet(t, cfg.MaskedGitHubToken()))

			if cfg.PRProvider == config.ProviderGitHub && cfg.GitHubToken == "" {
				_, _ = fmt.Fprintln(w)
				ui.PrintInfo(w, t.GetMessage("config.github_token_tip", 0, nil))
			}
			return nil
		},
	}
}

func orNotSet(t *i18n.Translations, value string) string {
	if value == "" {
		return t.GetMessage("config.not_set", 0, nil)
	}
	return value
}
