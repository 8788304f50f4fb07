package config

import (
	"context"
	"errors"
	"strings"

	"github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     t.GetMessage("config.set_usage", 0, nil),
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, command *cli.Command) error {
			w := command.Root().Writer

			if command.Args().Len() < 2 {
				ui.PrintError(w, t.GetMessage("config.set_error_args", 0, map[string]interface{}{
					"Keys": strings.Join(config.Keys(), ", "),
				}))
				return errors.New("missing arguments")
			}

			key := strings.ToLower(strings.TrimSpace(command.Args().Get(0)))
			value := strings.TrimSpace(command.Args().Get(1))

			if err := cfg.Set(key, value); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				ui.PrintError(w, t.GetMessage("config.save_error", 0, nil))
				return err
			}

			logger.Info(ctx, "configuration updated", "key", key)
			if key == "github_token" {
				value = cfg.MaskedGitHubToken()
			}
			ui.PrintSuccess(w, t.GetMessage("config.set_success", 0, map[string]interface{}{
				"Key":   key,
				"Value": value,
			}))
			return nil
		},
	}
}
