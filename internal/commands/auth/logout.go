package auth

import (
	"context"

	cfg "github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

type LogoutCommand struct {
	service AuthService
}

func NewLogoutCommand(service AuthService) *LogoutCommand {
	return &LogoutCommand{service: service}
}

func (c *LogoutCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: t.GetMessage("logout.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := c.service.Logout(ctx); err != nil {
				return err
			}
			ui.PrintWarning(cmd.Root().Writer, t.GetMessage("logout.success", 0, nil))
			return nil
		},
	}
}
