package auth

import (
	"context"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	cfg "github.com/thomas-vilte/jh/internal/config"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

type UpdateTokenCommand struct {
	service AuthService
	ask     AskOneFunc
}

func NewUpdateTokenCommand(service AuthService) *UpdateTokenCommand {
	return &UpdateTokenCommand{service: service, ask: survey.AskOne}
}

func (c *UpdateTokenCommand) WithAsk(ask AskOneFunc) *UpdateTokenCommand {
	c.ask = ask
	return c
}

func (c *UpdateTokenCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "update-token",
		Usage: t.GetMessage("update_token.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Usage: t.GetMessage("login.flag_token", 0, nil)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			stored, err := c.service.StoredCredentials(ctx)
			if err != nil {
				return err
			}
			if stored.Server == "" || stored.Email == "" {
				return domainErrors.ErrJiraNoStoredCredentials
			}

			ui.PrintInfo(out, t.GetMessage("update_token.updating_for", 0, map[string]interface{}{
				"Server": stored.Server,
			}))

			token := cmd.String("token")
			if strings.TrimSpace(token) == "" {
				if token, err = askPassword(c.ask, t.GetMessage("update_token.prompt", 0, nil)); err != nil {
					return err
				}
			}

			ui.PrintInfo(out, t.GetMessage("update_token.validating", 0, nil))
			if _, err := c.service.UpdateToken(ctx, token); err != nil {
				logger.Error(ctx, "token update failed", err)
				return err
			}

			ui.PrintSuccess(out, t.GetMessage("update_token.success", 0, nil))
			return nil
		},
	}
}
