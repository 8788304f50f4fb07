package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	cfg "github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

type LoginCommand struct {
	service AuthService
	ask     AskOneFunc
}

func NewLoginCommand(service AuthService) *LoginCommand {
	return &LoginCommand{service: service, ask: survey.AskOne}
}

// WithAsk replaces the interactive prompt.
func (c *LoginCommand) WithAsk(ask AskOneFunc) *LoginCommand {
	c.ask = ask
	return c
}

func (c *LoginCommand) CreateCommand(t *i18n.Translations, _ *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: t.GetMessage("login.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Usage: t.GetMessage("login.flag_server", 0, nil)},
			&cli.StringFlag{Name: "email", Usage: t.GetMessage("login.flag_email", 0, nil)},
			&cli.StringFlag{Name: "token", Usage: t.GetMessage("login.flag_token", 0, nil)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()
			out := cmd.Root().Writer

			ui.PrintSectionBanner(out, t.GetMessage("login.title", 0, nil))

			server, email, token := cmd.String("server"), cmd.String("email"), cmd.String("token")
			var err error
			if strings.TrimSpace(server) == "" {
				if server, err = askInput(c.ask, t.GetMessage("login.prompt_server", 0, nil), c.defaultServer(ctx)); err != nil {
					return err
				}
			}
			if strings.TrimSpace(email) == "" {
				if email, err = askInput(c.ask, t.GetMessage("login.prompt_email", 0, nil), ""); err != nil {
					return err
				}
			}
			if strings.TrimSpace(token) == "" {
				if token, err = askPassword(c.ask, t.GetMessage("login.prompt_token", 0, nil)); err != nil {
					return err
				}
			}

			_, _ = fmt.Fprintln(out)
			ui.PrintInfo(out, t.GetMessage("login.validating", 0, nil))

			creds, err := c.service.Login(ctx, server, email, token)
			if err != nil {
				log.Error("login failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
				ui.PrintError(out, t.GetMessage("login.failed", 0, nil))
				return err
			}

			ui.PrintSuccess(out, t.GetMessage("login.success", 0, nil))
			ui.PrintKeyValue(out, t.GetMessage("login.stored_for", 0, nil), creds.Server)
			log.Info("login finished", "server", creds.Server, "duration_ms", time.Since(start).Milliseconds())
			return nil
		},
	}
}

// defaultServer suggests the stored server when there is one.
func (c *LoginCommand) defaultServer(ctx context.Context) string {
	creds, err := c.service.StoredCredentials(ctx)
	if err == nil && creds.Server != "" {
		return creds.Server
	}
	return defaultServer
}
