package auth

import (
	"context"
	"fmt"
	"io"
	"strings"

	cfg "github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/tickets"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

// StatusCommand reports Jira credentials, the pull request host and the
// current repository. It never fails because something is missing; only
// errors reading the credential store are returned.
type StatusCommand struct {
	service AuthService
	host    HostProvider
	repo    RepoInspector
}

func NewStatusCommand(service AuthService, host HostProvider, repo RepoInspector) *StatusCommand {
	return &StatusCommand{service: service, host: host, repo: repo}
}

func (c *StatusCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: t.GetMessage("status.usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Root().Writer

			if err := c.printJira(ctx, out, t); err != nil {
				return err
			}
			c.printHost(ctx, out, t, config)
			c.printRepo(ctx, out, t)
			return nil
		},
	}
}

func heading(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "\n%s\n%s\n", ui.Accent.Sprint(title), strings.Repeat("-", 30))
}

func (c *StatusCommand) printJira(ctx context.Context, w io.Writer, t *i18n.Translations) error {
	heading(w, t.GetMessage("status.jira_heading", 0, nil))

	status, err := c.service.Status(ctx)
	if err != nil {
		return err
	}

	switch {
	case !status.Stored:
		ui.PrintWarning(w, t.GetMessage("status.jira_not_authenticated", 0, nil))
		ui.PrintKeyValue(w, t.GetMessage("status.hint", 0, nil), "jh login")
	case status.Verified:
		ui.PrintKeyValue(w, t.GetMessage("status.server", 0, nil), status.Credentials.Server)
		ui.PrintKeyValue(w, t.GetMessage("status.email", 0, nil), status.Credentials.Email)
		ui.PrintSuccess(w, t.GetMessage("status.jira_verified", 0, nil))
	default:
		logger.Debug(ctx, "stored jira credentials rejected", "error", status.VerifyErr)
		ui.PrintKeyValue(w, t.GetMessage("status.server", 0, nil), status.Credentials.Server)
		ui.PrintError(w, t.GetMessage("status.jira_invalid", 0, nil))
		ui.PrintKeyValue(w, t.GetMessage("status.hint", 0, nil), "jh login / jh update-token")
	}
	return nil
}

func (c *StatusCommand) printHost(ctx context.Context, w io.Writer, t *i18n.Translations, config *cfg.Config) {
	heading(w, t.GetMessage("status.host_heading", 0, map[string]interface{}{"Provider": config.PRProvider}))

	host, err := c.host(ctx)
	if err != nil {
		ui.PrintError(w, t.GetMessage("status.host_unavailable", 0, map[string]interface{}{"Error": err.Error()}))
		return
	}

	if !host.Installed(ctx) {
		ui.PrintError(w, t.GetMessage("status.gh_not_installed", 0, nil))
		ui.PrintKeyValue(w, t.GetMessage("status.hint", 0, nil), "https://cli.github.com/")
		return
	}
	ui.PrintSuccess(w, t.GetMessage("status.host_installed", 0, map[string]interface{}{"Name": host.Name()}))

	if host.Authenticated(ctx) {
		ui.PrintSuccess(w, t.GetMessage("status.host_authenticated", 0, map[string]interface{}{"Name": host.Name()}))
	} else {
		ui.PrintWarning(w, t.GetMessage("status.host_not_authenticated", 0, map[string]interface{}{"Name": host.Name()}))
		if host.Name() == cfg.ProviderGH {
			ui.PrintKeyValue(w, t.GetMessage("status.hint", 0, nil), "gh auth login")
		}
	}
}

func (c *StatusCommand) printRepo(ctx context.Context, w io.Writer, t *i18n.Translations) {
	heading(w, t.GetMessage("status.git_heading", 0, nil))

	if !c.repo.IsRepo(ctx) {
		ui.PrintWarning(w, t.GetMessage("status.not_a_repo", 0, nil))
		return
	}
	ui.PrintSuccess(w, t.GetMessage("status.repo", 0, nil))

	branch, err := c.repo.GetCurrentBranch(ctx)
	if err != nil {
		ui.PrintWarning(w, err.Error())
		return
	}
	ui.PrintKeyValue(w, t.GetMessage("status.branch", 0, nil), branch)

	if key, ok := tickets.ExtractKey(branch); ok {
		ui.PrintKeyValue(w, t.GetMessage("status.ticket", 0, nil), key)
	} else {
		ui.PrintWarning(w, t.GetMessage("status.no_ticket", 0, nil))
	}
}
