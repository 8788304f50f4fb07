package pr

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/thomas-vilte/jh/internal/commands/completion_helper"
	cfg "github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/services"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/urfave/cli/v3"
)

// PRService is the part of services.PRService the command drives.
type PRService interface {
	CreatePR(ctx context.Context, opts services.PROptions, progress func(models.ProgressEvent)) (*models.PRResult, error)
}

// PRServiceProvider builds a PRService on demand, so configuration problems
// only surface when pr actually runs.
type PRServiceProvider func(ctx context.Context) (PRService, error)

type PRCommand struct {
	prProvider PRServiceProvider
}

func NewPRCommand(prProvider PRServiceProvider) *PRCommand {
	return &PRCommand{prProvider: prProvider}
}

func (c *PRCommand) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:  "pr",
		Usage: t.GetMessage("pr.usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   t.GetMessage("pr.flag_title", 0, nil),
			},
			&cli.StringFlag{
				Name:    "body",
				Aliases: []string{"b"},
				Usage:   t.GetMessage("pr.flag_body", 0, nil),
			},
			&cli.StringFlag{
				Name:  "base",
				Usage: t.GetMessage("pr.flag_base", 0, nil),
				Value: config.DefaultBase,
			},
			&cli.BoolFlag{
				Name:  "push",
				Usage: t.GetMessage("pr.flag_push", 0, nil),
				Value: config.Push,
			},
			&cli.BoolFlag{
				Name:  "no-push",
				Usage: t.GetMessage("pr.flag_no_push", 0, nil),
			},
			&cli.StringSliceFlag{
				Name:    "additional",
				Aliases: []string{"a"},
				Usage:   t.GetMessage("pr.flag_additional", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: t.GetMessage("pr.flag_dry_run", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			start := time.Now()
			out := cmd.Root().Writer
			if out == nil {
				out = os.Stdout
			}

			opts := services.PROptions{
				Title:      strings.TrimSpace(cmd.String("title")),
				Body:       cmd.String("body"),
				Base:       strings.TrimSpace(cmd.String("base")),
				Push:       cmd.Bool("push") && !cmd.Bool("no-push"),
				Additional: normalizeKeys(cmd.StringSlice("additional")),
				DryRun:     cmd.Bool("dry-run"),
			}

			log.Info("executing pr command",
				"push", opts.Push,
				"dry_run", opts.DryRun,
				"additional", len(opts.Additional),
				"has_title", opts.Title != "",
				"has_body", opts.Body != "")

			prService, err := c.prProvider(ctx)
			if err != nil {
				log.Error("failed to create pr service",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				return err
			}

			spinner := ui.NewSmartSpinner(out, t.GetMessage("pr.checking_prerequisites", 0, nil))
			spinner.Start()

			result, err := prService.CreatePR(ctx, opts, func(event models.ProgressEvent) {
				renderProgress(t, spinner, event)
			})
			if err != nil {
				log.Error("pr workflow failed",
					"error", err,
					"duration_ms", time.Since(start).Milliseconds())
				spinner.Error(t.GetMessage("pr.failed", 0, nil))
				return err
			}

			switch result.Outcome {
			case models.OutcomeExisting:
				spinner.Warning(t.GetMessage("pr.already_exists", 0, nil))
				ui.PrintKeyValue(out, t.GetMessage("pr.label_url", 0, nil), result.PullRequest.URL)
				ui.PrintKeyValue(out, t.GetMessage("pr.label_title", 0, nil), result.PullRequest.Title)
			case models.OutcomeDryRun:
				spinner.Stop()
				printPreview(out, t, result)
			default:
				spinner.Success(t.GetMessage("pr.created", 0, nil))
				ui.PrintKeyValue(out, t.GetMessage("pr.label_url", 0, nil), result.PullRequest.URL)
			}

			log.Info("pr command finished",
				"outcome", result.Outcome,
				"warnings", len(result.Warnings),
				"duration_ms", time.Since(start).Milliseconds())
			return nil
		},
	}
}

func renderProgress(t *i18n.Translations, spinner *ui.SmartSpinner, event models.ProgressEvent) {
	switch event.Type {
	case models.ProgressBranchResolved:
		spinner.Log(t.GetMessage("pr.branch", 0, event.Data))
		spinner.Log(t.GetMessage("pr.ticket", 0, event.Data))
		if keys, ok := event.Data["Additional"].([]string); ok && len(keys) > 0 {
			spinner.Log(t.GetMessage("pr.additional_keys", 0, map[string]interface{}{
				"Keys": strings.Join(keys, ", "),
			}))
		}
	case models.ProgressFetchingTicket:
		spinner.UpdateMessage(t.GetMessage("pr.fetching_ticket", 0, nil))
	case models.ProgressTicketFetched:
		spinner.Log(t.GetMessage("pr.ticket_summary", 0, event.Data))
	case models.ProgressEpicFound:
		spinner.Log(t.GetMessage("pr.epic", 0, event.Data))
	case models.ProgressLinksFound:
		count, _ := event.Data["Count"].(int)
		spinner.Log(t.GetMessage("pr.linked_issues", count, event.Data))
	case models.ProgressAdditionalTicket:
		spinner.Log(t.GetMessage("pr.additional_ticket", 0, event.Data))
	case models.ProgressPushing:
		spinner.UpdateMessage(t.GetMessage("pr.pushing", 0, nil))
	case models.ProgressPushed:
		if upToDate, _ := event.Data["UpToDate"].(bool); upToDate {
			spinner.Log(t.GetMessage("pr.push_up_to_date", 0, nil))
		} else {
			spinner.Log(t.GetMessage("pr.pushed", 0, nil))
		}
	case models.ProgressPushWarning:
		spinner.Log(ui.Warning.Sprint(t.GetMessage("pr.push_warning", 0, event.Data)))
	case models.ProgressCreatingPR:
		spinner.UpdateMessage(t.GetMessage("pr.creating", 0, nil))
	}
}

func printPreview(w io.Writer, t *i18n.Translations, result *models.PRResult) {
	ui.PrintSectionBanner(w, t.GetMessage("pr.preview_heading", 0, nil))
	ui.PrintKeyValue(w, t.GetMessage("pr.label_title", 0, nil), result.Content.Title)
	ui.PrintPreview(w, t.GetMessage("pr.label_body", 0, nil), result.Content.Body)
	_, _ = fmt.Fprintln(w)
	ui.PrintWarning(w, t.GetMessage("pr.dry_run_done", 0, nil))
}

// normalizeKeys trims the repeated --additional values and drops empty ones.
func normalizeKeys(values []string) []string {
	keys := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}
