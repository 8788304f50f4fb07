package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/thomas-vilte/jh/internal/cli/registry"
	"github.com/thomas-vilte/jh/internal/commands/auth"
	configCmd "github.com/thomas-vilte/jh/internal/commands/config"
	"github.com/thomas-vilte/jh/internal/commands/pr"
	cfg "github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/credentials"
	"github.com/thomas-vilte/jh/internal/factory"
	"github.com/thomas-vilte/jh/internal/git"
	"github.com/thomas-vilte/jh/internal/i18n"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/shell"
	"github.com/thomas-vilte/jh/internal/ui"
	"github.com/thomas-vilte/jh/internal/vcs"
	"github.com/thomas-vilte/jh/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	app, translations, err := initializeApp()
	if err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp() (*cli.Command, *i18n.Translations, error) {
	configPath, err := cfg.DefaultPath()
	if err != nil {
		return nil, nil, err
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language)
	if err != nil {
		return nil, nil, err
	}

	runner := shell.ExecRunner{}
	gitService := git.NewGitServiceAt("", runner)
	store := credentials.NewKeyringStore(cfgApp.KeyringService)
	prServiceFactory := factory.NewPRServiceFactory(cfgApp, store, gitService, runner)
	authService := prServiceFactory.CreateAuthService()

	prProvider := func(ctx context.Context) (pr.PRService, error) {
		svc, err := prServiceFactory.CreatePRService(ctx)
		if err != nil {
			return nil, err
		}
		return svc, nil
	}
	hostProvider := func(ctx context.Context) (vcs.PullRequestHost, error) {
		return prServiceFactory.CreateHost(ctx)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)
	factories := map[string]registry.CommandFactory{
		"pr":           pr.NewPRCommand(prProvider),
		"login":        auth.NewLoginCommand(authService),
		"logout":       auth.NewLogoutCommand(authService),
		"update-token": auth.NewUpdateTokenCommand(authService),
		"status":       auth.NewStatusCommand(authService, hostProvider, gitService),
		"config":       configCmd.NewConfigCommandFactory(),
	}
	for name, f := range factories {
		if err := registerCommand.Register(name, f); err != nil {
			return nil, translations, err
		}
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd.Root())
		},
	})

	return &cli.Command{
		Name:        "jh",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: translations.GetMessage("flag_debug", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: translations.GetMessage("flag_verbose", 0, nil),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger.Initialize(cmd.Bool("debug"), cmd.Bool("verbose"))
			logger.Debug(ctx, "configuration loaded",
				"path", cfgApp.PathFile,
				"provider", cfgApp.PRProvider,
				"language", cfgApp.Language)
			return logger.WithLogger(ctx, slog.Default()), nil
		},
		Commands:              commands,
		EnableShellCompletion: true,
	}, translations, nil
}
