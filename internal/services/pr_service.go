package services

import (
	"context"
	"errors"
	"time"

	"github.com/thomas-vilte/jh/internal/credentials"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/formatter"
	"github.com/thomas-vilte/jh/internal/git"
	"github.com/thomas-vilte/jh/internal/jira"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/tickets"
	"github.com/thomas-vilte/jh/internal/vcs"
)

// prGitService defines the git operations PRService needs.
type prGitService interface {
	IsRepo(ctx context.Context) bool
	GetCurrentBranch(ctx context.Context) (string, error)
	GetLastCommitMessage(ctx context.Context) (string, error)
	PushBranch(ctx context.Context, branch string) (git.PushResult, error)
}

// PROptions are the user inputs of a pr run.
type PROptions struct {
	// Title replaces the formatted title when set.
	Title string
	// Body replaces the last commit message as description when set.
	Body string
	// Base is the target branch; empty means the repository default.
	Base       string
	Push       bool
	Additional []string
	DryRun     bool
}

type PRService struct {
	git         prGitService
	host        vcs.PullRequestHost
	store       credentials.Store
	jiraFactory JiraClientFactory
}

type PROption func(*PRService)

func WithPRGitService(g prGitService) PROption {
	return func(s *PRService) {
		s.git = g
	}
}

func WithPRHost(host vcs.PullRequestHost) PROption {
	return func(s *PRService) {
		s.host = host
	}
}

func WithPRCredentialStore(store credentials.Store) PROption {
	return func(s *PRService) {
		s.store = store
	}
}

func WithPRJiraClientFactory(factory JiraClientFactory) PROption {
	return func(s *PRService) {
		s.jiraFactory = factory
	}
}

func NewPRService(opts ...PROption) *PRService {
	s := &PRService{jiraFactory: NewJiraClient}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePR runs the whole pr workflow: check prerequisites, resolve the
// ticket from the branch, gather its Jira context, render the content, then
// (unless it is a dry run) push and open the pull request. It stops early
// with OutcomeExisting when the branch already has an open pull request.
func (s *PRService) CreatePR(ctx context.Context, opts PROptions, progress func(models.ProgressEvent)) (*models.PRResult, error) {
	start := time.Now()
	emit := func(evt models.ProgressEvent) {
		if progress != nil {
			progress(evt)
		}
	}

	if !s.git.IsRepo(ctx) {
		return nil, domainErrors.ErrNotInGitRepo
	}
	if err := s.checkHost(ctx); err != nil {
		return nil, err
	}

	branch, err := s.git.GetCurrentBranch(ctx)
	if err != nil {
		return nil, err
	}

	ticketKey, ok := tickets.ExtractKey(branch)
	if !ok {
		return nil, domainErrors.ErrTicketNotInBranch.WithContext("branch", branch)
	}
	if err := tickets.ValidateKeys(opts.Additional); err != nil {
		return nil, err
	}

	ctx = logger.With(ctx, "branch", branch, "ticket", ticketKey)
	log := logger.FromContext(ctx)
	log.Info("starting pr workflow", "additional", len(opts.Additional), "dry_run", opts.DryRun)

	emit(models.ProgressEvent{
		Type: models.ProgressBranchResolved,
		Data: map[string]interface{}{
			"Branch":     branch,
			"Ticket":     ticketKey,
			"Additional": opts.Additional,
		},
	})

	result := &models.PRResult{Branch: branch, TicketKey: ticketKey}

	existing, err := s.host.FindPRForBranch(ctx, branch)
	if err != nil {
		log.Warn("could not check for an existing pull request", "error", err)
		result.Warnings = append(result.Warnings, err.Error())
	}
	if existing != nil {
		emit(models.ProgressEvent{
			Type: models.ProgressExistingPR,
			Data: map[string]interface{}{"URL": existing.URL, "Title": existing.Title},
		})
		result.Outcome = models.OutcomeExisting
		result.PullRequest = existing
		return result, nil
	}

	client, err := s.jiraClient(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.fetchTicketData(ctx, client, ticketKey, opts.Additional, result, emit); err != nil {
		return nil, err
	}

	description := opts.Body
	if description == "" {
		msg, err := s.git.GetLastCommitMessage(ctx)
		if err != nil {
			log.Debug("no commit message available for the description", "error", err)
		}
		description = msg
	}

	additionalKeys := make([]string, 0, len(result.AdditionalTickets))
	for _, t := range result.AdditionalTickets {
		additionalKeys = append(additionalKeys, t.Key)
	}

	result.Content = models.PRContent{
		Title: opts.Title,
		Body: formatter.FormatBody(formatter.BodyInput{
			Description:       description,
			Ticket:            *result.Ticket,
			JiraBaseURL:       client.BaseURL(),
			Epic:              result.Epic,
			LinkedIssues:      result.LinkedIssues,
			AdditionalTickets: result.AdditionalTickets,
		}),
	}
	if result.Content.Title == "" {
		result.Content.Title = formatter.FormatTitle(ticketKey, result.Ticket.Summary, additionalKeys)
	}

	if opts.DryRun {
		result.Outcome = models.OutcomeDryRun
		log.Info("dry run finished", "duration_ms", time.Since(start).Milliseconds())
		return result, nil
	}

	if opts.Push {
		s.push(ctx, branch, result, emit)
	}

	emit(models.ProgressEvent{Type: models.ProgressCreatingPR})
	pr, err := s.host.CreatePR(ctx, models.PRRequest{
		Title: result.Content.Title,
		Body:  result.Content.Body,
		Base:  opts.Base,
		Head:  branch,
	})
	if err != nil {
		return nil, err
	}

	result.Outcome = models.OutcomeCreated
	result.PullRequest = pr
	log.Info("pr workflow finished",
		"url", pr.URL,
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

func (s *PRService) checkHost(ctx context.Context) error {
	if !s.host.Installed(ctx) {
		return domainErrors.ErrGHNotInstalled
	}
	if !s.host.Authenticated(ctx) {
		if s.host.Name() == "gh" {
			return domainErrors.ErrGHNotAuthenticated
		}
		return domainErrors.ErrGitHubTokenInvalid.WithContext("provider", s.host.Name())
	}
	return nil
}

func (s *PRService) jiraClient(ctx context.Context) (jira.Client, error) {
	creds, err := credentials.Load(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if !creds.Complete() {
		return nil, domainErrors.ErrJiraNotAuthenticated
	}
	return s.jiraFactory(creds), nil
}

// fetchTicketData loads the primary ticket, its epic and links, and every
// additional ticket. Only the epic and links may fail without stopping the run.
func (s *PRService) fetchTicketData(
	ctx context.Context,
	client jira.Client,
	ticketKey string,
	additional []string,
	result *models.PRResult,
	emit func(models.ProgressEvent),
) error {
	log := logger.FromContext(ctx)
	fetcher := newRunFetcher(client)

	emit(models.ProgressEvent{Type: models.ProgressFetchingTicket})

	issue, err := fetcher.GetIssue(ctx, ticketKey)
	if err != nil {
		return err
	}
	ticket := issue.Ticket()
	result.Ticket = &ticket
	emit(models.ProgressEvent{
		Type: models.ProgressTicketFetched,
		Data: map[string]interface{}{"Key": ticket.Key, "Summary": ticket.Summary},
	})

	epic := jira.ResolveEpic(ctx, fetcher, ticketKey)
	if epic.Unavailable() {
		log.Warn("epic lookup failed, continuing without epic", "error", epic.Err)
	}
	result.Epic = epic.Value
	if result.Epic != nil {
		emit(models.ProgressEvent{
			Type: models.ProgressEpicFound,
			Data: map[string]interface{}{"Key": result.Epic.Key, "Summary": result.Epic.Summary},
		})
	}

	links := jira.ResolveLinks(ctx, fetcher, ticketKey)
	if links.Unavailable() {
		log.Warn("linked issue lookup failed, continuing without links", "error", links.Err)
	}
	result.LinkedIssues = links.Value
	if len(result.LinkedIssues) > 0 {
		emit(models.ProgressEvent{
			Type: models.ProgressLinksFound,
			Data: map[string]interface{}{"Count": len(result.LinkedIssues)},
		})
	}

	for _, key := range additional {
		extra, err := fetcher.GetIssue(ctx, key)
		if err != nil {
			var appErr *domainErrors.AppError
			if errors.As(err, &appErr) {
				return appErr.WithContext("additional_ticket", key)
			}
			return domainErrors.ErrFetchIssue.WithError(err).WithContext("additional_ticket", key)
		}
		t := extra.Ticket()
		result.AdditionalTickets = append(result.AdditionalTickets, t)
		emit(models.ProgressEvent{
			Type: models.ProgressAdditionalTicket,
			Data: map[string]interface{}{"Key": t.Key, "Summary": t.Summary},
		})
	}

	log.Debug("ticket data fetched",
		"has_epic", result.Epic != nil,
		"links", len(result.LinkedIssues),
		"additional", len(result.AdditionalTickets))
	return nil
}

// push never fails the run: anything but success becomes a warning.
func (s *PRService) push(ctx context.Context, branch string, result *models.PRResult, emit func(models.ProgressEvent)) {
	emit(models.ProgressEvent{Type: models.ProgressPushing, Data: map[string]interface{}{"Branch": branch}})

	pushed, err := s.git.PushBranch(ctx, branch)
	if err != nil {
		logger.Warn(ctx, "push failed, creating the pull request anyway", "error", err)
		result.Warnings = append(result.Warnings, err.Error())
		emit(models.ProgressEvent{
			Type:    models.ProgressPushWarning,
			Message: err.Error(),
			Data:    map[string]interface{}{"Error": err.Error()},
		})
		return
	}

	emit(models.ProgressEvent{
		Type: models.ProgressPushed,
		Data: map[string]interface{}{"Branch": branch, "UpToDate": pushed.UpToDate},
	})
}
