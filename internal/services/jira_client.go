package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/thomas-vilte/jh/internal/credentials"
	"github.com/thomas-vilte/jh/internal/jira"
)

const jiraTimeout = 30 * time.Second

// JiraClientFactory builds a Jira client from stored credentials.
type JiraClientFactory func(creds credentials.Credentials) jira.Client

// NewJiraClient is the default JiraClientFactory.
func NewJiraClient(creds credentials.Credentials) jira.Client {
	return jira.NewJiraService(creds.Server, creds.Token, creds.Email, &http.Client{Timeout: jiraTimeout})
}

// runFetcher remembers the issues fetched during one run so the primary
// ticket is requested once even though the epic and link lookups read it
// again. Failures are not remembered.
type runFetcher struct {
	next   jira.IssueFetcher
	mu     sync.Mutex
	issues map[string]*jira.Issue
}

func newRunFetcher(next jira.IssueFetcher) *runFetcher {
	return &runFetcher{next: next, issues: make(map[string]*jira.Issue)}
}

func (f *runFetcher) GetIssue(ctx context.Context, key string) (*jira.Issue, error) {
	f.mu.Lock()
	issue, ok := f.issues[key]
	f.mu.Unlock()
	if ok {
		return issue, nil
	}

	issue, err := f.next.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.issues[key] = issue
	f.mu.Unlock()
	return issue, nil
}
