package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/httpclient"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
)

const customFieldPrefix = "customfield_"

// IssueFetcher fetches a single issue by key.
type IssueFetcher interface {
	GetIssue(ctx context.Context, key string) (*Issue, error)
}

// Client is the Jira access the workflows need.
type Client interface {
	IssueFetcher
	Myself(ctx context.Context) error
	BaseURL() string
}

// JiraService talks to the Jira REST API (v2) with basic auth.
type JiraService struct {
	baseURL   string
	apiKey    string
	jiraEmail string
	client    httpclient.HTTPClient
}

var _ Client = (*JiraService)(nil)

// NewJiraService creates a new JiraService. A trailing slash in baseURL is dropped.
func NewJiraService(baseURL, apiKey, email string, client httpclient.HTTPClient) *JiraService {
	return &JiraService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		jiraEmail: email,
		client:    client,
	}
}

type (
	// Issue is an issue as returned by the API, before any enrichment.
	Issue struct {
		Key         string
		Summary     string
		Description string
		IssueType   string
		Parent      *ParentIssue
		// CustomFields holds the decoded value of every customfield_* field.
		CustomFields map[string]any
		// FieldNames maps field ids to their display name ("Epic Link").
		FieldNames map[string]string
		// Links keeps each issue link undecoded so one bad record can be skipped.
		Links []json.RawMessage
	}

	// ParentIssue is the structured parent reference of next-gen projects.
	ParentIssue struct {
		Key       string
		Summary   string
		IssueType string
	}

	issueResponse struct {
		Key    string                     `json:"key"`
		Fields map[string]json.RawMessage `json:"fields"`
		Names  map[string]string          `json:"names"`
	}

	issueTypeField struct {
		Name string `json:"name"`
	}

	parentField struct {
		Key    string `json:"key"`
		Fields struct {
			Summary   string         `json:"summary"`
			IssueType issueTypeField `json:"issuetype"`
		} `json:"fields"`
	}
)

// Ticket returns the ticket snapshot of the issue.
func (i *Issue) Ticket() models.Ticket {
	return models.Ticket{
		Key:         i.Key,
		Summary:     i.Summary,
		Description: i.Description,
		IssueType:   i.IssueType,
	}
}

// CustomFieldIDs returns the custom field ids in ascending order.
func (i *Issue) CustomFieldIDs() []string {
	ids := make([]string, 0, len(i.CustomFields))
	for id := range i.CustomFields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BaseURL returns the normalized server URL.
func (s *JiraService) BaseURL() string {
	return s.baseURL
}

// Myself verifies the credentials against the current user endpoint.
func (s *JiraService) Myself(ctx context.Context) error {
	resp, err := s.makeRequest(ctx, http.MethodGet, s.baseURL+"/rest/api/2/myself")
	if err != nil {
		return domainErrors.ErrJiraRequest.WithError(err).WithContext("server", s.baseURL)
	}
	defer closeBody(ctx, resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return domainErrors.ErrJiraUnauthorized.WithContext("status", resp.StatusCode)
	default:
		return domainErrors.ErrJiraRequest.
			WithError(fmt.Errorf("unexpected status: %s", resp.Status)).
			WithContext("server", s.baseURL)
	}
}

// GetIssue fetches an issue with its field display names.
func (s *JiraService) GetIssue(ctx context.Context, key string) (*Issue, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching jira issue", "ticket", key)

	endpoint := fmt.Sprintf("%s/rest/api/2/issue/%s?expand=names", s.baseURL, url.PathEscape(key))
	resp, err := s.makeRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, domainErrors.ErrJiraRequest.WithError(err).WithContext("ticket", key)
	}
	defer closeBody(ctx, resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domainErrors.ErrIssueNotFound.WithContext("ticket", key)
	case http.StatusUnauthorized:
		return nil, domainErrors.ErrJiraUnauthorized.WithContext("ticket", key)
	default:
		return nil, domainErrors.ErrFetchIssue.
			WithError(fmt.Errorf("unexpected status: %s", resp.Status)).
			WithContext("ticket", key)
	}

	var result issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, domainErrors.ErrJiraDecode.WithError(err).WithContext("ticket", key)
	}

	issue, err := parseIssue(result)
	if err != nil {
		return nil, domainErrors.ErrJiraDecode.WithError(err).WithContext("ticket", key)
	}

	log.Debug("jira issue fetched",
		"ticket", issue.Key,
		"issue_type", issue.IssueType,
		"custom_fields", len(issue.CustomFields),
		"links", len(issue.Links))

	return issue, nil
}

func parseIssue(result issueResponse) (*Issue, error) {
	issue := &Issue{
		Key:          result.Key,
		CustomFields: make(map[string]any),
		FieldNames:   result.Names,
	}
	if issue.FieldNames == nil {
		issue.FieldNames = map[string]string{}
	}

	if raw, ok := result.Fields["summary"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &issue.Summary); err != nil {
			return nil, fmt.Errorf("error unmarshaling summary: %w", err)
		}
	}

	if raw, ok := result.Fields["description"]; ok {
		issue.Description = parseDescription(raw)
	}

	if raw, ok := result.Fields["issuetype"]; ok && !isNull(raw) {
		var issueType issueTypeField
		if err := json.Unmarshal(raw, &issueType); err != nil {
			return nil, fmt.Errorf("error unmarshaling issuetype: %w", err)
		}
		issue.IssueType = issueType.Name
	}

	if raw, ok := result.Fields["parent"]; ok && !isNull(raw) {
		var parent parentField
		if err := json.Unmarshal(raw, &parent); err == nil && parent.Key != "" {
			issue.Parent = &ParentIssue{
				Key:       parent.Key,
				Summary:   parent.Fields.Summary,
				IssueType: parent.Fields.IssueType.Name,
			}
		}
	}

	if raw, ok := result.Fields["issuelinks"]; ok && !isNull(raw) {
		if err := json.Unmarshal(raw, &issue.Links); err != nil {
			return nil, fmt.Errorf("error unmarshaling issuelinks: %w", err)
		}
	}

	for key, value := range result.Fields {
		if !strings.HasPrefix(key, customFieldPrefix) || isNull(value) {
			continue
		}
		var decoded any
		if err := json.Unmarshal(value, &decoded); err != nil {
			continue
		}
		issue.CustomFields[key] = decoded
	}

	return issue, nil
}

// parseDescription accepts the plain text of API v2 and the Atlassian
// Document Format some instances return.
func parseDescription(raw json.RawMessage) string {
	if isNull(raw) {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	var doc AtlassianDoc
	if err := json.Unmarshal(raw, &doc); err == nil {
		return parseAtlassianDoc(doc.Content)
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// makeRequest realiza una solicitud HTTP a la API de Jira.
func (s *JiraService) makeRequest(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Authorization", getBasicAuth(s.jiraEmail, s.apiKey))
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}

	return resp, nil
}

func closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logger.Warn(ctx, "error closing response body", "error", err)
	}
}

// getBasicAuth genera el encabezado de autenticación básica.
func getBasicAuth(username, token string) string {
	credentials := fmt.Sprintf("%s:%s", username, token)
	return fmt.Sprintf("Basic %s", base64.StdEncoding.EncodeToString([]byte(credentials)))
}
