package formatter

import (
	"fmt"
	"strings"

	"github.com/thomas-vilte/jh/internal/models"
)

const fallbackDirection = "related to"

// BodyInput carries everything rendered into a pull request body.
type BodyInput struct {
	// Description is usually the last commit message.
	Description       string
	Ticket            models.Ticket
	JiraBaseURL       string
	Epic              *models.Epic
	LinkedIssues      []models.LinkedIssue
	AdditionalTickets []models.Ticket
}

// FormatBody renders the markdown body. Sections always appear in the order
// Description, Jira References, Related Issues; a section without content is
// left out.
func FormatBody(in BodyInput) string {
	var lines []string

	if description := strings.TrimSpace(in.Description); description != "" {
		lines = append(lines, "## Description", "", description, "")
	}

	lines = append(lines, "## Jira References", "")
	lines = append(lines, fmt.Sprintf("- **Ticket:** %s - %s", issueLink(in.JiraBaseURL, in.Ticket.Key), in.Ticket.Summary))
	for _, ticket := range in.AdditionalTickets {
		lines = append(lines, fmt.Sprintf("- **Ticket:** %s - %s", issueLink(in.JiraBaseURL, ticket.Key), ticket.Summary))
	}
	if in.Epic != nil {
		lines = append(lines, fmt.Sprintf("- **Epic:** %s - %s", issueLink(in.JiraBaseURL, in.Epic.Key), in.Epic.Summary))
	}
	lines = append(lines, "")

	if len(in.LinkedIssues) > 0 {
		lines = append(lines, "## Related Issues", "")
		for _, issue := range in.LinkedIssues {
			lines = append(lines, fmt.Sprintf("- %s - %s (%s)", issueLink(in.JiraBaseURL, issue.Key), issue.Summary, linkDirection(issue)))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// IssueURL builds the browse URL of an issue. Keys are inserted as-is.
func IssueURL(baseURL, key string) string {
	return baseURL + "/browse/" + key
}

func issueLink(baseURL, key string) string {
	return fmt.Sprintf("[%s](%s)", key, IssueURL(baseURL, key))
}

func linkDirection(issue models.LinkedIssue) string {
	if issue.Direction != "" {
		return issue.Direction
	}
	if issue.LinkType != "" {
		return issue.LinkType
	}
	return fallbackDirection
}
