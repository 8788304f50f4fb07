package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/jh/internal/models"
)

const baseURL = "https://acme.atlassian.net"

func TestFormatBody_FullBody(t *testing.T) {
	body := FormatBody(BodyInput{
		Description:       "Add login\n\nDetails.\n",
		Ticket:            models.Ticket{Key: "PROJ-1", Summary: "Login"},
		JiraBaseURL:       baseURL,
		Epic:              &models.Epic{Key: "PROJ-0", Summary: "Auth"},
		LinkedIssues:      []models.LinkedIssue{{Key: "PROJ-5", Summary: "DB", LinkType: "Blocks", Direction: "blocks"}},
		AdditionalTickets: []models.Ticket{{Key: "CORE-2", Summary: "Core"}},
	})

	want := "## Description\n\nAdd login\n\nDetails.\n\n" +
		"## Jira References\n\n" +
		"- **Ticket:** [PROJ-1](https://acme.atlassian.net/browse/PROJ-1) - Login\n" +
		"- **Ticket:** [CORE-2](https://acme.atlassian.net/browse/CORE-2) - Core\n" +
		"- **Epic:** [PROJ-0](https://acme.atlassian.net/browse/PROJ-0) - Auth\n\n" +
		"## Related Issues\n\n" +
		"- [PROJ-5](https://acme.atlassian.net/browse/PROJ-5) - DB (blocks)\n"

	assert.Equal(t, want, body)
}

func TestFormatBody_SectionOrder(t *testing.T) {
	body := FormatBody(BodyInput{
		Description:  "desc",
		Ticket:       models.Ticket{Key: "PROJ-1", Summary: "Login"},
		JiraBaseURL:  baseURL,
		LinkedIssues: []models.LinkedIssue{{Key: "PROJ-5", Summary: "DB", Direction: "blocks"}},
	})

	description := strings.Index(body, "## Description")
	references := strings.Index(body, "## Jira References")
	related := strings.Index(body, "## Related Issues")

	assert.True(t, description >= 0 && description < references && references < related, body)
}

func TestFormatBody_OmitsRelatedIssuesWhenEmpty(t *testing.T) {
	for name, linked := range map[string][]models.LinkedIssue{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			body := FormatBody(BodyInput{
				Description:  "desc",
				Ticket:       models.Ticket{Key: "PROJ-1", Summary: "Login"},
				JiraBaseURL:  baseURL,
				LinkedIssues: linked,
			})

			assert.NotContains(t, body, "## Related Issues")
			assert.True(t, strings.HasSuffix(body, "- **Ticket:** [PROJ-1](https://acme.atlassian.net/browse/PROJ-1) - Login\n"))
		})
	}
}

func TestFormatBody_OmitsEmptyDescription(t *testing.T) {
	body := FormatBody(BodyInput{
		Description: "  \n\t",
		Ticket:      models.Ticket{Key: "PROJ-1", Summary: "Login"},
		JiraBaseURL: baseURL,
	})

	assert.NotContains(t, body, "## Description")
	assert.True(t, strings.HasPrefix(body, "## Jira References\n\n"))
}

func TestFormatBody_ReferenceOrder(t *testing.T) {
	body := FormatBody(BodyInput{
		Description: "desc",
		Ticket:      models.Ticket{Key: "PROJ-1", Summary: "Main"},
		JiraBaseURL: baseURL,
		Epic:        &models.Epic{Key: "PROJ-0", Summary: "Epic"},
		AdditionalTickets: []models.Ticket{
			{Key: "CORE-9", Summary: "Second"},
			{Key: "CORE-3", Summary: "Third"},
		},
	})

	main := strings.Index(body, "[PROJ-1]")
	second := strings.Index(body, "[CORE-9]")
	third := strings.Index(body, "[CORE-3]")
	epic := strings.Index(body, "**Epic:** [PROJ-0]")

	assert.True(t, main < second && second < third && third < epic, body)
}

func TestFormatBody_DirectionFallback(t *testing.T) {
	tests := []struct {
		name  string
		issue models.LinkedIssue
		want  string
	}{
		{name: "direction", issue: models.LinkedIssue{Key: "A-1", Summary: "s", LinkType: "Blocks", Direction: "is blocked by"}, want: "(is blocked by)"},
		{name: "link type", issue: models.LinkedIssue{Key: "A-1", Summary: "s", LinkType: "Relates"}, want: "(Relates)"},
		{name: "literal fallback", issue: models.LinkedIssue{Key: "A-1", Summary: "s"}, want: "(related to)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := FormatBody(BodyInput{
				Ticket:       models.Ticket{Key: "PROJ-1", Summary: "Main"},
				JiraBaseURL:  baseURL,
				LinkedIssues: []models.LinkedIssue{tt.issue},
			})

			assert.Contains(t, body, "- [A-1](https://acme.atlassian.net/browse/A-1) - s "+tt.want)
		})
	}
}

func TestIssueURL(t *testing.T) {
	assert.Equal(t, "https://acme.atlassian.net/browse/PROJ-1", IssueURL(baseURL, "PROJ-1"))
}
