package models

type ProgressEventType string

const (
	ProgressBranchResolved   ProgressEventType = "branch_resolved"
	ProgressExistingPR       ProgressEventType = "existing_pr"
	ProgressFetchingTicket   ProgressEventType = "fetching_ticket"
	ProgressTicketFetched    ProgressEventType = "ticket_fetched"
	ProgressEpicFound        ProgressEventType = "epic_found"
	ProgressLinksFound       ProgressEventType = "links_found"
	ProgressAdditionalTicket ProgressEventType = "additional_ticket"
	ProgressPushing          ProgressEventType = "pushing"
	ProgressPushed           ProgressEventType = "pushed"
	ProgressPushWarning      ProgressEventType = "push_warning"
	ProgressCreatingPR       ProgressEventType = "creating_pr"
)

type ProgressEvent struct {
	Type    ProgressEventType
	Message string
	Data    map[string]interface{}
}

// PROutcome is how a pr run terminated successfully.
type PROutcome string

const (
	OutcomeCreated  PROutcome = "created"
	OutcomeExisting PROutcome = "existing"
	OutcomeDryRun   PROutcome = "dry_run"
)

type (
	// PRContent is the rendered title and body of a pull request.
	PRContent struct {
		Title string
		Body  string
	}

	// PullRequest identifies a pull request on the hosting service.
	PullRequest struct {
		Number int    `json:"number"`
		URL    string `json:"url"`
		Title  string `json:"title"`
	}

	// PRRequest is what the hosting service needs to open a pull request.
	PRRequest struct {
		Title string
		Body  string
		Base  string
		Head  string
	}

	// PRResult is the terminal state of a successful pr run.
	PRResult struct {
		Outcome           PROutcome
		Branch            string
		TicketKey         string
		Content           PRContent
		PullRequest       *PullRequest
		Ticket            *Ticket
		Epic              *Epic
		LinkedIssues      []LinkedIssue
		AdditionalTickets []Ticket
		Warnings          []string
	}
)
