package models

// Ticket is the snapshot of a Jira issue fetched once per run.
type Ticket struct {
	Key         string `json:"key"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
	IssueType   string `json:"issue_type"`
}

// Epic is the parent epic of a ticket, when it has one.
type Epic struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// LinkedIssue is another issue connected to a ticket through a typed link.
// Direction holds the human-readable phrase ("blocks", "is blocked by"),
// LinkType the raw relationship name ("Blocks").
type LinkedIssue struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	LinkType  string `json:"link_type"`
	Direction string `json:"direction"`
}
