package regex

import "regexp"

var (
	// Ticket patterns
	JiraTicket      = regexp.MustCompile(`[A-Z][A-Z0-9]+-\d+`)
	JiraTicketExact = regexp.MustCompile(`^[A-Z][A-Z0-9]+-\d+$`)

	// Git and Repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)

	// Push output
	EverythingUpToDate = regexp.MustCompile(`(?i)Everything up-to-date`)
)
