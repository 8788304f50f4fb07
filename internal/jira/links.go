package jira

import (
	"context"
	"encoding/json"

	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
)

type (
	issueLink struct {
		Type         issueLinkType   `json:"type"`
		InwardIssue  *linkedIssueRef `json:"inwardIssue"`
		OutwardIssue *linkedIssueRef `json:"outwardIssue"`
	}

	issueLinkType struct {
		Name    string `json:"name"`
		Inward  string `json:"inward"`
		Outward string `json:"outward"`
	}

	linkedIssueRef struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
		} `json:"fields"`
	}
)

// ResolveLinks lists the issues linked to a ticket in API order. Each link
// record points either outward (the ticket "blocks" the other issue) or
// inward (the ticket "is blocked by" it) and the matching phrase becomes the
// direction. Records that cannot be read are skipped.
func ResolveLinks(ctx context.Context, fetcher IssueFetcher, key string) models.Resolution[[]models.LinkedIssue] {
	log := logger.FromContext(ctx)

	issue, err := fetcher.GetIssue(ctx, key)
	if err != nil {
		log.Debug("linked issues unavailable", "ticket", key, "error", err)
		return models.Unavailable([]models.LinkedIssue{}, err)
	}

	linked := make([]models.LinkedIssue, 0, len(issue.Links))
	for idx, raw := range issue.Links {
		item, ok := parseLink(raw)
		if !ok {
			log.Debug("skipping unreadable issue link", "ticket", key, "index", idx)
			continue
		}
		linked = append(linked, item)
	}

	return models.Resolved(linked)
}

func parseLink(raw json.RawMessage) (models.LinkedIssue, bool) {
	var link issueLink
	if err := json.Unmarshal(raw, &link); err != nil {
		return models.LinkedIssue{}, false
	}

	var (
		target    *linkedIssueRef
		direction string
	)
	switch {
	case link.OutwardIssue != nil:
		target, direction = link.OutwardIssue, link.Type.Outward
	case link.InwardIssue != nil:
		target, direction = link.InwardIssue, link.Type.Inward
	default:
		return models.LinkedIssue{}, false
	}

	if target.Key == "" {
		return models.LinkedIssue{}, false
	}

	return models.LinkedIssue{
		Key:       target.Key,
		Summary:   target.Fields.Summary,
		LinkType:  link.Type.Name,
		Direction: direction,
	}, true
}
