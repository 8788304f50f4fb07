package jira

import (
	"context"
	"strings"

	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
)

const epicIssueType = "Epic"

// ResolveEpic finds the epic a ticket belongs to.
//
// Next-gen projects expose the epic as a typed parent. Classic projects store
// the epic key in a custom field whose id varies per instance (commonly
// customfield_10014, displayed as "Epic Link"), so every custom field whose id
// or display name mentions "epic" and holds a plain string is tried in id
// order. Lookup failures never propagate: a failed fetch of the ticket itself
// comes back as an unavailable resolution, a failed fetch of a candidate key
// moves on to the next field.
func ResolveEpic(ctx context.Context, fetcher IssueFetcher, key string) models.Resolution[*models.Epic] {
	log := logger.FromContext(ctx)

	issue, err := fetcher.GetIssue(ctx, key)
	if err != nil {
		log.Debug("epic lookup unavailable", "ticket", key, "error", err)
		return models.Unavailable[*models.Epic](nil, err)
	}

	if parent := issue.Parent; parent != nil && parent.IssueType == epicIssueType {
		log.Debug("epic found in parent", "ticket", key, "epic", parent.Key)
		return models.Resolved(&models.Epic{Key: parent.Key, Summary: parent.Summary})
	}

	for _, fieldID := range issue.epicFieldCandidates() {
		epicKey, ok := issue.CustomFields[fieldID].(string)
		if !ok || epicKey == "" {
			continue
		}

		epicIssue, err := fetcher.GetIssue(ctx, epicKey)
		if err != nil {
			log.Debug("epic candidate could not be fetched",
				"ticket", key,
				"field", fieldID,
				"epic", epicKey,
				"error", err)
			continue
		}

		resolvedKey := epicIssue.Key
		if resolvedKey == "" {
			resolvedKey = epicKey
		}
		log.Debug("epic found in custom field", "ticket", key, "field", fieldID, "epic", resolvedKey)
		return models.Resolved(&models.Epic{Key: resolvedKey, Summary: epicIssue.Summary})
	}

	return models.Resolved[*models.Epic](nil)
}

// epicFieldCandidates lists, in id order, the custom fields that may hold an
// epic key.
func (i *Issue) epicFieldCandidates() []string {
	var candidates []string
	for _, id := range i.CustomFieldIDs() {
		if mentionsEpic(id) || mentionsEpic(i.FieldNames[id]) {
			candidates = append(candidates, id)
		}
	}
	return candidates
}

func mentionsEpic(name string) bool {
	return strings.Contains(strings.ToLower(name), "epic")
}
