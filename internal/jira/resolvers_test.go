package jira

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/models"
)

type fakeFetcher struct {
	issues map[string]*Issue
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) GetIssue(_ context.Context, key string) (*Issue, error) {
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if issue, ok := f.issues[key]; ok {
		return issue, nil
	}
	return nil, domainErrors.ErrIssueNotFound.WithContext("ticket", key)
}

func rawLinks(t *testing.T, links ...string) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(links))
	for _, l := range links {
		out = append(out, json.RawMessage(l))
	}
	return out
}

func TestResolveEpic(t *testing.T) {
	t.Run("parent of type Epic wins", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key:          "PROJ-123",
				Parent:       &ParentIssue{Key: "PROJ-1", Summary: "Auth epic", IssueType: "Epic"},
				CustomFields: map[string]any{"customfield_10014": "PROJ-50"},
			},
		}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		require.False(t, res.Unavailable())
		assert.Equal(t, &models.Epic{Key: "PROJ-1", Summary: "Auth epic"}, res.Value)
		assert.Equal(t, []string{"PROJ-123"}, fetcher.calls)
	})

	t.Run("non-epic parent falls through to the Epic Link field", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key:          "PROJ-123",
				Parent:       &ParentIssue{Key: "PROJ-7", Summary: "A story", IssueType: "Story"},
				CustomFields: map[string]any{"customfield_10014": "PROJ-1"},
				FieldNames:   map[string]string{"customfield_10014": "Epic Link"},
			},
			"PROJ-1": {Key: "PROJ-1", Summary: "Auth epic", IssueType: "Epic"},
		}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		require.False(t, res.Unavailable())
		assert.Equal(t, &models.Epic{Key: "PROJ-1", Summary: "Auth epic"}, res.Value)
	})

	t.Run("field id mentioning epic qualifies without display names", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key:          "PROJ-123",
				CustomFields: map[string]any{"customfield_epic_ref": "PROJ-2"},
			},
			"PROJ-2": {Key: "PROJ-2", Summary: "Billing"},
		}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		assert.Equal(t, &models.Epic{Key: "PROJ-2", Summary: "Billing"}, res.Value)
	})

	t.Run("non string and unrelated fields are ignored", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key: "PROJ-123",
				CustomFields: map[string]any{
					"customfield_10014": map[string]any{"key": "PROJ-1"},
					"customfield_10020": "PROJ-3",
				},
				FieldNames: map[string]string{
					"customfield_10014": "Epic Link",
					"customfield_10020": "Sprint",
				},
			},
		}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		assert.False(t, res.Unavailable())
		assert.Nil(t, res.Value)
		assert.Equal(t, []string{"PROJ-123"}, fetcher.calls)
	})

	t.Run("failed candidate fetch continues the scan", func(t *testing.T) {
		fetcher := &fakeFetcher{
			issues: map[string]*Issue{
				"PROJ-123": {
					Key: "PROJ-123",
					CustomFields: map[string]any{
						"customfield_10010": "PROJ-404",
						"customfield_10014": "PROJ-1",
					},
					FieldNames: map[string]string{
						"customfield_10010": "Epic Name",
						"customfield_10014": "Epic Link",
					},
				},
				"PROJ-1": {Key: "PROJ-1", Summary: "Auth epic"},
			},
		}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		assert.Equal(t, &models.Epic{Key: "PROJ-1", Summary: "Auth epic"}, res.Value)
		assert.Equal(t, []string{"PROJ-123", "PROJ-404", "PROJ-1"}, fetcher.calls)
	})

	t.Run("no epic anywhere", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {Key: "PROJ-123", CustomFields: map[string]any{}},
		}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		assert.False(t, res.Unavailable())
		assert.Nil(t, res.Value)
	})

	t.Run("primary fetch failure is unavailable, not an error", func(t *testing.T) {
		boom := errors.New("network down")
		fetcher := &fakeFetcher{errs: map[string]error{"PROJ-123": boom}}

		res := ResolveEpic(context.Background(), fetcher, "PROJ-123")

		assert.True(t, res.Unavailable())
		assert.ErrorIs(t, res.Err, boom)
		assert.Nil(t, res.Value)
	})
}

func TestResolveLinks(t *testing.T) {
	t.Run("outward and inward links in API order", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key: "PROJ-123",
				Links: rawLinks(t,
					`{"type":{"name":"Blocks","inward":"is blocked by","outward":"blocks"},"outwardIssue":{"key":"PROJ-200","fields":{"summary":"Deploy"}}}`,
					`{"type":{"name":"Relates","inward":"relates to","outward":"relates to"},"inwardIssue":{"key":"PROJ-100","fields":{"summary":"Spike"}}}`,
				),
			},
		}}

		res := ResolveLinks(context.Background(), fetcher, "PROJ-123")

		require.False(t, res.Unavailable())
		assert.Equal(t, []models.LinkedIssue{
			{Key: "PROJ-200", Summary: "Deploy", LinkType: "Blocks", Direction: "blocks"},
			{Key: "PROJ-100", Summary: "Spike", LinkType: "Relates", Direction: "relates to"},
		}, res.Value)
	})

	t.Run("inward link uses the inward phrase", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key: "PROJ-123",
				Links: rawLinks(t,
					`{"type":{"name":"Blocks","inward":"is blocked by","outward":"blocks"},"inwardIssue":{"key":"PROJ-9","fields":{"summary":"Schema"}}}`,
				),
			},
		}}

		res := ResolveLinks(context.Background(), fetcher, "PROJ-123")

		require.Len(t, res.Value, 1)
		assert.Equal(t, "is blocked by", res.Value[0].Direction)
	})

	t.Run("zero links gives an empty non-nil list", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{"PROJ-123": {Key: "PROJ-123"}}}

		res := ResolveLinks(context.Background(), fetcher, "PROJ-123")

		assert.False(t, res.Unavailable())
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})

	t.Run("malformed links are skipped", func(t *testing.T) {
		fetcher := &fakeFetcher{issues: map[string]*Issue{
			"PROJ-123": {
				Key: "PROJ-123",
				Links: rawLinks(t,
					`"not an object"`,
					`{"type":{"name":"Blocks"}}`,
					`{"type":{"name":"Blocks","outward":"blocks"},"outwardIssue":{"fields":{"summary":"no key"}}}`,
					`{"type":{"name":"Clones","inward":"is cloned by","outward":"clones"},"outwardIssue":{"key":"PROJ-5","fields":{"summary":"Copy"}}}`,
				),
			},
		}}

		res := ResolveLinks(context.Background(), fetcher, "PROJ-123")

		assert.Equal(t, []models.LinkedIssue{
			{Key: "PROJ-5", Summary: "Copy", LinkType: "Clones", Direction: "clones"},
		}, res.Value)
	})

	t.Run("fetch failure is unavailable with an empty list", func(t *testing.T) {
		fetcher := &fakeFetcher{errs: map[string]error{"PROJ-123": errors.New("timeout")}}

		res := ResolveLinks(context.Background(), fetcher, "PROJ-123")

		assert.True(t, res.Unavailable())
		assert.NotNil(t, res.Value)
		assert.Empty(t, res.Value)
	})
}
