package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTitle(t *testing.T) {
	longSummary := "A very long summary exceeding the sixty character budget for titles"
	fiveMore := []string{"PROJ-2", "PROJ-3", "PROJ-4", "PROJ-5", "PROJ-6"}
	sixMore := append(append([]string{}, fiveMore...), "PROJ-7")

	tests := []struct {
		name       string
		key        string
		summary    string
		additional []string
		want       string
	}{
		{
			name:    "short summary is kept",
			key:     "PROJ-123",
			summary: "Fix the thing",
			want:    "[PROJ-123] - Fix the thing",
		},
		{
			name:       "additional keys join the prefix",
			key:        "PROJ-123",
			summary:    "Fix the thing",
			additional: []string{"PROJ-456"},
			want:       "[PROJ-123 - PROJ-456] - Fix the thing",
		},
		{
			name:    "long summary is truncated with ellipsis",
			key:     "PROJ-1",
			summary: longSummary,
			want:    "[PROJ-1] - A very long summary exceeding the sixty charac...",
		},
		{
			name:    "summary exactly at budget is kept",
			key:     "PROJ-1",
			summary: strings.Repeat("x", 49),
			want:    "[PROJ-1] - " + strings.Repeat("x", 49),
		},
		{
			name:    "summary one over budget is cut",
			key:     "PROJ-1",
			summary: strings.Repeat("x", 50),
			want:    "[PROJ-1] - " + strings.Repeat("x", 46) + "...",
		},
		{
			name:       "tiny budget leaves a single character",
			key:        "PROJ-1",
			summary:    "Fix the thing",
			additional: fiveMore,
			want:       "[PROJ-1 - PROJ-2 - PROJ-3 - PROJ-4 - PROJ-5 - PROJ-6] - F...",
		},
		{
			name:       "negative budget counts the cut from the end",
			key:        "PROJ-1",
			summary:    "Fix the thing",
			additional: sixMore,
			want:       "[PROJ-1 - PROJ-2 - PROJ-3 - PROJ-4 - PROJ-5 - PROJ-6 - PROJ-7] - Fix t...",
		},
		{
			name:       "negative budget on a short summary yields only the ellipsis",
			key:        "PROJ-1",
			summary:    "abc",
			additional: sixMore,
			want:       "[PROJ-1 - PROJ-2 - PROJ-3 - PROJ-4 - PROJ-5 - PROJ-6 - PROJ-7] - ...",
		},
		{
			name:    "multibyte summary is cut on characters",
			key:     "PROJ-1",
			summary: strings.Repeat("ñ", 50),
			want:    "[PROJ-1] - " + strings.Repeat("ñ", 46) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTitle(tt.key, tt.summary, tt.additional))
		})
	}
}

func TestFormatTitle_SummaryLengthWithinBudget(t *testing.T) {
	title := FormatTitle("PROJ-1", "A very long summary exceeding the sixty character budget for titles", nil)

	summary := strings.TrimPrefix(title, "[PROJ-1] - ")
	assert.True(t, strings.HasSuffix(summary, "..."))
	assert.LessOrEqual(t, len(summary), 60-len("PROJ-1")-5)
	assert.LessOrEqual(t, len(title), 72)
}

func TestFormatTitle_DoesNotMutateAdditionalKeys(t *testing.T) {
	additional := make([]string, 1, 4)
	additional[0] = "PROJ-2"

	_ = FormatTitle("PROJ-1", "Summary", additional)

	assert.Equal(t, []string{"PROJ-2"}, additional)
}

func TestSliceEnd(t *testing.T) {
	assert.Equal(t, 3, sliceEnd(10, 3))
	assert.Equal(t, 8, sliceEnd(10, -2))
	assert.Equal(t, 0, sliceEnd(3, -8))
	assert.Equal(t, 10, sliceEnd(10, 12))
	assert.Equal(t, 0, sliceEnd(0, 0))
}
