package formatter

import "strings"

const (
	titleBudget      = 60
	titleOverhead    = 5 // "[" + "] - " and a one character buffer
	ellipsis         = "..."
	ticketsSeparator = " - "
)

// FormatTitle renders "[PROJ-123] - Summary", or "[PROJ-123 - PROJ-456] - Summary"
// when additional tickets are referenced. Only the summary is truncated so the
// title stays close to GitHub's 72 character guideline.
//
// The summary budget is 60 - len(prefix) - 5. Many additional keys can drive
// it to zero or below; the cut then counts from the end of the summary, the
// same way a negative slice bound does.
func FormatTitle(ticketKey, summary string, additionalKeys []string) string {
	prefix := strings.Join(append([]string{ticketKey}, additionalKeys...), ticketsSeparator)

	maxSummaryLen := titleBudget - len([]rune(prefix)) - titleOverhead
	runes := []rune(summary)
	if len(runes) > maxSummaryLen {
		summary = string(runes[:sliceEnd(len(runes), maxSummaryLen-len(ellipsis))]) + ellipsis
	}

	return "[" + prefix + "]" + ticketsSeparator + summary
}

// sliceEnd resolves a possibly negative slice bound against a length.
func sliceEnd(length, end int) int {
	if end < 0 {
		end += length
	}
	if end < 0 {
		return 0
	}
	if end > length {
		return length
	}
	return end
}
