package news

import (
	"strings"
	"unicode/utf8"
)

// Headline formatting limits.
const (
	MaxHeadlines      = 3
	MaxHeadlineLength = 90

	sourceSeparator = " - "
	ellipsis        = "..."
)

// FallbackSummary is returned when fewer than two headlines are available.
const FallbackSummary = "No major updates right now."

// Clean trims raw titles for display. Each title is cut before the first
// " - " (the "Title - Source" convention), capped at MaxHeadlineLength runes
// with a trailing ellipsis, and at most MaxHeadlines are returned in order.
func Clean(headlines []string) []string {
	n := min(len(headlines), MaxHeadlines)
	cleaned := make([]string, 0, n)

	for _, h := range headlines[:n] {
		if i := strings.Index(h, sourceSeparator); i >= 0 {
			h = h[:i]
		}
		if utf8.RuneCountInString(h) > MaxHeadlineLength {
			h = truncateRunes(h, MaxHeadlineLength-len(ellipsis)) + ellipsis
		}
		cleaned = append(cleaned, h)
	}

	return cleaned
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Summarize renders the first two headlines as a one-line update.
func Summarize(headlines []string, label string) string {
	if len(headlines) < 2 {
		return FallbackSummary
	}
	return label + " update: " + headlines[0] + " and " + headlines[1] + "."
}
