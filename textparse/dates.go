// Package textparse extracts structured schedule filters from natural
// language queries: conference dates and speaker/room/track/topic terms.
package textparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The conference runs July 15-16, 2025. Bare ordinals and relative words
// are resolved against that window.
const (
	conferenceYear  = 2025
	conferenceMonth = time.July
)

type datePattern struct {
	re  *regexp.Regexp
	day int // capture group index holding the day
}

var datePatterns = []datePattern{
	// July 15th, July 15
	{regexp.MustCompile(`july\s+(\d{1,2})(?:st|nd|rd|th)?`), 1},
	// 15th July, 15 July
	{regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+july`), 1},
	// 2025-07-15, 2025/07/15
	{regexp.MustCompile(`2025[-/]07[-/](\d{1,2})`), 1},
	// 07-15-2025, 07/15/2025
	{regexp.MustCompile(`07[-/](\d{1,2})[-/]2025`), 1},
	// 15-07-2025, 15/07/2025
	{regexp.MustCompile(`(\d{1,2})[-/]07[-/]2025`), 1},
	// bare ordinal: "the 15th"
	{regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)`), 1},
}

// ParseDate extracts a conference date from free text. The second return
// value is false when the text contains nothing date-like.
func ParseDate(text string) (time.Time, bool) {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		day, err := strconv.Atoi(m[p.day])
		if err != nil || day < 1 || day > 31 {
			continue
		}
		return time.Date(conferenceYear, conferenceMonth, day, 0, 0, 0, 0, time.UTC), true
	}

	// Relative words resolve against the conference dates.
	if strings.Contains(text, "today") {
		return time.Date(conferenceYear, conferenceMonth, 15, 0, 0, 0, 0, time.UTC), true
	}
	if strings.Contains(text, "tomorrow") {
		return time.Date(conferenceYear, conferenceMonth, 16, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
