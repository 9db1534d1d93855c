package textparse

import (
	"regexp"
	"strings"
	"time"
)

// SearchTerms holds filters recognized in a free-text schedule query.
// Empty strings mean the term was not present.
type SearchTerms struct {
	Speaker string
	Room    string
	Track   string
	Topic   string
	Date    time.Time
	HasDate bool
}

var speakerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:by|speaker|presented by|talk by)\s+([a-zA-Z\s]+?)(?:\s|$|,|\.|;)`),
	regexp.MustCompile(`([a-zA-Z\s]+?)(?:\s+is\s+speaking|\s+speaking|\s+presentation)`),
	regexp.MustCompile(`speaker\s*:\s*([a-zA-Z\s]+?)(?:\s|$|,|\.|;)`),
}

var roomPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:in|at|room)\s+(room\s*[a-zA-Z0-9]+|[a-zA-Z0-9]+\s*room|hall\s*[a-zA-Z0-9]+|[a-zA-Z0-9]+\s*hall)`),
	regexp.MustCompile(`room\s*:\s*([a-zA-Z0-9\s]+?)(?:\s|$|,|\.|;)`),
}

var trackPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:track|stream)\s+([a-zA-Z\s]+?)(?:\s|$|,|\.|;)`),
	regexp.MustCompile(`([a-zA-Z\s]+?)\s+track`),
}

var topicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:about|on|topic|subject)\s+([a-zA-Z\s]+?)(?:\s|$|,|\.|;)`),
	regexp.MustCompile(`session\s+on\s+([a-zA-Z\s]+?)(?:\s|$|,|\.|;)`),
}

// firstMatch returns the first captured group across patterns whose trimmed
// value is longer than minLen, or "".
func firstMatch(text string, patterns []*regexp.Regexp, minLen int) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if len(v) > minLen {
			return v
		}
	}
	return ""
}

// ExtractSearchTerms pulls schedule filters out of a natural language query.
// Matching is intentionally loose: these feed LIKE-style directory lookups,
// not exact keys.
func ExtractSearchTerms(text string) SearchTerms {
	text = strings.ToLower(strings.TrimSpace(text))

	terms := SearchTerms{
		Speaker: firstMatch(text, speakerPatterns, 2),
		Track:   firstMatch(text, trackPatterns, 2),
		Topic:   firstMatch(text, topicPatterns, 2),
	}

	// Room names can be short ("A1"), so no minimum length there.
	for _, re := range roomPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			terms.Room = strings.TrimSpace(m[1])
			break
		}
	}

	if d, ok := ParseDate(text); ok {
		terms.Date = d
		terms.HasDate = true
	}

	return terms
}
