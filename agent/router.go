package agent

import (
	"strings"
)

// Keyword classes for intent scoring. A message's class score is a naive
// substring count: each listed keyword found anywhere in the lower-cased
// message adds one, so overlapping entries ("attendee"/"attendees") can both
// fire on a single word. The decision rule below is tuned to these exact
// scores.
var (
	schedulingKeywords = []string{
		"schedule", "session", "speaker", "event", "time", "date",
		"july", "room", "track", "when", "what time",
	}
	networkingKeywords = []string{
		"attendee", "people", "business", "company", "network",
		"connect", "find", "who", "attendees", "businesses",
	}
)

// IntentRouter decides whether the entry agent should hand a message off to
// a specialist. Specialist agents never self-route.
type IntentRouter struct {
	entry      string
	scheduling string
	networking string
}

// NewIntentRouter wires the router to the three agent names it arbitrates
// between.
func NewIntentRouter(entry, scheduling, networking string) *IntentRouter {
	return &IntentRouter{entry: entry, scheduling: scheduling, networking: networking}
}

// Route returns the handoff target for the message, or "" to stay with the
// current agent. The decision rule is asymmetric and must stay that way:
// scheduling wins only on a strictly higher nonzero score; any remaining
// nonzero networking score wins otherwise, so a nonzero tie goes to
// networking and all-zero stays put.
func (r *IntentRouter) Route(agentName, message string) string {
	if agentName != r.entry {
		return ""
	}

	lower := strings.ToLower(message)
	scheduleScore := classScore(lower, schedulingKeywords)
	networkingScore := classScore(lower, networkingKeywords)

	if scheduleScore > networkingScore && scheduleScore > 0 {
		return r.scheduling
	}
	if networkingScore > 0 {
		return r.networking
	}
	return ""
}

func classScore(lower string, keywords []string) int {
	score := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			score++
		}
	}
	return score
}
