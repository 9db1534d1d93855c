package guardrails

import (
	"context"
	"strings"

	"github.com/quorumhq/concierge/types"
)

// RelevanceName is the registry key of the relevance guardrail.
const RelevanceName = "relevance_guardrail"

// conferenceKeywords marks a message as relevant to conference assistance.
var conferenceKeywords = []string{
	"conference", "session", "speaker", "schedule", "event", "attendee", "networking",
	"business", "company", "organization", "track", "room", "time", "date",
	"july", "presentation", "talk", "workshop", "meeting", "registration",
	"participant", "delegate", "agenda", "program", "venue", "location",
}

// greetingPatterns also count as relevant so basic questions get through.
var greetingPatterns = []string{
	"hello", "hi", "help", "what", "how", "when", "where", "who", "can you",
}

// Relevance passes messages that mention conference topics or read like a
// greeting or basic question.
type Relevance struct{}

// NewRelevance creates the relevance guardrail.
func NewRelevance() *Relevance {
	return &Relevance{}
}

func (r *Relevance) Name() string { return RelevanceName }

func (r *Relevance) Check(_ context.Context, _ *types.Profile, message string) (Result, error) {
	lower := strings.ToLower(message)

	relevant := containsAny(lower, conferenceKeywords) || containsAny(lower, greetingPatterns)

	reasoning := "User input is not related to conference topics"
	if relevant {
		reasoning = "User input is relevant to conference assistance"
	}

	return Result{Passed: relevant, Reasoning: reasoning}, nil
}

func containsAny(lower string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}
