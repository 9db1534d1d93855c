package agent

import (
	"fmt"

	"github.com/quorumhq/concierge/types"
)

// InstructionSource produces the natural-language system prompt for an agent
// identity. The orchestrator never inspects the output; it only forwards it
// to whatever generates response text.
type InstructionSource interface {
	Instructions(profile *types.Profile, agentName string) string
}

// FallbackSource optionally supplies the reply an agent gives when a turn
// produces neither a handoff nor a tool result.
type FallbackSource interface {
	Fallback(profile *types.Profile, agentName string) string
}

// ConferenceInstructions renders the per-agent prompts for the conference
// roster, personalized from the profile.
type ConferenceInstructions struct {
	Entry      string
	Scheduling string
	Networking string
}

func (c *ConferenceInstructions) Instructions(profile *types.Profile, agentName string) string {
	userName := "Attendee"
	if profile != nil && profile.Name != "" {
		userName = profile.Name
	}
	conference := "Business Conference 2025"
	if profile != nil && profile.ConferenceName != "" {
		conference = profile.ConferenceName
	}

	switch agentName {
	case c.Scheduling:
		return fmt.Sprintf(
			"You are a Conference Schedule Agent. Help attendees find information about "+
				"conference sessions, speakers, schedules, and events.\nCurrent user: %s\n"+
				"The conference is on July 15-16, 2025. Use the schedule lookup for every "+
				"question; pass natural language queries through unchanged. If the user asks "+
				"unrelated questions, transfer back to the triage agent.",
			userName,
		)
	case c.Networking:
		return fmt.Sprintf(
			"You are a Networking Agent. Help attendees connect with other participants "+
				"and explore business opportunities.\nCurrent user: %s\n"+
				"Search attendees and businesses on request, and show the registration form "+
				"when the user wants to add their business. If the user asks unrelated "+
				"questions, transfer back to the triage agent.",
			userName,
		)
	default:
		return fmt.Sprintf(
			"You are a Conference Triage Agent for %s. Welcome %s!\n"+
				"Route schedule and session questions to the Schedule Agent, and people, "+
				"company, and networking questions to the Networking Agent. Politely "+
				"redirect unrelated questions to conference topics.",
			conference, userName,
		)
	}
}

// Fallback is the greeting shown when a turn yields no handoff and no tool
// result. In practice only the entry agent reaches this path; both
// specialists dispatch a tool on every message.
func (c *ConferenceInstructions) Fallback(_ *types.Profile, agentName string) string {
	switch agentName {
	case c.Scheduling, c.Networking:
		return "I'm here to help! Please let me know what you'd like to know."
	default:
		return "Hello! I'm here to help you with conference information. " +
			"I can help you find:\n\n" +
			"🗓️ **Schedule & Sessions** - Ask about speakers, events, times, or rooms\n" +
			"🤝 **Networking** - Find attendees, businesses, or register your company\n\n" +
			"What would you like to know about the conference?"
	}
}
