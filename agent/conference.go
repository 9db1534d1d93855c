package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent/guardrails"
	"github.com/quorumhq/concierge/capability"
	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/types"
)

// Conference roster names. These are stable identifiers: they appear in
// stored conversations, handoff events, and the public agent listing.
const (
	TriageAgentName     = "Triage Agent"
	ScheduleAgentName   = "Schedule Agent"
	NetworkingAgentName = "Networking Agent"
)

// Tool names as exposed in the agent roster.
const (
	ToolUserInfo         = "get_user_info"
	ToolSchedule         = "get_conference_schedule"
	ToolSearchAttendees  = "search_attendees"
	ToolSearchBusinesses = "search_businesses"
	ToolUserBusinesses   = "get_user_businesses"
	ToolDisplayForm      = "display_business_form"
	ToolAddBusiness      = "add_business"
	ToolOrganizationInfo = "get_organization_info"
)

// Roster bundles everything the orchestrator needs for the conference
// assistant: the validated agent graph, the entry agent's intent router,
// the per-agent tool tables, and the guardrail pipeline.
type Roster struct {
	Registry     *Registry
	Router       *IntentRouter
	Dispatcher   *Dispatcher
	Guardrails   *guardrails.Pipeline
	Instructions InstructionSource
}

// RosterConfig tunes roster construction.
type RosterConfig struct {
	// ToolTimeout bounds each capability call.
	ToolTimeout time.Duration
	// GuardrailFailOpen keeps the turn alive when a guardrail predicate
	// itself errors.
	GuardrailFailOpen bool
}

// NewConferenceRoster wires the three-agent conference assistant over the
// directory. Graph validation happens in NewRegistry, so a bad edge fails
// here at startup.
func NewConferenceRoster(store *directory.Store, cfg RosterConfig, logger *zap.Logger) (*Roster, error) {
	registry, err := NewRegistry(TriageAgentName,
		Agent{
			Name:        TriageAgentName,
			Description: "Main entry point for conference assistance",
			Guardrails:  []string{guardrails.RelevanceName, guardrails.SafetyName},
			Tools:       []string{ToolUserInfo},
			Handoffs:    []string{ScheduleAgentName, NetworkingAgentName},
		},
		Agent{
			Name:        ScheduleAgentName,
			Description: "An agent to provide conference schedule information and help find sessions.",
			Tools:       []string{ToolSchedule},
			Handoffs:    []string{TriageAgentName},
		},
		Agent{
			Name:        NetworkingAgentName,
			Description: "An agent to help with networking, finding attendees, and business connections.",
			Tools: []string{
				ToolSearchAttendees, ToolSearchBusinesses, ToolUserBusinesses,
				ToolDisplayForm, ToolAddBusiness, ToolOrganizationInfo,
			},
			Handoffs: []string{TriageAgentName},
		},
	)
	if err != nil {
		return nil, err
	}

	pipeline, err := guardrails.NewPipeline(cfg.GuardrailFailOpen, logger,
		guardrails.NewRelevance(),
		guardrails.NewSafety(),
	)
	if err != nil {
		return nil, err
	}

	dispatcher := NewDispatcher(cfg.ToolTimeout, logger)
	dispatcher.Register(ScheduleAgentName,
		Rule{Tool: ToolSchedule, Run: capability.NewScheduleLookup(store)},
	)
	dispatcher.Register(NetworkingAgentName,
		Rule{Tool: ToolDisplayForm, Match: MatchRegistrationPhrase, Run: capability.DisplayBusinessForm},
		Rule{Tool: ToolAddBusiness, Match: MatchBusinessSubmission, Run: capability.NewRegisterBusiness(store)},
		Rule{Tool: ToolSearchAttendees, Run: capability.NewAttendeeSearch(store)},
	)

	return &Roster{
		Registry:   registry,
		Router:     NewIntentRouter(TriageAgentName, ScheduleAgentName, NetworkingAgentName),
		Dispatcher: dispatcher,
		Guardrails: pipeline,
		Instructions: &ConferenceInstructions{
			Entry:      TriageAgentName,
			Scheduling: ScheduleAgentName,
			Networking: NetworkingAgentName,
		},
	}, nil
}

// LoadProfile resolves an account identifier into profile fields before any
// guardrail runs. The identifier is tried as a registration id first, then
// as a QR code. A miss is not an error: the turn simply runs anonymous.
func LoadProfile(ctx context.Context, store *directory.Store, identifier string) *types.Profile {
	if identifier == "" || store == nil {
		return nil
	}

	user, err := store.UserByRegistrationID(ctx, identifier)
	if directory.IsNotFound(err) {
		user, err = store.UserByQRCode(ctx, identifier)
	}
	if err != nil {
		return nil
	}

	attendee := user.Attendee
	return &types.Profile{
		Name:           user.FullName(),
		UserID:         user.ID,
		AccountNumber:  user.RegistrationID,
		Email:          user.Email,
		Attendee:       &attendee,
		ConferenceName: user.ConferenceName,
		OrganizationID: user.OrganizationID,
	}
}
