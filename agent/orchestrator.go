package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent/guardrails"
	"github.com/quorumhq/concierge/conversation"
	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/types"
)

// ApologyText replaces the reply when producing one failed unexpectedly.
const ApologyText = "I'm sorry, I encountered an error. Please try again."

// HandoffText announces a handoff; the placeholder is the target agent name.
const HandoffText = "I'll connect you with our %s who can help you with that. One moment please..."

// maxHandoffHops bounds delegation within one turn. A single hop covers the
// triage fan-out; specialists do not re-route.
const maxHandoffHops = 1

// Metrics receives turn-level counters. A nil Metrics is a no-op.
type Metrics interface {
	TurnCompleted(agent, outcome string, duration time.Duration)
	GuardrailRejected(guardrail string)
	HandoffPerformed(from, to string)
	ToolInvoked(agent, tool string)
}

// TurnRequest is one inbound user turn.
type TurnRequest struct {
	// ConversationID is empty for a new conversation.
	ConversationID string
	// Message is the raw user text.
	Message string
	// AccountIdentifier optionally identifies the user (registration id or
	// QR code); it is resolved before guardrails run.
	AccountIdentifier string
}

// TurnResult reports what one turn appended, plus the resulting state.
type TurnResult struct {
	ConversationID   string
	ActiveAgent      string
	Messages         []types.Message
	Events           []types.Event
	GuardrailRecords []types.GuardrailRecord
	Profile          types.Profile
}

// Orchestrator drives the per-turn state machine: profile load, guardrails,
// routing, tool dispatch, handoff, and the final atomic commit. All turn
// mutations are buffered in a delta and applied to the store in one step, so
// an abandoned or failed turn leaves the conversation untouched.
type Orchestrator struct {
	roster  *Roster
	store   conversation.Store
	users   *directory.Store
	metrics Metrics
	logger  *zap.Logger
}

// NewOrchestrator wires the turn engine. metrics may be nil.
func NewOrchestrator(roster *Roster, store conversation.Store, users *directory.Store, metrics Metrics, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		roster:  roster,
		store:   store,
		users:   users,
		metrics: metrics,
		logger:  logger.With(zap.String("component", "orchestrator")),
	}
}

// ProcessTurn runs one full turn. Turns for the same conversation are
// serialized by the store's per-conversation lock; turns for different
// conversations run concurrently.
func (o *Orchestrator) ProcessTurn(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	start := time.Now()

	id := req.ConversationID
	if id == "" {
		id = conversation.NewID()
	} else if _, ok, err := o.store.Get(ctx, id); err != nil {
		return nil, err
	} else if !ok {
		// A supplied id the store has never seen is discarded; the turn
		// starts a fresh conversation under a new identifier instead of
		// resurrecting an arbitrary token from the caller.
		id = conversation.NewID()
	}

	unlock := o.store.Lock(id)
	defer unlock()

	conv, err := o.store.GetOrCreate(ctx, id, o.roster.Registry.Entry().Name)
	if err != nil {
		return nil, err
	}

	active, ok := o.roster.Registry.Resolve(conv.ActiveAgent)
	if !ok {
		// A stored name missing from the registry falls back to the first
		// registered agent rather than failing the turn.
		active = o.roster.Registry.First()
		o.logger.Warn("stored active agent not registered, using fallback",
			zap.String("conversation_id", id),
			zap.String("stored", conv.ActiveAgent),
			zap.String("fallback", active.Name),
		)
	}

	profile := conv.Profile
	if req.AccountIdentifier != "" {
		if loaded := LoadProfile(ctx, o.users, req.AccountIdentifier); loaded != nil {
			profile = *loaded
		}
	}

	result, delta := o.runTurn(ctx, id, active, profile, req.Message)

	if delta != nil {
		if err := o.store.Commit(ctx, id, *delta); err != nil {
			return nil, err
		}
	}

	if o.metrics != nil {
		outcome := "completed"
		if delta == nil {
			outcome = "failed"
		} else if len(delta.GuardrailRecords) > 0 && !delta.GuardrailRecords[len(delta.GuardrailRecords)-1].Passed {
			outcome = "rejected"
		}
		o.metrics.TurnCompleted(result.ActiveAgent, outcome, time.Since(start))
	}

	return result, nil
}

// runTurn executes the guardrail/route/dispatch pipeline and buffers every
// mutation in the returned delta. A nil delta means nothing may be
// committed (the panic path).
func (o *Orchestrator) runTurn(ctx context.Context, id string, active Agent, profile types.Profile, message string) (result *TurnResult, delta *types.TurnDelta) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("turn execution panicked",
				zap.String("conversation_id", id),
				zap.String("agent", active.Name),
				zap.Any("panic", r),
			)
			result = &TurnResult{
				ConversationID: id,
				ActiveAgent:    active.Name,
				Messages:       []types.Message{types.NewAgentMessage(active.Name, ApologyText)},
				Profile:        profile,
			}
			delta = nil
		}
	}()

	delta = &types.TurnDelta{
		Messages: []types.Message{types.NewUserMessage(message)},
		Profile:  profile,
	}

	for hop := 0; ; hop++ {
		passed, records := o.roster.Guardrails.Evaluate(ctx, active.Guardrails, &profile, message)
		delta.GuardrailRecords = append(delta.GuardrailRecords, records...)
		if !passed {
			if o.metrics != nil && len(records) > 0 {
				o.metrics.GuardrailRejected(records[len(records)-1].Name)
			}
			delta.Messages = append(delta.Messages, types.NewAgentMessage(active.Name, guardrails.RejectionText))
			break
		}

		// Routing is only meaningful for the entry agent, and only before
		// the first hop; a delegated specialist never re-routes.
		if hop < maxHandoffHops {
			if target := o.roster.Router.Route(active.Name, message); target != "" {
				next, ok := o.roster.Registry.Resolve(target)
				if ok {
					delta.Events = append(delta.Events, newHandoffEvent(active.Name, next.Name))
					delta.Messages = append(delta.Messages,
						types.NewAgentMessage(active.Name, handoffAnnouncement(next.Name)))
					if o.metrics != nil {
						o.metrics.HandoffPerformed(active.Name, next.Name)
					}
					active = next
					delta.ActiveAgent = next.Name
					continue
				}
			}
		}

		if res := o.roster.Dispatcher.Dispatch(ctx, active.Name, &profile, message); res != nil {
			delta.Events = append(delta.Events, newToolEvent(active.Name, res.Tool, res.Text))
			delta.Messages = append(delta.Messages, types.NewAgentMessage(active.Name, res.Text))
			if o.metrics != nil {
				o.metrics.ToolInvoked(active.Name, res.Tool)
			}
		} else {
			delta.Messages = append(delta.Messages,
				types.NewAgentMessage(active.Name, o.fallbackReply(&profile, active.Name)))
		}
		break
	}

	return &TurnResult{
		ConversationID:   id,
		ActiveAgent:      active.Name,
		Messages:         delta.Messages,
		Events:           delta.Events,
		GuardrailRecords: delta.GuardrailRecords,
		Profile:          profile,
	}, delta
}

func (o *Orchestrator) fallbackReply(profile *types.Profile, agentName string) string {
	if f, ok := o.roster.Instructions.(FallbackSource); ok {
		return f.Fallback(profile, agentName)
	}
	return o.roster.Instructions.Instructions(profile, agentName)
}

func handoffAnnouncement(target string) string {
	return fmt.Sprintf(HandoffText, target)
}

func newHandoffEvent(from, to string) types.Event {
	return types.Event{
		ID:        uuid.NewString(),
		Kind:      types.EventHandoff,
		Agent:     from,
		Content:   fmt.Sprintf("Handing off to %s", to),
		Timestamp: time.Now(),
		Metadata:  map[string]string{"source_agent": from, "target_agent": to},
	}
}

func newToolEvent(agentName, tool, result string) types.Event {
	return types.Event{
		ID:        uuid.NewString(),
		Kind:      types.EventToolCall,
		Agent:     agentName,
		Content:   fmt.Sprintf("Executed %s", tool),
		Timestamp: time.Now(),
		Metadata:  map[string]string{"tool_name": tool, "tool_result": result},
	}
}
