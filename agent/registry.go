// Package agent implements the turn-orchestration engine: the static agent
// registry, intent routing, tool dispatch, and the per-turn state machine
// that drives guardrails, capability calls, and handoffs.
package agent

import (
	"fmt"
)

// Agent declares a specialist handler: its guardrail set, tool roster, and
// outgoing handoff edges. Agents are immutable after registry construction.
type Agent struct {
	// Name is the unique registry key.
	Name string
	// Description is shown in the public agent roster.
	Description string
	// Guardrails are evaluated in declared order; order matters because the
	// pipeline short-circuits on the first failure.
	Guardrails []string
	// Tools lists the agent's capability names for the roster.
	Tools []string
	// Handoffs are the names of agents this agent may delegate to.
	Handoffs []string
}

// Registry is the static agent graph. The graph is directed and may contain
// cycles (specialists hand back to the triage agent that dispatched them).
type Registry struct {
	agents []Agent
	index  map[string]int
	entry  string
}

// NewRegistry validates and freezes the agent set. Every handoff target must
// resolve to a registered agent and the entry agent must exist; both are
// checked here so a bad graph fails at startup, never at turn time.
func NewRegistry(entry string, agents ...Agent) (*Registry, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("registry requires at least one agent")
	}

	index := make(map[string]int, len(agents))
	for i, a := range agents {
		if a.Name == "" {
			return nil, fmt.Errorf("agent %d has no name", i)
		}
		if _, dup := index[a.Name]; dup {
			return nil, fmt.Errorf("duplicate agent %q", a.Name)
		}
		index[a.Name] = i
	}

	for _, a := range agents {
		for _, target := range a.Handoffs {
			if _, ok := index[target]; !ok {
				return nil, fmt.Errorf("agent %q declares handoff to unknown agent %q", a.Name, target)
			}
		}
	}

	if _, ok := index[entry]; !ok {
		return nil, fmt.Errorf("entry agent %q is not registered", entry)
	}

	return &Registry{agents: agents, index: index, entry: entry}, nil
}

// Resolve returns the agent with the given name.
func (r *Registry) Resolve(name string) (Agent, bool) {
	i, ok := r.index[name]
	if !ok {
		return Agent{}, false
	}
	return r.agents[i], true
}

// All returns the agents in registration order. The order is stable so
// externally visible listings don't shuffle between calls.
func (r *Registry) All() []Agent {
	out := make([]Agent, len(r.agents))
	copy(out, r.agents)
	return out
}

// Entry returns the designated entry (triage) agent.
func (r *Registry) Entry() Agent {
	return r.agents[r.index[r.entry]]
}

// First returns the first registered agent. It is the documented safe
// default when a conversation's stored active agent is somehow missing.
func (r *Registry) First() Agent {
	return r.agents[0]
}
