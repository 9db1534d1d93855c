package agent

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/types"
)

// Capability is an external operation invoked on behalf of an agent. The
// returned text is shown to the user verbatim; errors are converted by the
// dispatcher into error text and never abort the turn.
type Capability func(ctx context.Context, profile *types.Profile, message string) (string, error)

// ToolResult is the ephemeral outcome of one capability invocation.
type ToolResult struct {
	Tool string
	Text string
}

// Rule binds a message predicate to a capability. A nil Match always fires.
type Rule struct {
	Tool  string
	Match func(lower string) bool
	Run   Capability
}

// Dispatcher selects at most one capability per turn for an agent using the
// agent's ordered rule table: first matching rule wins. This replaces
// lookup-by-tool-name with an explicit per-agent table.
type Dispatcher struct {
	rules   map[string][]Rule
	timeout time.Duration
	logger  *zap.Logger
}

// NewDispatcher creates an empty dispatcher. timeout bounds each capability
// call; a timed-out call is reported as a tool failure, not a turn failure.
func NewDispatcher(timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		rules:   make(map[string][]Rule),
		timeout: timeout,
		logger:  logger.With(zap.String("component", "dispatcher")),
	}
}

// Register appends rules to an agent's table, preserving order.
func (d *Dispatcher) Register(agentName string, rules ...Rule) {
	d.rules[agentName] = append(d.rules[agentName], rules...)
}

// Tools returns the tool names in an agent's table, in rule order.
func (d *Dispatcher) Tools(agentName string) []string {
	rules := d.rules[agentName]
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Tool)
	}
	return names
}

// Dispatch runs the first rule whose predicate matches the message. It
// returns nil when the agent has no matching rule (the agent then falls back
// to its default reply).
func (d *Dispatcher) Dispatch(ctx context.Context, agentName string, profile *types.Profile, message string) *ToolResult {
	lower := strings.ToLower(message)

	for _, rule := range d.rules[agentName] {
		if rule.Match != nil && !rule.Match(lower) {
			continue
		}

		callCtx, cancel := context.WithTimeout(ctx, d.timeout)
		start := time.Now()
		text, err := rule.Run(callCtx, profile, message)
		cancel()

		if err != nil {
			d.logger.Error("tool invocation failed",
				zap.String("agent", agentName),
				zap.String("tool", rule.Tool),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err),
			)
			return &ToolResult{Tool: rule.Tool, Text: "Error: " + err.Error()}
		}

		d.logger.Debug("tool invoked",
			zap.String("agent", agentName),
			zap.String("tool", rule.Tool),
			zap.Duration("duration", time.Since(start)),
		)
		return &ToolResult{Tool: rule.Tool, Text: text}
	}

	return nil
}

// registrationPhrases trigger the business registration form.
var registrationPhrases = []string{
	"add business", "register business", "add my business", "register my company",
}

// MatchRegistrationPhrase reports whether the message asks to register a
// business.
func MatchRegistrationPhrase(lower string) bool {
	for _, phrase := range registrationPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// MatchBusinessSubmission reports whether the message looks like a filled-in
// registration form. The phrase check above runs first in the networking
// agent's table, so a message that matches both still shows the form.
func MatchBusinessSubmission(lower string) bool {
	return strings.Contains(lower, "company name:") && strings.Contains(lower, "industry sector:")
}
