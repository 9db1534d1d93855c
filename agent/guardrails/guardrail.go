// Package guardrails provides the input-safety checks that gate agent
// execution. Guardrails attached to an agent run strictly in their declared
// order; the first failure short-circuits the turn with a canned rejection.
package guardrails

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quorumhq/concierge/types"
)

// RejectionText is the fixed reply returned when any guardrail fails.
const RejectionText = "Sorry, I can only answer questions related to conference topics."

// Result is the tagged outcome every guardrail must produce. No runtime
// shape inspection: passed plus a human-readable reasoning string.
type Result struct {
	Passed    bool   `json:"passed"`
	Reasoning string `json:"reasoning"`
}

// Guardrail is a pure predicate over (profile, message).
type Guardrail interface {
	// Name returns the guardrail's registry key.
	Name() string
	// Check evaluates the message. A non-nil error means the predicate
	// itself failed, not that the message was rejected.
	Check(ctx context.Context, profile *types.Profile, message string) (Result, error)
}

// Pipeline evaluates an ordered set of guardrails against a message.
type Pipeline struct {
	registry map[string]Guardrail
	failOpen bool
	logger   *zap.Logger
}

// NewPipeline builds a pipeline over the given guardrails. failOpen controls
// what happens when a guardrail's predicate errors: true logs and continues
// (matching the original backend), false fails the check.
func NewPipeline(failOpen bool, logger *zap.Logger, checks ...Guardrail) (*Pipeline, error) {
	registry := make(map[string]Guardrail, len(checks))
	for _, g := range checks {
		if _, dup := registry[g.Name()]; dup {
			return nil, fmt.Errorf("duplicate guardrail %q", g.Name())
		}
		registry[g.Name()] = g
	}
	return &Pipeline{
		registry: registry,
		failOpen: failOpen,
		logger:   logger.With(zap.String("component", "guardrails")),
	}, nil
}

// Has reports whether a guardrail with the given name is registered.
func (p *Pipeline) Has(name string) bool {
	_, ok := p.registry[name]
	return ok
}

// Evaluate runs the named guardrails in order against the message.
// On the first failing guardrail it stops immediately and returns
// passed=false together with the records collected so far; no further
// guardrails run. Unknown names are skipped.
func (p *Pipeline) Evaluate(ctx context.Context, names []string, profile *types.Profile, message string) (bool, []types.GuardrailRecord) {
	var records []types.GuardrailRecord

	for _, name := range names {
		g, ok := p.registry[name]
		if !ok {
			p.logger.Warn("unknown guardrail, skipping", zap.String("guardrail", name))
			continue
		}

		result, err := g.Check(ctx, profile, message)
		if err != nil {
			p.logger.Error("guardrail evaluation failed",
				zap.String("guardrail", name),
				zap.Error(err),
			)
			if p.failOpen {
				// Fail-open: the check is logged but does not block the turn.
				continue
			}
			records = append(records, types.GuardrailRecord{
				ID:        uuid.NewString(),
				Name:      name,
				Input:     message,
				Reasoning: "guardrail evaluation failed: " + err.Error(),
				Passed:    false,
				Timestamp: time.Now(),
			})
			return false, records
		}

		records = append(records, types.GuardrailRecord{
			ID:        uuid.NewString(),
			Name:      name,
			Input:     message,
			Reasoning: result.Reasoning,
			Passed:    result.Passed,
			Timestamp: time.Now(),
		})

		if !result.Passed {
			return false, records
		}
	}

	return true, records
}
