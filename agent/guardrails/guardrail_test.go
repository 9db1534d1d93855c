package guardrails

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quorumhq/concierge/types"
)

// stub is a guardrail with a fixed outcome.
type stub struct {
	name   string
	result Result
	err    error
	calls  int
}

func (s *stub) Name() string { return s.name }

func (s *stub) Check(_ context.Context, _ *types.Profile, _ string) (Result, error) {
	s.calls++
	return s.result, s.err
}

func newTestPipeline(t *testing.T, failOpen bool, checks ...Guardrail) *Pipeline {
	t.Helper()
	p, err := NewPipeline(failOpen, zap.NewNop(), checks...)
	require.NoError(t, err)
	return p
}

func TestPipeline_AllPass(t *testing.T) {
	a := &stub{name: "a", result: Result{Passed: true, Reasoning: "ok"}}
	b := &stub{name: "b", result: Result{Passed: true, Reasoning: "ok"}}
	p := newTestPipeline(t, true, a, b)

	passed, records := p.Evaluate(context.Background(), []string{"a", "b"}, &types.Profile{}, "hello")

	assert.True(t, passed)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Name)
	assert.Equal(t, "b", records[1].Name)
	assert.Equal(t, "hello", records[0].Input)
	assert.NotEmpty(t, records[0].ID)
}

func TestPipeline_ShortCircuitsOnFirstFailure(t *testing.T) {
	a := &stub{name: "a", result: Result{Passed: false, Reasoning: "nope"}}
	b := &stub{name: "b", result: Result{Passed: true}}
	p := newTestPipeline(t, true, a, b)

	passed, records := p.Evaluate(context.Background(), []string{"a", "b"}, &types.Profile{}, "x")

	assert.False(t, passed)
	require.Len(t, records, 1)
	assert.False(t, records[0].Passed)
	assert.Equal(t, 0, b.calls, "later guardrails must not run after a failure")
}

func TestPipeline_EvaluationOrder(t *testing.T) {
	a := &stub{name: "a", result: Result{Passed: true}}
	b := &stub{name: "b", result: Result{Passed: false, Reasoning: "blocked"}}
	p := newTestPipeline(t, true, a, b)

	// Declared order matters: b runs first here and short-circuits.
	passed, records := p.Evaluate(context.Background(), []string{"b", "a"}, &types.Profile{}, "x")

	assert.False(t, passed)
	require.Len(t, records, 1)
	assert.Equal(t, "b", records[0].Name)
	assert.Equal(t, 0, a.calls)
}

func TestPipeline_FailOpenOnEvaluationError(t *testing.T) {
	broken := &stub{name: "broken", err: errors.New("predicate blew up")}
	after := &stub{name: "after", result: Result{Passed: true, Reasoning: "ok"}}
	p := newTestPipeline(t, true, broken, after)

	passed, records := p.Evaluate(context.Background(), []string{"broken", "after"}, &types.Profile{}, "x")

	assert.True(t, passed, "evaluation errors are non-fatal when fail-open")
	require.Len(t, records, 1, "errored check produces no record")
	assert.Equal(t, "after", records[0].Name)
}

func TestPipeline_FailClosedOnEvaluationError(t *testing.T) {
	broken := &stub{name: "broken", err: errors.New("predicate blew up")}
	after := &stub{name: "after", result: Result{Passed: true}}
	p := newTestPipeline(t, false, broken, after)

	passed, records := p.Evaluate(context.Background(), []string{"broken", "after"}, &types.Profile{}, "x")

	assert.False(t, passed)
	require.Len(t, records, 1)
	assert.False(t, records[0].Passed)
	assert.Contains(t, records[0].Reasoning, "guardrail evaluation failed")
	assert.Equal(t, 0, after.calls)
}

func TestPipeline_UnknownNameSkipped(t *testing.T) {
	a := &stub{name: "a", result: Result{Passed: true}}
	p := newTestPipeline(t, true, a)

	passed, records := p.Evaluate(context.Background(), []string{"missing", "a"}, &types.Profile{}, "x")

	assert.True(t, passed)
	assert.Len(t, records, 1)
}

func TestNewPipeline_DuplicateName(t *testing.T) {
	_, err := NewPipeline(true, zap.NewNop(), &stub{name: "dup"}, &stub{name: "dup"})
	assert.Error(t, err)
}
