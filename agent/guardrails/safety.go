package guardrails

import (
	"context"
	"strings"

	"github.com/quorumhq/concierge/types"
)

// SafetyName is the registry key of the prompt-injection guardrail.
const SafetyName = "jailbreak_guardrail"

// jailbreakTokens are trigger substrings for prompt-injection attempts,
// matched case-insensitively anywhere in the message.
var jailbreakTokens = []string{
	"ignore", "forget", "system", "prompt", "instruction", "override",
	"pretend", "roleplay", "act as", "you are now", "new role",
	"disregard", "bypass", "admin", "developer", "debug",
}

// Safety rejects messages containing prompt-injection trigger tokens.
type Safety struct{}

// NewSafety creates the jailbreak guardrail.
func NewSafety() *Safety {
	return &Safety{}
}

func (s *Safety) Name() string { return SafetyName }

func (s *Safety) Check(_ context.Context, _ *types.Profile, message string) (Result, error) {
	lower := strings.ToLower(message)

	if containsAny(lower, jailbreakTokens) {
		return Result{Passed: false, Reasoning: "Input contains potential jailbreak attempt"}, nil
	}
	return Result{Passed: true, Reasoning: "Input appears safe"}, nil
}
