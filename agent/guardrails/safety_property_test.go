package guardrails

import (
	"context"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// Property: any message containing a trigger token as a substring is unsafe,
// regardless of surrounding text or casing.
func TestSafety_TriggerSubstringAlwaysUnsafe(t *testing.T) {
	s := NewSafety()

	rapid.Check(t, func(rt *rapid.T) {
		token := rapid.SampledFrom(jailbreakTokens).Draw(rt, "token")
		prefix := rapid.StringMatching(`[a-z ]{0,20}`).Draw(rt, "prefix")
		suffix := rapid.StringMatching(`[a-z ]{0,20}`).Draw(rt, "suffix")
		upper := rapid.Bool().Draw(rt, "upper")

		msg := prefix + token + suffix
		if upper {
			msg = strings.ToUpper(msg)
		}

		result, err := s.Check(context.Background(), nil, msg)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if result.Passed {
			rt.Fatalf("message %q contains trigger %q but passed", msg, token)
		}
	})
}

// Property: a message with no conference keyword and no greeting word fails
// relevance, and adding any single keyword makes it pass.
func TestRelevance_KeywordPresenceDecides(t *testing.T) {
	r := NewRelevance()

	rapid.Check(t, func(rt *rapid.T) {
		// Digits and punctuation can never contain a keyword.
		noise := rapid.StringMatching(`[0-9!?.]{1,30}`).Draw(rt, "noise")

		result, err := r.Check(context.Background(), nil, noise)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if result.Passed {
			rt.Fatalf("keyword-free message %q passed relevance", noise)
		}

		keyword := rapid.SampledFrom(conferenceKeywords).Draw(rt, "keyword")
		result, err = r.Check(context.Background(), nil, noise+" "+keyword)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		if !result.Passed {
			rt.Fatalf("message with keyword %q failed relevance", keyword)
		}
	})
}
