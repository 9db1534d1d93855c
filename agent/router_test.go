package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

const (
	triageName     = "Triage Agent"
	scheduleName   = "Schedule Agent"
	networkingName = "Networking Agent"
)

func newTestRouter() *IntentRouter {
	return NewIntentRouter(triageName, scheduleName, networkingName)
}

func TestRouter_ScheduleWinsStrictly(t *testing.T) {
	r := newTestRouter()

	// schedule_score=2 (session, july), networking_score=1 (who)
	target := r.Route(triageName, "who presents the session on july?")
	assert.Equal(t, scheduleName, target)
}

func TestRouter_TieFavorsNetworking(t *testing.T) {
	r := newTestRouter()

	// schedule_score=1 (session), networking_score=1 (people)
	target := r.Route(triageName, "session people")
	assert.Equal(t, networkingName, target)
}

func TestRouter_AllZeroStays(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "", r.Route(triageName, "hello there"))
}

func TestRouter_NetworkingOnly(t *testing.T) {
	r := newTestRouter()

	target := r.Route(triageName, "I want to connect with other founders")
	assert.Equal(t, networkingName, target)
}

func TestRouter_SpecialistsNeverRoute(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "", r.Route(scheduleName, "what sessions are on july 15th?"))
	assert.Equal(t, "", r.Route(networkingName, "find attendees from mumbai"))
}

func TestRouter_OverlappingKeywordsBothCount(t *testing.T) {
	r := newTestRouter()

	// "attendees" matches both "attendee" and "attendees": networking_score=2
	// plus "find" makes 3; schedule_score=0.
	target := r.Route(triageName, "find attendees")
	assert.Equal(t, networkingName, target)
}

// Property: the decision rule is exactly score-driven. Recomputing scores
// independently must predict the routing target for arbitrary messages.
func TestRouter_DecisionRuleMatchesScores(t *testing.T) {
	r := newTestRouter()

	vocab := append(append([]string{}, schedulingKeywords...), networkingKeywords...)
	vocab = append(vocab, "hello", "cake", "the", "weather")

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 6).Draw(rt, "n")
		words := make([]string, n)
		for i := range words {
			words[i] = rapid.SampledFrom(vocab).Draw(rt, "word")
		}
		msg := strings.Join(words, " ")

		lower := strings.ToLower(msg)
		schedule := classScore(lower, schedulingKeywords)
		networking := classScore(lower, networkingKeywords)

		want := ""
		if schedule > networking && schedule > 0 {
			want = scheduleName
		} else if networking > 0 {
			want = networkingName
		}

		got := r.Route(triageName, msg)
		if got != want {
			rt.Fatalf("message %q: got %q, want %q (schedule=%d networking=%d)",
				msg, got, want, schedule, networking)
		}
	})
}
