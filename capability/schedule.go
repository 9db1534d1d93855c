// Package capability holds the operations agents invoke on behalf of the
// user: schedule lookup, attendee and business search, business
// registration, and organization info. Each returns formatted text ready
// to show verbatim; callers turn errors into error text.
package capability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/textparse"
	"github.com/quorumhq/concierge/types"
)

const isoDate = "2006-01-02"

// ScheduleFilters are explicitly supplied schedule constraints. They take
// precedence over anything extracted from the free-text query.
type ScheduleFilters struct {
	Speaker string
	Topic   string
	Room    string
	Track   string
	Date    string
}

// NewScheduleLookup builds the schedule capability: extract filters from
// the query text, merge in any explicit filters, and format the matching
// sessions grouped by day.
func NewScheduleLookup(store *directory.Store) func(ctx context.Context, profile *types.Profile, message string) (string, error) {
	return func(ctx context.Context, _ *types.Profile, message string) (string, error) {
		return ScheduleLookup(ctx, store, message, ScheduleFilters{})
	}
}

// ScheduleLookup resolves the query plus filters against the directory.
func ScheduleLookup(ctx context.Context, store *directory.Store, query string, filters ScheduleFilters) (string, error) {
	if query != "" {
		terms := textparse.ExtractSearchTerms(query)
		if filters.Speaker == "" {
			filters.Speaker = terms.Speaker
		}
		if filters.Topic == "" {
			filters.Topic = terms.Topic
		}
		if filters.Room == "" {
			filters.Room = terms.Room
		}
		if filters.Track == "" {
			filters.Track = terms.Track
		}
		if filters.Date == "" && terms.HasDate {
			filters.Date = terms.Date.Format(isoDate)
		}
	}

	sessionFilter := directory.SessionFilter{
		Speaker: filters.Speaker,
		Topic:   filters.Topic,
		Room:    filters.Room,
		Track:   filters.Track,
		Date:    filters.Date,
	}

	sessions, err := store.Sessions(ctx, sessionFilter)
	if err != nil {
		return "", err
	}
	if len(sessions) == 0 {
		return noSessionsText(ctx, store, filters)
	}
	return formatSchedule(sessions), nil
}

func noSessionsText(ctx context.Context, store *directory.Store, filters ScheduleFilters) (string, error) {
	var applied []string
	if filters.Speaker != "" {
		applied = append(applied, fmt.Sprintf("speaker '%s'", filters.Speaker))
	}
	if filters.Topic != "" {
		applied = append(applied, fmt.Sprintf("topic '%s'", filters.Topic))
	}
	if filters.Room != "" {
		applied = append(applied, fmt.Sprintf("room '%s'", filters.Room))
	}
	if filters.Track != "" {
		applied = append(applied, fmt.Sprintf("track '%s'", filters.Track))
	}
	if filters.Date != "" {
		applied = append(applied, fmt.Sprintf("date '%s'", filters.Date))
	}

	filterText := "your criteria"
	if len(applied) > 0 {
		filterText = strings.Join(applied, " and ")
	}

	result := fmt.Sprintf("No conference sessions found for %s.", filterText)

	dates, err := store.SessionDates(ctx)
	if err != nil {
		return "", err
	}
	if len(dates) > 0 {
		result += fmt.Sprintf("\n\nThe conference has sessions on: %s", strings.Join(dates, ", "))
		result += "\n\nTry asking about sessions on these specific dates, or ask about specific speakers, topics, or rooms."
	}
	return result, nil
}

func formatSchedule(sessions []directory.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conference session(s):\n\n", len(sessions))

	byDate := make(map[string][]directory.Session)
	var dates []string
	for _, s := range sessions {
		day := s.ConferenceDate
		if day == "" {
			day = "Unknown Date"
		}
		if _, seen := byDate[day]; !seen {
			dates = append(dates, day)
		}
		byDate[day] = append(byDate[day], s)
	}

	for _, day := range dates {
		// Date headers only help when the results span multiple days.
		if len(dates) > 1 {
			fmt.Fprintf(&b, "**%s**\n\n", day)
		}
		for _, s := range byDate[day] {
			fmt.Fprintf(&b, "🎯 **%s**\n", orDefault(s.Topic, "Unknown Topic"))
			fmt.Fprintf(&b, "👤 Speaker: %s\n", orDefault(s.SpeakerName, "TBD"))
			fmt.Fprintf(&b, "⏰ Time: %s - %s\n", clockTime(s.StartTime), clockTime(s.EndTime))
			fmt.Fprintf(&b, "📍 Room: %s\n", orDefault(s.RoomName, "TBD"))
			fmt.Fprintf(&b, "🏷️ Track: %s\n", orDefault(s.TrackName, "TBD"))
			if s.Description != "" {
				fmt.Fprintf(&b, "📝 Description: %s\n", s.Description)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func clockTime(t time.Time) string {
	if t.IsZero() {
		return "TBD"
	}
	return t.Format("03:04 PM")
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
