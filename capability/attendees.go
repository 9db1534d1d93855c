package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/types"
)

const attendeeLimit = 20

// NewAttendeeSearch builds the attendee search capability. The raw message
// is the query: name match first, company substring as fallback.
func NewAttendeeSearch(store *directory.Store) func(ctx context.Context, profile *types.Profile, message string) (string, error) {
	return func(ctx context.Context, _ *types.Profile, message string) (string, error) {
		return AttendeeSearch(ctx, store, strings.TrimSpace(message))
	}
}

// AttendeeSearch resolves the query against registered attendees.
func AttendeeSearch(ctx context.Context, store *directory.Store, query string) (string, error) {
	var attendees []directory.User
	var err error

	if query == "" {
		attendees, err = store.AllAttendees(ctx, attendeeLimit)
		if err != nil {
			return "", err
		}
	} else {
		attendees, err = store.UsersByName(ctx, query)
		if err != nil {
			return "", err
		}
		if len(attendees) == 0 {
			// No name match; fall back to a company substring scan.
			all, err := store.AllAttendees(ctx, 100)
			if err != nil {
				return "", err
			}
			lower := strings.ToLower(query)
			for _, a := range all {
				if strings.Contains(strings.ToLower(a.Company), lower) {
					attendees = append(attendees, a)
				}
			}
		}
	}

	if len(attendees) == 0 {
		searchText := "matching your criteria"
		if query != "" {
			searchText = fmt.Sprintf("'%s'", query)
		}
		return fmt.Sprintf("No attendees found %s. Try searching with different terms or ask to see all attendees.", searchText), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d attendee(s):\n\n", len(attendees))

	shown := attendees
	if len(shown) > attendeeLimit {
		shown = shown[:attendeeLimit]
	}
	for i, a := range shown {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.FullName())
		if a.Company != "" {
			fmt.Fprintf(&b, "🏢 Company: %s\n", a.Company)
		}
		if a.Location != "" {
			fmt.Fprintf(&b, "📍 Location: %s\n", a.Location)
		}
		if a.Title != "" {
			fmt.Fprintf(&b, "💼 Title: %s\n", a.Title)
		}
		if a.PrimaryStream != "" {
			fmt.Fprintf(&b, "🎯 Primary Stream: %s\n", a.PrimaryStream)
		}
		if a.SecondaryStream != "" {
			fmt.Fprintf(&b, "🎯 Secondary Stream: %s\n", a.SecondaryStream)
		}
		if a.ConferencePackage != "" {
			fmt.Fprintf(&b, "🎫 Package: %s\n", a.ConferencePackage)
		}
		if a.Email != "" {
			fmt.Fprintf(&b, "📧 Email: %s\n", a.Email)
		}
		b.WriteString("\n")
	}

	if len(attendees) == attendeeLimit {
		fmt.Fprintf(&b, "\n*Showing first %d results. Use more specific search terms to narrow down results.*", attendeeLimit)
	}
	return b.String(), nil
}
