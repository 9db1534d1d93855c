package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/quorumhq/concierge/directory"
)

// OrganizationInfo formats one organization's details. id may be empty
// when the caller has no organization context.
func OrganizationInfo(ctx context.Context, store *directory.Store, id string) (string, error) {
	if id == "" {
		return "No organization specified and no current organization context available.", nil
	}

	org, err := store.OrganizationByID(ctx, id)
	if directory.IsNotFound(err) {
		return fmt.Sprintf("No organization found with ID '%s'.", id), nil
	}
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Organization Information**\n\n")
	fmt.Fprintf(&b, "📋 Name: %s\n", orDefault(org.Name, "Unknown"))
	if org.Description != "" {
		fmt.Fprintf(&b, "📌 Description: %s\n", org.Description)
	}
	if org.Location != "" {
		fmt.Fprintf(&b, "📌 Location: %s\n", org.Location)
	}
	if org.Website != "" {
		fmt.Fprintf(&b, "📌 Website: %s\n", org.Website)
	}
	if org.ContactEmail != "" {
		fmt.Fprintf(&b, "📌 Contact Email: %s\n", org.ContactEmail)
	}
	return b.String(), nil
}
