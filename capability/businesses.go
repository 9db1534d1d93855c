package capability

import (
	"context"
	"fmt"
	"strings"

	"github.com/quorumhq/concierge/directory"
)

const businessLimit = 20

// BusinessSearch queries the business directory and formats the listing.
func BusinessSearch(ctx context.Context, store *directory.Store, filter directory.BusinessFilter) (string, error) {
	businesses, err := store.SearchBusinesses(ctx, filter)
	if err != nil {
		return "", err
	}

	if len(businesses) == 0 {
		var applied []string
		if filter.Query != "" {
			applied = append(applied, fmt.Sprintf("'%s'", filter.Query))
		}
		if filter.Sector != "" {
			applied = append(applied, fmt.Sprintf("sector '%s'", filter.Sector))
		}
		if filter.Location != "" {
			applied = append(applied, fmt.Sprintf("location '%s'", filter.Location))
		}
		searchText := "your criteria"
		if len(applied) > 0 {
			searchText = strings.Join(applied, " and ")
		}
		return fmt.Sprintf("No businesses found for %s. Try different search terms or ask to see all businesses.", searchText), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d business(es):\n\n", len(businesses))

	shown := businesses
	if len(shown) > businessLimit {
		shown = shown[:businessLimit]
	}
	for i, biz := range shown {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(biz.CompanyName, "Unknown Company"))
		if biz.IndustrySector != "" {
			fmt.Fprintf(&b, "🏭 Industry: %s\n", biz.IndustrySector)
		}
		if biz.SubSector != "" {
			fmt.Fprintf(&b, "🔧 Sub-sector: %s\n", biz.SubSector)
		}
		if biz.Location != "" {
			fmt.Fprintf(&b, "📍 Location: %s\n", biz.Location)
		}
		if biz.EstablishmentYear != "" {
			fmt.Fprintf(&b, "📅 Established: %s\n", biz.EstablishmentYear)
		}
		if biz.LegalStructure != "" {
			fmt.Fprintf(&b, "⚖️ Legal Structure: %s\n", biz.LegalStructure)
		}
		if biz.BriefDescription != "" {
			fmt.Fprintf(&b, "📝 Description: %s\n", biz.BriefDescription)
		}
		if biz.ProductsOrServices != "" {
			fmt.Fprintf(&b, "🛍️ Products/Services: %s\n", biz.ProductsOrServices)
		}
		if biz.Website != "" {
			fmt.Fprintf(&b, "🌐 Website: %s\n", biz.Website)
		}
		b.WriteString("\n")
	}

	if len(businesses) == businessLimit {
		fmt.Fprintf(&b, "\n*Showing first %d results. Use more specific search terms to narrow down results.*", businessLimit)
	}
	return b.String(), nil
}

// UserBusinesses lists the businesses registered by a named user, or by
// the given user id when userName is empty.
func UserBusinesses(ctx context.Context, store *directory.Store, userID, userName string) (string, error) {
	userText := "the current user"
	if userName != "" {
		users, err := store.UsersByName(ctx, userName)
		if err != nil {
			return "", err
		}
		if len(users) == 0 {
			return fmt.Sprintf("No user found with name '%s'. Please check the spelling or try a different name.", userName), nil
		}
		userID = users[0].ID
		userText = userName
	} else if userID == "" {
		return "No user specified and no current user context available. Please provide a user name.", nil
	}

	businesses, err := store.UserBusinesses(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(businesses) == 0 {
		return fmt.Sprintf("No businesses found for %s. They may not have registered any businesses yet.", userText), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d business(es) for %s:\n\n", len(businesses), userText)
	for i, biz := range businesses {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, orDefault(biz.CompanyName, "Unknown Company"))
		if biz.IndustrySector != "" {
			fmt.Fprintf(&b, "🏭 Industry: %s\n", biz.IndustrySector)
		}
		if biz.SubSector != "" {
			fmt.Fprintf(&b, "🔧 Sub-sector: %s\n", biz.SubSector)
		}
		if biz.Location != "" {
			fmt.Fprintf(&b, "📍 Location: %s\n", biz.Location)
		}
		if biz.PositionTitle != "" {
			fmt.Fprintf(&b, "💼 Position: %s\n", biz.PositionTitle)
		}
		if biz.EstablishmentYear != "" {
			fmt.Fprintf(&b, "📅 Established: %s\n", biz.EstablishmentYear)
		}
		if biz.BriefDescription != "" {
			fmt.Fprintf(&b, "📝 Description: %s\n", biz.BriefDescription)
		}
		if biz.Website != "" {
			fmt.Fprintf(&b, "🌐 Website: %s\n", biz.Website)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
