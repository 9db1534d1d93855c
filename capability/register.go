package capability

import (
	"context"
	"fmt"

	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/textparse"
	"github.com/quorumhq/concierge/types"
)

// NewRegisterBusiness builds the registration capability. The message is a
// filled-in form of "Label: value" lines; fields absent from the form stay
// empty. Registration requires a resolved user profile.
func NewRegisterBusiness(store *directory.Store) func(ctx context.Context, profile *types.Profile, message string) (string, error) {
	return func(ctx context.Context, profile *types.Profile, message string) (string, error) {
		userID := ""
		if profile != nil {
			userID = profile.UserID
		}
		return RegisterBusiness(ctx, store, userID, textparse.ParseBusinessFields(message))
	}
}

// RegisterBusiness inserts a listing built from parsed form fields.
func RegisterBusiness(ctx context.Context, store *directory.Store, userID string, fields map[string]string) (string, error) {
	if userID == "" {
		return "Unable to add business: No user context available. Please log in first.", nil
	}

	business := directory.Business{
		CompanyName:        fields["company_name"],
		IndustrySector:     fields["industry_sector"],
		SubSector:          fields["sub-sector"],
		Location:           fields["location"],
		PositionTitle:      fields["position_title"],
		LegalStructure:     fields["legal_structure"],
		EstablishmentYear:  fields["establishment_year"],
		ProductsOrServices: fields["products/services"],
		BriefDescription:   fields["brief_description"],
		Website:            fields["website"],
	}

	if err := store.AddBusiness(ctx, userID, business); err != nil {
		return fmt.Sprintf("❌ Failed to add business '%s'. Please try again or contact support.", business.CompanyName), nil
	}
	return fmt.Sprintf("✅ Successfully added business '%s' to your profile! The business is now listed in the business directory and available for networking.", business.CompanyName), nil
}
