package capability

import (
	"context"

	"github.com/quorumhq/concierge/types"
)

// FormSentinel tells the client UI to render the business registration
// form in place of a text reply.
const FormSentinel = "DISPLAY_BUSINESS_FORM"

// DisplayBusinessForm returns the form sentinel. It never fails; the
// signature matches the other capabilities so it slots into a rule table.
func DisplayBusinessForm(_ context.Context, _ *types.Profile, _ string) (string, error) {
	return FormSentinel, nil
}
