package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBusinessFields(t *testing.T) {
	message := "I want to register my company\n" +
		"Company Name: Acme Widgets\n" +
		"Industry Sector: Manufacturing\n" +
		"Sub-Sector: Industrial Tools\n" +
		"Products/Services: Widgets and gadgets\n" +
		"Location: Berlin\n" +
		"Website: https://acme.example\n"

	fields := ParseBusinessFields(message)

	assert.Equal(t, "Acme Widgets", fields["company_name"])
	assert.Equal(t, "Manufacturing", fields["industry_sector"])
	assert.Equal(t, "Industrial Tools", fields["sub-sector"], "hyphens survive normalization")
	assert.Equal(t, "Berlin", fields["location"])
	assert.Equal(t, "https://acme.example", fields["website"])

	// "Products/Services" keeps the slash; only spaces become underscores.
	assert.Equal(t, "Widgets and gadgets", fields["products/services"])

	// Lines without a colon are skipped.
	_, ok := fields["i_want_to_register_my_company"]
	assert.False(t, ok)
}

func TestParseBusinessFields_ColonInValue(t *testing.T) {
	fields := ParseBusinessFields("Website: https://acme.example:8443/home")
	assert.Equal(t, "https://acme.example:8443/home", fields["website"])
}
