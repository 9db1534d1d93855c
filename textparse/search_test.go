package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSearchTerms_Speaker(t *testing.T) {
	// The lazy capture stops at the first word boundary.
	terms := ExtractSearchTerms("sessions by John Smith")
	assert.Equal(t, "john", terms.Speaker)

	terms = ExtractSearchTerms("talk by Jane, in the morning")
	assert.Equal(t, "jane", terms.Speaker)
}

func TestExtractSearchTerms_Room(t *testing.T) {
	terms := ExtractSearchTerms("what's in room A1?")
	assert.Equal(t, "room a1", terms.Room)
}

func TestExtractSearchTerms_Track(t *testing.T) {
	terms := ExtractSearchTerms("track technology please")
	assert.Equal(t, "technology", terms.Track)
}

func TestExtractSearchTerms_Topic(t *testing.T) {
	terms := ExtractSearchTerms("tell me about networking opportunities")
	assert.Equal(t, "networking", terms.Topic)
}

func TestExtractSearchTerms_Date(t *testing.T) {
	terms := ExtractSearchTerms("events on July 15th")
	assert.True(t, terms.HasDate)
	assert.Equal(t, day(15), terms.Date)
}

func TestExtractSearchTerms_Empty(t *testing.T) {
	terms := ExtractSearchTerms("")
	assert.Empty(t, terms.Speaker)
	assert.Empty(t, terms.Room)
	assert.Empty(t, terms.Track)
	assert.Empty(t, terms.Topic)
	assert.False(t, terms.HasDate)
}

func TestExtractSearchTerms_ShortValuesIgnored(t *testing.T) {
	// Single letters never become speaker names.
	terms := ExtractSearchTerms("by a")
	assert.Empty(t, terms.Speaker)
}
