package sendsuggestions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeMessageThreeSuggestions(t *testing.T) {
	msg := ComposeMessage("japanese", "2", "2026-09-01", "19:00", []Suggestion{
		{Name: "Sushi Nakazawa", Address: "23 Commerce St"},
		{Name: "Ichiran", Address: "374 Johnson Ave"},
		{Name: "Raku", Address: "342 E 6th St"},
	})

	assert.Equal(t,
		"Hello! Here are my japanese restaurant suggestions for 2 people, "+
			"for 2026-09-01 at 19:00: 1. Sushi Nakazawa, located at 23 Commerce St; "+
			"2. Ichiran, located at 374 Johnson Ave; 3. Raku, located at 342 E 6th St.",
		msg)
}

func TestComposeMessageSingleSuggestion(t *testing.T) {
	msg := ComposeMessage("thai", "6", "2026-09-01", "12:30", []Suggestion{
		{Name: "Somtum Der", Address: "85 Avenue A"},
	})

	assert.Contains(t, msg, "1. Somtum Der, located at 85 Avenue A.")
	assert.NotContains(t, msg, "2.")
}

func TestComposeMessageNoSuggestions(t *testing.T) {
	msg := ComposeMessage("korean", "3", "2026-09-01", "18:00", nil)
	assert.Equal(t,
		"Hello! Unfortunately I couldn't find any korean restaurant suggestions right now. Please try again later.",
		msg)
}
