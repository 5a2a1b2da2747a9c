package sendsuggestions

import (
	"fmt"
	"strings"
)

// ComposeMessage formats the plain-text suggestion email. The enumeration
// follows the actual candidate count; an empty list produces an apology
// instead of a broken message.
func ComposeMessage(cuisine, size, date, timeOfDay string, suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return fmt.Sprintf(
			"Hello! Unfortunately I couldn't find any %s restaurant suggestions right now. Please try again later.",
			cuisine,
		)
	}

	entries := make([]string, 0, len(suggestions))
	for i, s := range suggestions {
		entries = append(entries, fmt.Sprintf("%d. %s, located at %s", i+1, s.Name, s.Address))
	}

	return fmt.Sprintf(
		"Hello! Here are my %s restaurant suggestions for %s people, for %s at %s: %s.",
		cuisine, size, date, timeOfDay, strings.Join(entries, "; "),
	)
}
