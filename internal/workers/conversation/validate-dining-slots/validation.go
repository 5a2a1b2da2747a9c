package validatediningslots

import (
	"strconv"
	"strings"
	"time"

	"dining-concierge/internal/common/clock"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// validLocations is the supported service area.
var validLocations = map[string]bool{
	"manhattan": true,
	"new york":  true,
}

// canonicalCuisines are the supported cuisines; match order is fixed and
// first match wins.
var canonicalCuisines = []string{"korean", "chinese", "italian", "mexican", "thai", "japanese"}

// Validator checks user-supplied slot values. Date and time comparisons use
// the injected fixed-offset clock.
type Validator struct {
	clock clock.Clock
}

func NewValidator(c clock.Clock) *Validator {
	return &Validator{clock: c}
}

// ValidateLocation accepts only the supported service area, any case.
func (v *Validator) ValidateLocation(text string) bool {
	return validLocations[strings.ToLower(text)]
}

// ValidateCuisine matches the input against the canonical cuisine list by
// case-insensitive substring and returns the canonical name, or "" when
// nothing matches.
func (v *Validator) ValidateCuisine(text string) string {
	lowered := strings.ToLower(text)
	for _, cuisine := range canonicalCuisines {
		if strings.Contains(lowered, cuisine) {
			return cuisine
		}
	}
	return ""
}

// ValidateDate accepts a calendar date that is today or later in the
// clock's zone.
func (v *Validator) ValidateDate(text string) bool {
	input, err := time.ParseInLocation(dateLayout, text, v.clock.Location())
	if err != nil {
		return false
	}

	now := v.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.clock.Location())
	return !input.Before(today)
}

// ValidateDateTime accepts a combined date and time strictly after the
// current moment in the clock's zone.
func (v *Validator) ValidateDateTime(dateText, timeText string) bool {
	input, err := time.ParseInLocation(dateTimeLayout, dateText+" "+timeText, v.clock.Location())
	if err != nil {
		return false
	}
	return input.After(v.clock.Now())
}

// ValidatePartySize accepts any positive integer.
func (v *Validator) ValidatePartySize(text string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return n > 0
}
