package utils

import (
	"fmt"
	"time"
)

// TermFor names the academic term containing t. August onward counts as
// the Fall term of that year, anything earlier as Spring.
func TermFor(t time.Time) string {
	if t.Month() >= time.August {
		return fmt.Sprintf("Fall %d", t.Year())
	}
	return fmt.Sprintf("Spring %d", t.Year())
}

// NextTerm returns the term that follows the given instant.
func NextTerm(t time.Time) string {
	if t.Month() >= time.August {
		return fmt.Sprintf("Spring %d", t.Year()+1)
	}
	return fmt.Sprintf("Fall %d", t.Year())
}
