package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTermFor(t *testing.T) {
	assert.Equal(t, "Spring 2026", TermFor(time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Spring 2026", TermFor(time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Fall 2026", TermFor(time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Fall 2026", TermFor(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestNextTerm(t *testing.T) {
	assert.Equal(t, "Fall 2026", NextTerm(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Spring 2027", NextTerm(time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)))
}
