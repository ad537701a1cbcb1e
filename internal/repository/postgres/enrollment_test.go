package postgres

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marwa-agamy/collegeSystem-app/internal/utils"
)

func letter(l string) *string { return &l }

func TestDropRejection(t *testing.T) {
	tests := []struct {
		name        string
		standing    courseStanding
		wantMessage string
	}{
		{
			name:     "registered and ungraded drops cleanly",
			standing: courseStanding{registered: true},
		},
		{
			name:        "passed course cannot be dropped",
			standing:    courseStanding{registered: true, lastLetter: letter("B+")},
			wantMessage: "You cannot drop a course you have already passed.",
		},
		{
			// A pass on record wins even when the registration row is gone.
			name:        "passed beats not registered",
			standing:    courseStanding{registered: false, lastLetter: letter("A")},
			wantMessage: "You cannot drop a course you have already passed.",
		},
		{
			name:        "not registered",
			standing:    courseStanding{registered: false},
			wantMessage: "You are not registered for this course.",
		},
		{
			name:        "failed this term is locked",
			standing:    courseStanding{registered: true, lastLetter: letter("F"), failedThisTerm: true},
			wantMessage: "You cannot drop a course you failed this term.",
		},
		{
			name:     "old failure does not block a retake drop",
			standing: courseStanding{registered: true, lastLetter: letter("F")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.standing.dropRejection()
			if tt.wantMessage == "" {
				assert.NoError(t, err)
				return
			}
			var reqErr *utils.RequestError
			require.ErrorAs(t, err, &reqErr)
			assert.Equal(t, http.StatusBadRequest, reqErr.Status)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
		})
	}
}
