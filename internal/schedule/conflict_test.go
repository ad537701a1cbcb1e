package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
)

func session(day, start, end string) domain.Session {
	return domain.Session{Day: day, StartTime: start, EndTime: end, Room: "H1", Kind: domain.KindLecture}
}

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"12:00 AM", 0, true},
		{"12:00 PM", 720, true},
		{"01:30 PM", 810, true},
		{"9:05 AM", 545, true},
		{"11:59 PM", 1439, true},
		{"12:30 am", 30, true},
		{"13:00 PM", 0, false},
		{"09:75 AM", 0, false},
		{"0930", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ClockMinutes(tt.in)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "minutes for %q", tt.in)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Session
		want bool
	}{
		{
			name: "different days never overlap",
			a:    session("Monday", "09:00 AM", "11:00 AM"),
			b:    session("Tuesday", "09:00 AM", "11:00 AM"),
			want: false,
		},
		{
			name: "same interval",
			a:    session("Monday", "09:00 AM", "11:00 AM"),
			b:    session("Monday", "09:00 AM", "11:00 AM"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    session("Monday", "09:00 AM", "11:00 AM"),
			b:    session("Monday", "10:30 AM", "12:30 PM"),
			want: true,
		},
		{
			name: "back to back is not a conflict",
			a:    session("Monday", "09:00 AM", "11:00 AM"),
			b:    session("Monday", "11:00 AM", "01:00 PM"),
			want: false,
		},
		{
			name: "containment",
			a:    session("Wednesday", "08:00 AM", "06:00 PM"),
			b:    session("Wednesday", "12:00 PM", "01:00 PM"),
			want: true,
		},
		{
			name: "noon boundary handled as 24h",
			a:    session("Thursday", "11:00 AM", "12:30 PM"),
			b:    session("Thursday", "12:00 PM", "02:00 PM"),
			want: true,
		},
		{
			name: "unparseable time treated as non-conflicting",
			a:    session("Monday", "garbage", "11:00 AM"),
			b:    session("Monday", "09:00 AM", "11:00 AM"),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlap(tt.a, tt.b))
			assert.Equal(t, tt.want, Overlap(tt.b, tt.a), "overlap must be symmetric")
		})
	}
}

func TestFindConflictReportsFirstMatchInOrder(t *testing.T) {
	existing := []Placed{
		{Session: session("Monday", "09:00 AM", "10:00 AM"), CourseCode: "CS101"},
		{Session: session("Monday", "10:00 AM", "11:00 AM"), CourseCode: "CS102"},
		{Session: session("Monday", "10:00 AM", "12:00 PM"), CourseCode: "CS102", SectionID: "S2"},
	}
	candidate := []domain.Session{session("Monday", "10:30 AM", "11:30 AM")}

	c := FindConflict(existing, candidate)
	if assert.NotNil(t, c) {
		assert.Equal(t, "CS102", c.CourseCode)
		assert.Equal(t, domain.KindLecture, c.Kind)
		assert.Equal(t, "Time conflict with an existing lecture in CS102.", c.Message())
	}

	// Same scan with the lecture out of the way lands on the section.
	c = FindConflict(existing[2:], candidate)
	if assert.NotNil(t, c) {
		assert.Equal(t, "S2", c.SectionID)
		assert.Equal(t, domain.KindSection, c.Kind)
		assert.Equal(t, "Time conflict with an existing section in CS102.", c.Message())
	}

	assert.Nil(t, FindConflict(existing, []domain.Session{session("Friday", "10:30 AM", "11:30 AM")}))
	assert.Nil(t, FindConflict(nil, candidate))
}
