// Package schedule implements the timetable conflict checker. It is pure:
// no database access, no side effects.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
)

var clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*(AM|PM)`)

// ClockMinutes converts a 12-hour clock string ("03:30 PM") to minutes
// since midnight. 12 AM maps to 0 and 12 PM to 720. Returns ok=false when
// the string does not match the expected format; callers treat such
// sessions as non-conflicting and validate format separately.
func ClockMinutes(t string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.ToUpper(t))
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, false
	}
	switch {
	case m[3] == "PM" && hour != 12:
		hour += 12
	case m[3] == "AM" && hour == 12:
		hour = 0
	}
	return hour*60 + minute, true
}

// Overlap reports whether two sessions collide: same day and intersecting
// half-open [start, end) minute intervals.
func Overlap(a, b domain.Session) bool {
	if a.Day != b.Day {
		return false
	}
	start1, ok1 := ClockMinutes(a.StartTime)
	end1, ok2 := ClockMinutes(a.EndTime)
	start2, ok3 := ClockMinutes(b.StartTime)
	end2, ok4 := ClockMinutes(b.EndTime)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return start1 < end2 && start2 < end1
}

// Placed is a session already on a student's timetable, tagged with the
// course (and section, when it belongs to one) it comes from.
type Placed struct {
	domain.Session
	CourseCode string
	SectionID  string
}

type Conflict struct {
	CourseCode string `json:"courseCode"`
	SectionID  string `json:"sectionId,omitempty"`
	Kind       string `json:"type"`
	Day        string `json:"day"`
	Time       string `json:"time"`
}

func (c *Conflict) Message() string {
	if c.Kind == domain.KindSection {
		return fmt.Sprintf("Time conflict with an existing section in %s.", c.CourseCode)
	}
	return fmt.Sprintf("Time conflict with an existing lecture in %s.", c.CourseCode)
}

// FindConflict scans the student's existing timetable against the candidate
// sessions and returns the first collision found, or nil. The scan order is
// the order of the existing slice (per course: lectures before registered
// sections), so the reported conflict is deterministic.
func FindConflict(existing []Placed, candidate []domain.Session) *Conflict {
	for _, have := range existing {
		for _, want := range candidate {
			if !Overlap(have.Session, want) {
				continue
			}
			kind := domain.KindLecture
			if have.SectionID != "" {
				kind = domain.KindSection
			}
			return &Conflict{
				CourseCode: have.CourseCode,
				SectionID:  have.SectionID,
				Kind:       kind,
				Day:        have.Day,
				Time:       have.StartTime + "-" + have.EndTime,
			}
		}
	}
	return nil
}
