// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CourseRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_course_registrations_total",
		Help: "Successful course registrations.",
	})

	RegistrationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_registration_conflicts_total",
		Help: "Registrations rejected for timetable conflicts.",
	})

	GradesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "college_grades_recorded_total",
		Help: "Grades added or updated.",
	})

	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "college_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
)
