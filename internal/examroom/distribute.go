// Package examroom assigns exam rosters to rooms.
package examroom

import (
	"fmt"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
)

// CapacityError reports that the given rooms cannot seat the whole roster.
type CapacityError struct {
	Unassigned    int
	RequiredRooms int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("Not enough room capacity. %d students could not be assigned.", e.Unassigned)
}

// Distribute fills rooms with students in roster order, one room at a time.
// Room order and roster order are both preserved, so the same inputs always
// produce the same seating. Rooms beyond the roster come back empty.
func Distribute(students []domain.ExamSeat, roomNumbers []string, capacity int) ([]domain.ExamRoom, error) {
	if capacity <= 0 {
		return nil, &CapacityError{
			Unassigned:    len(students),
			RequiredRooms: 0,
		}
	}
	if len(students) > len(roomNumbers)*capacity {
		unassigned := len(students) - len(roomNumbers)*capacity
		required := (len(students) + capacity - 1) / capacity
		return nil, &CapacityError{Unassigned: unassigned, RequiredRooms: required}
	}

	rooms := make([]domain.ExamRoom, 0, len(roomNumbers))
	next := 0
	for _, number := range roomNumbers {
		end := next + capacity
		if end > len(students) {
			end = len(students)
		}
		seats := make([]domain.ExamSeat, end-next)
		copy(seats, students[next:end])
		rooms = append(rooms, domain.ExamRoom{RoomNumber: number, Students: seats})
		next = end
	}
	return rooms, nil
}
