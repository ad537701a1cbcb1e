package examroom

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marwa-agamy/collegeSystem-app/internal/domain"
)

func roster(n int) []domain.ExamSeat {
	students := make([]domain.ExamSeat, n)
	for i := range students {
		students[i] = domain.ExamSeat{
			StudentID: fmt.Sprintf("s%03d", i+1),
			Name:      fmt.Sprintf("Student %d", i+1),
		}
	}
	return students
}

func TestDistributeFillsRoomsInOrder(t *testing.T) {
	rooms, err := Distribute(roster(55), []string{"101", "102"}, 30)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, "101", rooms[0].RoomNumber)
	assert.Len(t, rooms[0].Students, 30)
	assert.Equal(t, "s001", rooms[0].Students[0].StudentID)
	assert.Equal(t, "s030", rooms[0].Students[29].StudentID)

	assert.Equal(t, "102", rooms[1].RoomNumber)
	assert.Len(t, rooms[1].Students, 25)
	assert.Equal(t, "s031", rooms[1].Students[0].StudentID)
	assert.Equal(t, "s055", rooms[1].Students[24].StudentID)
}

func TestDistributeLeavesSpareRoomsEmpty(t *testing.T) {
	rooms, err := Distribute(roster(10), []string{"A", "B", "C"}, 10)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Len(t, rooms[0].Students, 10)
	assert.Empty(t, rooms[1].Students)
	assert.Empty(t, rooms[2].Students)
}

func TestDistributeCapacityError(t *testing.T) {
	_, err := Distribute(roster(35), []string{"A", "B", "C"}, 10)
	require.Error(t, err)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 5, capErr.Unassigned)
	assert.Equal(t, 4, capErr.RequiredRooms)
	assert.Equal(t, "Not enough room capacity. 5 students could not be assigned.", err.Error())
}

func TestDistributeIsDeterministic(t *testing.T) {
	first, err := Distribute(roster(23), []string{"R1", "R2", "R3"}, 8)
	require.NoError(t, err)
	second, err := Distribute(roster(23), []string{"R1", "R2", "R3"}, 8)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
