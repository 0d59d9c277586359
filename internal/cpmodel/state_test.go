package cpmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/model"
)

func TestStateDayAndPeriodIndexDecodeSlot(t *testing.T) {
	ctx := BuildContext(baseInstance())
	state := NewState(ctx)
	state.Placements[0] = Placement{Start: 2, TeacherID: "qualified", RoomID: "lab", Present: true}

	require.Equal(t, model.Saturday, state.Day(0))
	require.Equal(t, 2, state.PeriodIndex(0))
	require.Equal(t, 3, state.EndSlot(0))
}

func TestStateCloneIsIndependent(t *testing.T) {
	ctx := BuildContext(baseInstance())
	state := NewState(ctx)
	state.Placements[0] = Placement{Start: 1, Present: true}

	clone := state.Clone()
	clone.Placements[0] = Placement{Start: 2, Present: true}

	require.Equal(t, 1, state.Placements[0].Start, "mutating the clone must not affect the original")
}

func TestStateLessonsSkipsUnplacedRequests(t *testing.T) {
	inst := baseInstance()
	inst.Classes[0].SubjectRequirements["science"] = model.SubjectRequirement{PeriodsPerWeek: 2}
	ctx := BuildContext(inst)
	state := NewState(ctx)
	state.Placements[0] = Placement{Start: 1, TeacherID: "qualified", RoomID: "lab", Present: true}
	// Placements[1] left zero-value/absent.

	lessons := state.Lessons()
	require.Len(t, lessons, 1)
	require.Equal(t, model.Saturday, lessons[0].Day)
	require.Equal(t, 1, lessons[0].PeriodIndex)
	require.Equal(t, "c1", lessons[0].ClassID)
	require.Equal(t, []string{"qualified"}, lessons[0].TeacherIDs)
}
