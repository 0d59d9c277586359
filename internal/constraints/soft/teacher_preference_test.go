package soft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

func TestTimePreferencePenalisesOutsidePreferredSlots(t *testing.T) {
	ctx, state := buildCtxState()
	slot0 := ctx.Instance.Config.Slot(model.Saturday, 0)
	ctx.TeacherByID["t1"].PreferredSlots = []int{slot0}
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 2), TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 1, NewTimePreference().Penalty(ctx, state))
}

func TestTimePreferenceCleanWithinPreferredSlots(t *testing.T) {
	ctx, state := buildCtxState()
	slot0 := ctx.Instance.Config.Slot(model.Saturday, 0)
	ctx.TeacherByID["t1"].PreferredSlots = []int{slot0}
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: slot0, TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 0, NewTimePreference().Penalty(ctx, state))
}

func TestTimePreferenceIgnoresTeachersWithNoDeclaredPreference(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 2), TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 0, NewTimePreference().Penalty(ctx, state))
}

func TestRoomPreferencePenalisesOutsidePreferredRooms(t *testing.T) {
	ctx, state := buildCtxState()
	ctx.TeacherByID["t1"].PreferredRoomIDs = []string{"r1"}
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r2", Present: true}

	require.Equal(t, 1, NewRoomPreference().Penalty(ctx, state))
}

func TestRoomPreferenceCleanWithinPreferredRooms(t *testing.T) {
	ctx, state := buildCtxState()
	ctx.TeacherByID["t1"].PreferredRoomIDs = []string{"r1"}
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 0, NewRoomPreference().Penalty(ctx, state))
}
