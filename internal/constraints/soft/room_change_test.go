package soft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

func TestRoomChangePenalisesConsecutivePeriodRoomSwitch(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	artIdx := ctx.RequestsByClassSubject["c1\x00art"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 0), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 1), TeacherID: "t1", RoomID: "r2", Present: true}

	require.Equal(t, 1, NewRoomChange().Penalty(ctx, state))
}

func TestRoomChangeIgnoresSameRoomConsecutivePeriods(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	artIdx := ctx.RequestsByClassSubject["c1\x00art"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 0), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 1), TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 0, NewRoomChange().Penalty(ctx, state))
}

func TestRoomChangeIgnoresNonConsecutivePeriods(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	artIdx := ctx.RequestsByClassSubject["c1\x00art"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 0), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 2), TeacherID: "t1", RoomID: "r2", Present: true}

	require.Equal(t, 0, NewRoomChange().Penalty(ctx, state))
}
