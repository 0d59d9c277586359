package soft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

func TestFirstLastAvoidancePenalisesFirstAndLastPeriods(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	artIdx := ctx.RequestsByClassSubject["c1\x00art"][0]
	lastPeriod := ctx.Instance.Config.PeriodsPerDay[model.Saturday] - 1
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 0), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, lastPeriod), TeacherID: "t2", RoomID: "r2", Present: true}

	require.Equal(t, 2, NewFirstLastAvoidance().Penalty(ctx, state))
}

func TestFirstLastAvoidanceCleanForMiddlePeriods(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 1), TeacherID: "t1", RoomID: "r1", Present: true}

	require.Equal(t, 0, NewFirstLastAvoidance().Penalty(ctx, state))
}

func TestCollaborationShouldApplyRequiresGradeLevels(t *testing.T) {
	ctx, _ := buildCtxState()
	require.True(t, NewCollaboration().ShouldApply(ctx))

	ctx.Instance.Classes[0].GradeLevel = nil
	require.False(t, NewCollaboration().ShouldApply(ctx))
}

func TestCollaborationPenalisesUnpairedOccurrence(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdx := ctx.RequestsByClassSubject["c1\x00math"][0]
	state.Placements[mathIdx] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}

	// Only one grade-5 class exists, so its one occurrence in this slot
	// is never matched by a sibling class — penalised as "unpaired".
	require.Equal(t, 1, NewCollaboration().Penalty(ctx, state))
}
