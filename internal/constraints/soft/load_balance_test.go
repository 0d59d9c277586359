package soft

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

func TestLoadBalancePenalisesUnevenLoad(t *testing.T) {
	ctx, state := buildCtxState()
	mathIdxs := ctx.RequestsByClassSubject["c1\x00math"]
	artIdxs := ctx.RequestsByClassSubject["c1\x00art"]
	// t1 carries 3 lessons, t2 carries 1: avg is 2, so each deviates by 1.
	state.Placements[mathIdxs[0]] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 0), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[mathIdxs[1]] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 1), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdxs[0]] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 2), TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[artIdxs[1]] = cpmodel.Placement{Start: ctx.Instance.Config.Slot(model.Saturday, 3), TeacherID: "t2", RoomID: "r1", Present: true}

	require.Equal(t, 2, NewLoadBalance().Penalty(ctx, state))
}

func TestLoadBalanceZeroWhenNoPlacements(t *testing.T) {
	ctx, state := buildCtxState()
	require.Equal(t, 0, NewLoadBalance().Penalty(ctx, state))
}

func TestLoadBalanceShouldApplyOnlyWithMultipleTeachers(t *testing.T) {
	ctx, _ := buildCtxState()
	require.True(t, NewLoadBalance().ShouldApply(ctx))

	ctx.Instance.Teachers = ctx.Instance.Teachers[:1]
	require.False(t, NewLoadBalance().ShouldApply(ctx))
}
