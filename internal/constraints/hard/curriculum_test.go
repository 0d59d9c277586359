package hard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

func TestCurriculumAllowsRejectsThirdSameDayOccurrence(t *testing.T) {
	ctx, state := buildCtxState(3, intptr(2))
	state.Placements[0] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[1] = cpmodel.Placement{Start: 1, TeacherID: "t1", RoomID: "r1", Present: true}

	cand := cpmodel.Placement{Start: 2, TeacherID: "t1", RoomID: "r1", Present: true}
	require.False(t, NewCurriculum().Allows(ctx, state, 2, cand), "a third same-day occurrence exceeds the daily cap of 2")
}

func TestCurriculumAllowsRejectsSecondOccurrenceWhenNotBackToBackEligible(t *testing.T) {
	ctx, state := buildCtxState(2, intptr(1)) // consecutivePeriods <= 1: not back-to-back eligible
	state.Placements[0] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}

	cand := cpmodel.Placement{Start: 1, TeacherID: "t1", RoomID: "r1", Present: true}
	require.False(t, NewCurriculum().Allows(ctx, state, 1, cand))
}

func TestCurriculumAllowsRequiresAdjacencyForTwoConsecutiveEligibleOccurrences(t *testing.T) {
	ctx, state := buildCtxState(2, intptr(2))
	state.Placements[0] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}

	nonAdjacent := cpmodel.Placement{Start: 2, TeacherID: "t1", RoomID: "r1", Present: true}
	require.False(t, NewCurriculum().Allows(ctx, state, 1, nonAdjacent))

	adjacent := cpmodel.Placement{Start: 1, TeacherID: "t1", RoomID: "r1", Present: true}
	require.True(t, NewCurriculum().Allows(ctx, state, 1, adjacent))
}

func TestCurriculumValidateFlagsNonAdjacentPair(t *testing.T) {
	ctx, state := buildCtxState(2, intptr(2))
	state.Placements[0] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[1] = cpmodel.Placement{Start: 2, TeacherID: "t1", RoomID: "r1", Present: true}

	violations := NewCurriculum().Validate(ctx, state)
	require.Len(t, violations, 1)
}

func TestCurriculumValidateCleanWhenAdjacent(t *testing.T) {
	ctx, state := buildCtxState(2, intptr(2))
	state.Placements[0] = cpmodel.Placement{Start: 0, TeacherID: "t1", RoomID: "r1", Present: true}
	state.Placements[1] = cpmodel.Placement{Start: 1, TeacherID: "t1", RoomID: "r1", Present: true}

	require.Empty(t, NewCurriculum().Validate(ctx, state))
}
