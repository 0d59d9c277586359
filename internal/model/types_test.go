package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func period5Day() PeriodConfig {
	cfg := PeriodConfig{
		Days:          []Day{Saturday, Sunday, Monday},
		PeriodsPerDay: map[Day]int{Saturday: 4, Sunday: 5, Monday: 4},
	}
	cfg.Prepare()
	return cfg
}

func TestPeriodConfigSlotAndDayPeriodRoundTrip(t *testing.T) {
	cfg := period5Day()
	require.Equal(t, 13, cfg.TotalSlots())
	require.Equal(t, 5, cfg.Pmax())
	require.True(t, cfg.HasVariablePeriods())

	for _, tc := range []struct {
		day    Day
		period int
		slot   int
	}{
		{Saturday, 0, 0},
		{Saturday, 3, 3},
		{Sunday, 0, 4},
		{Sunday, 4, 8},
		{Monday, 0, 9},
		{Monday, 3, 12},
	} {
		require.Equal(t, tc.slot, cfg.Slot(tc.day, tc.period))
		gotDay, gotPeriod := cfg.DayPeriod(tc.slot)
		require.Equal(t, tc.day, gotDay)
		require.Equal(t, tc.period, gotPeriod)
	}
}

func TestPeriodConfigHasVariablePeriodsFalseWhenUniform(t *testing.T) {
	cfg := PeriodConfig{Days: []Day{Saturday, Sunday}, PeriodsPerDay: map[Day]int{Saturday: 4, Sunday: 4}}
	cfg.Prepare()
	require.False(t, cfg.HasVariablePeriods())
}

func TestPeriodConfigDayIndex(t *testing.T) {
	cfg := period5Day()
	require.Equal(t, 0, cfg.DayIndex(Saturday))
	require.Equal(t, 2, cfg.DayIndex(Monday))
	require.Equal(t, -1, cfg.DayIndex(Friday))
}

func TestGradeCategoryBins(t *testing.T) {
	require.Equal(t, CategoryAlphaPrimary, GradeCategory(1))
	require.Equal(t, CategoryAlphaPrimary, GradeCategory(3))
	require.Equal(t, CategoryBetaPrimary, GradeCategory(4))
	require.Equal(t, CategoryBetaPrimary, GradeCategory(6))
	require.Equal(t, CategoryMiddle, GradeCategory(7))
	require.Equal(t, CategoryMiddle, GradeCategory(9))
	require.Equal(t, CategoryHigh, GradeCategory(10))
	require.Equal(t, CategoryHigh, GradeCategory(12))
}

func TestEffectiveWeightRounds(t *testing.T) {
	require.Equal(t, 50, EffectiveWeight(0.5))
	require.Equal(t, 100, EffectiveWeight(1.0))
	require.Equal(t, 0, EffectiveWeight(0))
}

func TestTeacherQualifiedForRespectsRestrictToPrimary(t *testing.T) {
	t1 := Teacher{PrimarySubjectIDs: []string{"math"}, AllowedSubjectIDs: []string{"science"}}
	require.True(t, t1.QualifiedFor("math"))
	require.True(t, t1.QualifiedFor("science"))
	require.False(t, t1.QualifiedFor("art"))

	restricted := Teacher{PrimarySubjectIDs: []string{"math"}, AllowedSubjectIDs: []string{"science"}, RestrictToPrimarySubjects: true}
	require.True(t, restricted.QualifiedFor("math"))
	require.False(t, restricted.QualifiedFor("science"))
}

func TestTeacherAvailableAtBoundsChecks(t *testing.T) {
	teacher := Teacher{Availability: map[Day][]bool{Saturday: {true, false, true}}}
	require.True(t, teacher.AvailableAt(Saturday, 0))
	require.False(t, teacher.AvailableAt(Saturday, 1))
	require.False(t, teacher.AvailableAt(Saturday, 99))
	require.False(t, teacher.AvailableAt(Sunday, 0))
}

func TestClassGroupEffectiveCategory(t *testing.T) {
	grade := 8
	byGrade := ClassGroup{GradeLevel: &grade}
	require.Equal(t, CategoryMiddle, byGrade.EffectiveCategory())

	explicit := CategoryHigh
	byExplicit := ClassGroup{Category: &explicit, GradeLevel: &grade}
	require.Equal(t, CategoryHigh, byExplicit.EffectiveCategory())

	require.Equal(t, CategoryMiddle, ClassGroup{}.EffectiveCategory())
}

func TestClassGroupTotalPeriodsPerWeek(t *testing.T) {
	c := ClassGroup{SubjectRequirements: map[string]SubjectRequirement{
		"math":    {PeriodsPerWeek: 4},
		"science": {PeriodsPerWeek: 3},
	}}
	require.Equal(t, 7, c.TotalPeriodsPerWeek())
}
