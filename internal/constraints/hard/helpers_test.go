package hard

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// twoTeacherInstance builds a two-day instance with two qualified,
// always-available teachers and one room, sized for one class with a
// configurable subject requirement — enough surface for every hard
// plugin's Allows/Validate pair to exercise both a satisfied and a
// violated case.
func twoTeacherInstance(periodsPerWeek int, consecutive *int) *model.Instance {
	cfg := model.PeriodConfig{
		Days:          []model.Day{model.Saturday, model.Sunday},
		PeriodsPerDay: map[model.Day]int{model.Saturday: 4, model.Sunday: 4},
	}
	cfg.Prepare()
	return &model.Instance{
		Config: cfg,
		Rooms: []model.Room{
			{ID: "r1", Name: "Room 1", Capacity: 30},
			{ID: "r2", Name: "Room 2", Capacity: 30},
		},
		Subjects: []model.Subject{
			{ID: "math", Name: "Math", IsDifficult: true},
		},
		Teachers: []model.Teacher{
			{
				ID: "t1", FullName: "Teacher One",
				PrimarySubjectIDs: []string{"math"},
				Availability: map[model.Day][]bool{
					model.Saturday: {true, true, true, true},
					model.Sunday:   {true, true, true, true},
				},
				MaxPeriodsPerWeek: 20,
			},
			{
				ID: "t2", FullName: "Teacher Two",
				PrimarySubjectIDs: []string{"math"},
				Availability: map[model.Day][]bool{
					model.Saturday: {true, true, true, true},
					model.Sunday:   {true, true, true, true},
				},
				MaxPeriodsPerWeek: 20,
			},
		},
		Classes: []model.ClassGroup{
			{
				ID: "c1", Name: "Class 1", StudentCount: 20,
				SubjectRequirements: map[string]model.SubjectRequirement{
					"math": {PeriodsPerWeek: periodsPerWeek, ConsecutivePeriods: consecutive},
				},
			},
		},
	}
}

func buildCtxState(periodsPerWeek int, consecutive *int) (*cpmodel.Context, *cpmodel.State) {
	ctx := cpmodel.BuildContext(twoTeacherInstance(periodsPerWeek, consecutive))
	return ctx, cpmodel.NewState(ctx)
}

func intptr(i int) *int { return &i }
