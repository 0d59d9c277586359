package cpmodel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/model"
)

func baseInstance() *model.Instance {
	cfg := model.PeriodConfig{
		Days:          []model.Day{model.Saturday},
		PeriodsPerDay: map[model.Day]int{model.Saturday: 4},
	}
	cfg.Prepare()
	return &model.Instance{
		Config: cfg,
		Rooms: []model.Room{
			{ID: "lab", Name: "Science Lab", Capacity: 30, Type: "lab", Features: []string{"projector"}},
			{ID: "plain", Name: "Plain Room", Capacity: 10, Type: "classroom"},
		},
		Subjects: []model.Subject{
			{ID: "science", Name: "Science", RequiredRoomType: strptr("lab"), RequiredFeatures: []string{"projector"}},
			{ID: "math", Name: "Math"},
		},
		Teachers: []model.Teacher{
			{
				ID: "qualified", FullName: "Qualified Teacher",
				PrimarySubjectIDs: []string{"science"},
				Availability:      map[model.Day][]bool{model.Saturday: {true, true, true, true}},
				MaxPeriodsPerWeek: 20,
			},
			{
				ID: "unqualified", FullName: "Unqualified Teacher",
				PrimarySubjectIDs: []string{"math"},
				Availability:      map[model.Day][]bool{model.Saturday: {true, true, true, true}},
				MaxPeriodsPerWeek: 20,
			},
			{
				ID: "unavailable", FullName: "Never Free Teacher",
				PrimarySubjectIDs: []string{"science"},
				Availability:      map[model.Day][]bool{model.Saturday: {false, false, false, false}},
				MaxPeriodsPerWeek: 20,
			},
		},
		Classes: []model.ClassGroup{
			{
				ID: "c1", Name: "Class 1", StudentCount: 25,
				SubjectRequirements: map[string]model.SubjectRequirement{"science": {PeriodsPerWeek: 1}},
			},
		},
	}
}

func strptr(s string) *string { return &s }

func TestBuildContextPrunesCandidateTeachersByQualificationAndAvailability(t *testing.T) {
	ctx := BuildContext(baseInstance())
	require.Len(t, ctx.Requests, 1)
	req := ctx.Requests[0]
	require.Equal(t, []string{"qualified"}, req.CandidateTeachers,
		"unqualified teacher and the never-available teacher must both be pruned")
}

func TestBuildContextPrunesCandidateRoomsByTypeCapacityAndFeatures(t *testing.T) {
	ctx := BuildContext(baseInstance())
	req := ctx.Requests[0]
	require.Equal(t, []string{"lab"}, req.CandidateRooms,
		"the plain classroom lacks the science subject's required type/feature")
}

func TestBuildContextSingleTeacherModeForcesSoleCandidate(t *testing.T) {
	inst := baseInstance()
	teacherID := "unqualified" // deliberately not QualifiedFor("science")
	inst.Classes[0].SingleTeacherMode = true
	inst.Classes[0].ClassTeacherID = &teacherID

	ctx := BuildContext(inst)
	require.Equal(t, []string{teacherID}, ctx.Requests[0].CandidateTeachers,
		"single-teacher-mode bypasses qualification/availability pruning entirely")
}

func TestBuildContextAppliesFixedLessonsToOneOccurrencePerFixedLesson(t *testing.T) {
	inst := baseInstance()
	inst.Classes[0].SubjectRequirements["science"] = model.SubjectRequirement{PeriodsPerWeek: 2}
	inst.FixedLessons = []model.FixedLesson{
		{ClassID: "c1", SubjectID: "science", TeacherID: "qualified", RoomID: "lab", Day: model.Saturday, PeriodIndex: 0, Length: 1},
	}

	ctx := BuildContext(inst)
	require.Len(t, ctx.Requests, 2)

	fixedCount, freeCount := 0, 0
	for _, r := range ctx.Requests {
		if r.Fixed != nil {
			fixedCount++
			require.Equal(t, "qualified", r.Fixed.TeacherID)
			require.Equal(t, "lab", r.Fixed.RoomID)
		} else {
			freeCount++
		}
	}
	require.Equal(t, 1, fixedCount)
	require.Equal(t, 1, freeCount)
}

func TestBuildContextIndexesRequestsByClassSubject(t *testing.T) {
	inst := baseInstance()
	inst.Classes[0].SubjectRequirements["science"] = model.SubjectRequirement{PeriodsPerWeek: 3}
	ctx := BuildContext(inst)
	idxs := ctx.RequestsByClassSubject["c1\x00science"]
	require.Len(t, idxs, 3)
}
