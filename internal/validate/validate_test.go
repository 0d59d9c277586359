package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maktab-edu/timetable-solver/internal/model"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
)

// validInstance builds a minimal but fully valid instance: one day of
// four periods, one class requiring exactly four periods of math taught
// by a qualified, fully-available teacher.
func validInstance() *model.Instance {
	return &model.Instance{
		Config: model.PeriodConfig{
			Days:          []model.Day{model.Saturday},
			PeriodsPerDay: map[model.Day]int{model.Saturday: 4},
		},
		Subjects: []model.Subject{
			{ID: "math", Name: "Math"},
		},
		Rooms: []model.Room{
			{ID: "r1", Name: "Room 1", Capacity: 30},
		},
		Teachers: []model.Teacher{
			{
				ID:                "t1",
				FullName:          "Teacher One",
				PrimarySubjectIDs: []string{"math"},
				Availability:      map[model.Day][]bool{model.Saturday: {true, true, true, true}},
				MaxPeriodsPerWeek: 20,
			},
		},
		Classes: []model.ClassGroup{
			{
				ID:           "c1",
				Name:         "Class 1",
				StudentCount: 20,
				SubjectRequirements: map[string]model.SubjectRequirement{
					"math": {PeriodsPerWeek: 4},
				},
			},
		},
	}
}

func asValidationErr(t *testing.T, err error) *apperrors.Error {
	t.Helper()
	require.Error(t, err)
	var e *apperrors.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, apperrors.ErrValidation.Code, e.Code)
	return e
}

func TestValidateAcceptsAFullyValidInstance(t *testing.T) {
	require.NoError(t, New().Validate(validInstance()))
}

func TestValidateRejectsStructTagFailure(t *testing.T) {
	inst := validInstance()
	inst.Teachers[0].ID = ""
	asValidationErr(t, New().Validate(inst))
}

func TestValidateRejectsZeroTotalSlots(t *testing.T) {
	inst := validInstance()
	inst.Config.PeriodsPerDay[model.Saturday] = 0
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "zero total slots")
}

func TestValidateRejectsInvalidCustomCategory(t *testing.T) {
	inst := validInstance()
	bogus := model.Category("NOT_A_REAL_CATEGORY")
	inst.Subjects[0].IsCustom = true
	inst.Subjects[0].CustomCategory = &bogus
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "customCategory")
}

func TestValidateRejectsAvailabilityLengthMismatch(t *testing.T) {
	inst := validInstance()
	inst.Teachers[0].Availability[model.Saturday] = []bool{true, true}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "availability")
}

func TestValidateRejectsUnknownSubjectRequirement(t *testing.T) {
	inst := validInstance()
	inst.Classes[0].SubjectRequirements["ghost"] = model.SubjectRequirement{PeriodsPerWeek: 1}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "unknown subject")
}

func TestValidateRejectsSubjectTotalBelowWeekSlots(t *testing.T) {
	inst := validInstance()
	inst.Classes[0].SubjectRequirements["math"] = model.SubjectRequirement{PeriodsPerWeek: 2}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "gap of")
}

func TestValidateRejectsSubjectTotalAboveWeekSlots(t *testing.T) {
	inst := validInstance()
	inst.Classes[0].SubjectRequirements["math"] = model.SubjectRequirement{PeriodsPerWeek: 6}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "excess of")
}

func TestValidateSingleTeacherModeRequiresClassTeacherID(t *testing.T) {
	inst := validInstance()
	inst.Classes[0].SingleTeacherMode = true
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "without a classTeacherId")
}

func TestValidateSingleTeacherModeRejectsUnknownClassTeacher(t *testing.T) {
	inst := validInstance()
	ghost := "no-such-teacher"
	inst.Classes[0].SingleTeacherMode = true
	inst.Classes[0].ClassTeacherID = &ghost
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "does not reference a known teacher")
}

func TestValidateSingleTeacherModeRejectsUnqualifiedTeacher(t *testing.T) {
	inst := validInstance()
	inst.Teachers = append(inst.Teachers, model.Teacher{
		ID:                "t2",
		FullName:          "Teacher Two",
		PrimarySubjectIDs: []string{"art"},
		Availability:      map[model.Day][]bool{model.Saturday: {true, true, true, true}},
		MaxPeriodsPerWeek: 20,
	})
	t2 := "t2"
	inst.Classes[0].SingleTeacherMode = true
	inst.Classes[0].ClassTeacherID = &t2
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "is not qualified")
}

func TestValidateSingleTeacherModeRejectsInsufficientAvailability(t *testing.T) {
	inst := validInstance()
	t1 := "t1"
	inst.Teachers[0].Availability[model.Saturday] = []bool{true, false, false, false}
	inst.Classes[0].SingleTeacherMode = true
	inst.Classes[0].ClassTeacherID = &t1
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "available slots")
}

func TestValidateSingleTeacherModeRejectsInsufficientMaxPeriodsPerWeek(t *testing.T) {
	inst := validInstance()
	t1 := "t1"
	inst.Teachers[0].MaxPeriodsPerWeek = 2
	inst.Classes[0].SingleTeacherMode = true
	inst.Classes[0].ClassTeacherID = &t1
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "maxPeriodsPerWeek")
}

func TestValidateRejectsFixedLessonUnknownTeacher(t *testing.T) {
	inst := validInstance()
	inst.FixedLessons = []model.FixedLesson{
		{ClassID: "c1", SubjectID: "math", TeacherID: "ghost", RoomID: "r1", Day: model.Saturday, PeriodIndex: 0, Length: 1},
	}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "unknown teacher")
}

func TestValidateRejectsFixedLessonUnknownRoom(t *testing.T) {
	inst := validInstance()
	inst.FixedLessons = []model.FixedLesson{
		{ClassID: "c1", SubjectID: "math", TeacherID: "t1", RoomID: "ghost", Day: model.Saturday, PeriodIndex: 0, Length: 1},
	}
	err := New().Validate(inst)
	e := asValidationErr(t, err)
	require.Contains(t, e.Error(), "unknown room")
}
