// Package validate normalises and validates a raw Instance before it
// reaches the solver, mirroring the teacher's validator.Validate-backed
// service layer (see internal/service/grade_config_service.go) but
// checking the richer invariants of §3 that struct tags cannot express.
package validate

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/maktab-edu/timetable-solver/internal/model"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
)

// Validator checks instance shape (struct tags) and semantic invariants.
type Validator struct {
	tags *validator.Validate
}

// New builds a Validator with the default go-playground/validator/v10
// tag set, identical to the construction pattern the teacher's services
// use for request DTOs.
func New() *Validator {
	return &Validator{tags: validator.New()}
}

// Validate runs struct-tag validation followed by every semantic check
// in §3 and §4.3 "No empty periods"/"Curriculum-structure". It returns
// the first violation found, wrapped as apperrors.ErrValidation, naming
// the offending entity the way S5/S6 require.
func (v *Validator) Validate(inst *model.Instance) error {
	if err := v.tags.Struct(inst); err != nil {
		return apperrors.ErrValidation.WithDetail(err.Error())
	}

	inst.Config.Prepare()
	n := inst.Config.TotalSlots()
	if n <= 0 {
		return apperrors.ErrValidation.WithDetail("period configuration carries zero total slots")
	}

	subjectIDs := make(map[string]model.Subject, len(inst.Subjects))
	for _, s := range inst.Subjects {
		if s.IsCustom && s.CustomCategory != nil {
			switch *s.CustomCategory {
			case model.CategoryAlphaPrimary, model.CategoryBetaPrimary, model.CategoryMiddle, model.CategoryHigh:
			default:
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"subject %q: customCategory %q is not one of the four Afghan grade bins", s.ID, *s.CustomCategory))
			}
		}
		subjectIDs[s.ID] = s
	}

	teachersByID := make(map[string]model.Teacher, len(inst.Teachers))
	for _, t := range inst.Teachers {
		for _, d := range inst.Config.Days {
			if len(t.Availability[d]) != inst.Config.PeriodsPerDay[d] {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"teacher %q: availability for %s has %d entries, want %d",
					t.ID, d, len(t.Availability[d]), inst.Config.PeriodsPerDay[d]))
			}
		}
		teachersByID[t.ID] = t
	}

	roomsByID := make(map[string]model.Room, len(inst.Rooms))
	for _, r := range inst.Rooms {
		roomsByID[r.ID] = r
	}

	for _, c := range inst.Classes {
		total := 0
		for subjectID, req := range c.SubjectRequirements {
			if _, ok := subjectIDs[subjectID]; !ok {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"class %q: requires unknown subject %q", c.ID, subjectID))
			}
			total += req.PeriodsPerWeek
		}

		switch {
		case total < n:
			return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
				"class %q: subject requirements total %d periods but the week carries %d (gap of %d)",
				c.ID, total, n, n-total))
		case total > n:
			return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
				"class %q: subject requirements total %d periods but the week carries %d (excess of %d)",
				c.ID, total, n, total-n))
		}

		if c.SingleTeacherMode {
			if c.ClassTeacherID == nil {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"class %q: singleTeacherMode set without a classTeacherId", c.ID))
			}
			teacher, ok := teachersByID[*c.ClassTeacherID]
			if !ok {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"class %q: classTeacherId %q does not reference a known teacher", c.ID, *c.ClassTeacherID))
			}
			for subjectID := range c.SubjectRequirements {
				if !teacher.QualifiedFor(subjectID) {
					return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
						"class %q: single class teacher %q is not qualified for required subject %q",
						c.ID, teacher.ID, subjectID))
				}
			}
			available := 0
			for _, d := range inst.Config.Days {
				for _, free := range teacher.Availability[d] {
					if free {
						available++
					}
				}
			}
			if available < total {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"class %q: single class teacher %q has only %d available slots for %d required periods",
					c.ID, teacher.ID, available, total))
			}
			if teacher.MaxPeriodsPerWeek < total {
				return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
					"class %q: single class teacher %q maxPeriodsPerWeek %d is below required %d",
					c.ID, teacher.ID, teacher.MaxPeriodsPerWeek, total))
			}
		}
	}

	for _, fl := range inst.FixedLessons {
		if _, ok := teachersByID[fl.TeacherID]; !ok {
			return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
				"fixed lesson for class %q: unknown teacher %q", fl.ClassID, fl.TeacherID))
		}
		if _, ok := roomsByID[fl.RoomID]; !ok {
			return apperrors.ErrValidation.WithDetail(fmt.Sprintf(
				"fixed lesson for class %q: unknown room %q", fl.ClassID, fl.RoomID))
		}
	}

	return nil
}
