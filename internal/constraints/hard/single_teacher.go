package hard

import (
	"fmt"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

// SingleTeacher forces every request of a singleTeacherMode class onto
// that class's classTeacherId. The Variable Manager already prunes
// such a request's candidate teacher set down to one id (§4.1); this
// plugin exists as the belt-and-braces validator §4.3 calls for.
type SingleTeacher struct{}

func NewSingleTeacher() *SingleTeacher { return &SingleTeacher{} }

func (p *SingleTeacher) Name() string     { return "hard.single_teacher_mode" }
func (p *SingleTeacher) Priority() int    { return 1 }
func (p *SingleTeacher) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *SingleTeacher) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *SingleTeacher) Reset()                                {}

func (p *SingleTeacher) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	class := ctx.ClassByID[req.ClassID]
	if class == nil || !class.SingleTeacherMode || class.ClassTeacherID == nil {
		return true
	}
	return cand.TeacherID == *class.ClassTeacherID
}

func (p *SingleTeacher) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		class := ctx.ClassByID[req.ClassID]
		if class == nil || !class.SingleTeacherMode || class.ClassTeacherID == nil {
			continue
		}
		if a.TeacherID != *class.ClassTeacherID {
			violations = append(violations, constraints.Violation{
				Constraint: p.Name(), RequestIDs: []int{i},
				Detail: fmt.Sprintf("class %q is single-teacher-mode but request %d assigned to %q, not %q",
					req.ClassID, i, a.TeacherID, *class.ClassTeacherID),
			})
		}
	}
	return violations
}
