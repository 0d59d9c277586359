package hard

import (
	"fmt"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

// Fixed forces a request's start/teacher/room to the pinned values from
// Instance.FixedLessons. The engine seeds fixed requests directly
// during construction (they are never searched); this plugin's Allows
// rejects any attempt to move one, and Validate certifies the final
// state still honours every pin.
type Fixed struct{}

func NewFixed() *Fixed { return &Fixed{} }

func (p *Fixed) Name() string     { return "hard.fixed_lessons" }
func (p *Fixed) Priority() int    { return -10 }
func (p *Fixed) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *Fixed) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *Fixed) Reset()                                {}

func (p *Fixed) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	if req.Fixed == nil {
		return true
	}
	start := ctx.Instance.Config.Slot(req.Fixed.Day, req.Fixed.PeriodIndex)
	return cand.Start == start && cand.TeacherID == req.Fixed.TeacherID && cand.RoomID == req.Fixed.RoomID
}

func (p *Fixed) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for i, req := range ctx.Requests {
		if req.Fixed == nil {
			continue
		}
		a := state.Placements[i]
		start := ctx.Instance.Config.Slot(req.Fixed.Day, req.Fixed.PeriodIndex)
		if !a.Present || a.Start != start || a.TeacherID != req.Fixed.TeacherID || a.RoomID != req.Fixed.RoomID {
			violations = append(violations, constraints.Violation{
				Constraint: p.Name(), RequestIDs: []int{i},
				Detail: fmt.Sprintf("fixed request %d for class %q was not honoured", i, req.ClassID),
			})
		}
	}
	return violations
}
