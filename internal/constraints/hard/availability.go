package hard

import (
	"fmt"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

// Availability enforces that teacher[r] and room[r] stay within their
// pruned candidate sets and that the assigned teacher is marked
// available for every slot the request occupies.
type Availability struct{}

func NewAvailability() *Availability { return &Availability{} }

func (p *Availability) Name() string     { return "hard.availability_qualification" }
func (p *Availability) Priority() int    { return 5 }
func (p *Availability) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *Availability) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *Availability) Reset()                                {}

func (p *Availability) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	if !contains(req.CandidateTeachers, cand.TeacherID) || !contains(req.CandidateRooms, cand.RoomID) {
		return false
	}
	teacher := ctx.TeacherByID[cand.TeacherID]
	if teacher == nil {
		return false
	}
	for s := cand.Start; s < cand.Start+req.Length; s++ {
		d, period := ctx.Instance.Config.DayPeriod(s)
		if !teacher.AvailableAt(d, period) {
			return false
		}
	}
	return true
}

func (p *Availability) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		teacher := ctx.TeacherByID[a.TeacherID]
		if teacher == nil || !teacher.QualifiedFor(req.SubjectID) {
			violations = append(violations, constraints.Violation{
				Constraint: p.Name(), RequestIDs: []int{i},
				Detail: fmt.Sprintf("teacher %q not qualified for subject %q", a.TeacherID, req.SubjectID),
			})
			continue
		}
		for s := a.Start; s < a.Start+req.Length; s++ {
			d, period := ctx.Instance.Config.DayPeriod(s)
			if !teacher.AvailableAt(d, period) {
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: []int{i},
					Detail: fmt.Sprintf("teacher %q unavailable at %s period %d", a.TeacherID, d, period),
				})
			}
		}
	}
	return violations
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
