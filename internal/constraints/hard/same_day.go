package hard

import (
	"fmt"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

// SameDay enforces that a multi-period request never straddles
// midnight: day(start) must equal day(start+length-1), grounded on
// constraints/hard/same_day.py.
type SameDay struct{}

func NewSameDay() *SameDay { return &SameDay{} }

func (p *SameDay) Name() string     { return "hard.same_day" }
func (p *SameDay) Priority() int    { return 10 }
func (p *SameDay) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *SameDay) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *SameDay) Reset()                                {}

func (p *SameDay) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	if req.Length <= 1 {
		return true
	}
	startDay, _ := ctx.Instance.Config.DayPeriod(cand.Start)
	endDay, _ := ctx.Instance.Config.DayPeriod(cand.Start + req.Length - 1)
	return startDay == endDay
}

func (p *SameDay) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for i, a := range state.Placements {
		req := ctx.Requests[i]
		if !a.Present || req.Length <= 1 {
			continue
		}
		startDay, _ := ctx.Instance.Config.DayPeriod(a.Start)
		endDay, _ := ctx.Instance.Config.DayPeriod(a.Start + req.Length - 1)
		if startDay != endDay {
			violations = append(violations, constraints.Violation{
				Constraint: p.Name(), RequestIDs: []int{i},
				Detail: fmt.Sprintf("request %d for class %q straddles midnight", i, req.ClassID),
			})
		}
	}
	return violations
}
