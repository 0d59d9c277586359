package hard

import (
	"fmt"
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// Curriculum enforces the Afghan curriculum-structure rules of §4.3,
// transliterated from constraints/hard/consecutive.py: at most two
// occurrences of a (class, subject) pair on any one day; at most one
// if the subject's consecutivePeriods is <= 1; and if there are
// exactly two on a day and consecutivePeriods >= 2, they must be
// adjacent.
type Curriculum struct{}

func NewCurriculum() *Curriculum { return &Curriculum{} }

func (p *Curriculum) Name() string     { return "hard.curriculum_structure" }
func (p *Curriculum) Priority() int    { return 20 }
func (p *Curriculum) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *Curriculum) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *Curriculum) Reset()                                {}

func (p *Curriculum) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	day, _ := ctx.Instance.Config.DayPeriod(cand.Start)

	siblings := siblingsOnDay(ctx, state, reqID, day)
	count := len(siblings) + 1
	if count > 2 {
		return false
	}
	if req.Consecutive != nil && *req.Consecutive <= 1 && count > 1 {
		return false
	}
	if count == 2 && req.Consecutive != nil && *req.Consecutive >= 2 {
		other := siblings[0]
		return adjacent(ctx, cand.Start, req.Length, state.Placements[other].Start, ctx.Requests[other].Length)
	}
	return true
}

func siblingsOnDay(ctx *cpmodel.Context, state *cpmodel.State, reqID int, day model.Day) []int {
	req := ctx.Requests[reqID]
	var out []int
	for _, idx := range ctx.RequestsByClassSubject[req.ClassID+"\x00"+req.SubjectID] {
		if idx == reqID || !state.Placements[idx].Present {
			continue
		}
		d, _ := ctx.Instance.Config.DayPeriod(state.Placements[idx].Start)
		if d == day {
			out = append(out, idx)
		}
	}
	return out
}

func adjacent(ctx *cpmodel.Context, startA, lengthA, startB, lengthB int) bool {
	return startB == startA+lengthA || startA == startB+lengthB
}

func (p *Curriculum) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for key, idxs := range ctx.RequestsByClassSubject {
		byDay := make(map[model.Day][]int)
		for _, idx := range idxs {
			a := state.Placements[idx]
			if !a.Present {
				continue
			}
			d, _ := ctx.Instance.Config.DayPeriod(a.Start)
			byDay[d] = append(byDay[d], idx)
		}
		days := make([]model.Day, 0, len(byDay))
		for d := range byDay {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		for _, d := range days {
			group := byDay[d]
			req := ctx.Requests[group[0]]
			if len(group) > 2 {
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: group,
					Detail: fmt.Sprintf("%s: %d occurrences on %s exceeds the daily cap of 2", key, len(group), d),
				})
				continue
			}
			if req.Consecutive != nil && *req.Consecutive <= 1 && len(group) > 1 {
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: group,
					Detail: fmt.Sprintf("%s: subject is not back-to-back eligible but appears %d times on %s", key, len(group), d),
				})
				continue
			}
			if len(group) == 2 && req.Consecutive != nil && *req.Consecutive >= 2 {
				a, b := state.Placements[group[0]], state.Placements[group[1]]
				la, lb := ctx.Requests[group[0]].Length, ctx.Requests[group[1]].Length
				if !adjacent(ctx, a.Start, la, b.Start, lb) {
					violations = append(violations, constraints.Violation{
						Constraint: p.Name(), RequestIDs: group,
						Detail: fmt.Sprintf("%s: two same-day occurrences on %s are not adjacent", key, d),
					})
				}
			}
		}
	}
	return violations
}
