package hard

import (
	"fmt"
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// Workload enforces a teacher's maxPeriodsPerWeek, optional
// maxPeriodsPerDay and optional maxConsecutivePeriods caps.
type Workload struct{}

func NewWorkload() *Workload { return &Workload{} }

func (p *Workload) Name() string     { return "hard.teacher_workload" }
func (p *Workload) Priority() int    { return 15 }
func (p *Workload) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *Workload) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *Workload) Reset()                                {}

func (p *Workload) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	if cand.TeacherID == "" {
		return true
	}
	teacher := ctx.TeacherByID[cand.TeacherID]
	if teacher == nil {
		return false
	}
	req := ctx.Requests[reqID]

	weekTotal := req.Length
	dayTotals := make(map[model.Day]int)
	candDay, _ := ctx.Instance.Config.DayPeriod(cand.Start)
	periodsByDay := make(map[model.Day][]int)
	for s := cand.Start; s < cand.Start+req.Length; s++ {
		d, per := ctx.Instance.Config.DayPeriod(s)
		periodsByDay[d] = append(periodsByDay[d], per)
	}
	dayTotals[candDay] += req.Length

	for i, a := range state.Placements {
		if i == reqID || !a.Present || a.TeacherID != cand.TeacherID {
			continue
		}
		other := ctx.Requests[i]
		weekTotal += other.Length
		for s := a.Start; s < a.Start+other.Length; s++ {
			d, per := ctx.Instance.Config.DayPeriod(s)
			dayTotals[d] += 1
			periodsByDay[d] = append(periodsByDay[d], per)
		}
	}

	if weekTotal > teacher.MaxPeriodsPerWeek {
		return false
	}
	if teacher.MaxPeriodsPerDay != nil {
		for _, total := range dayTotals {
			if total > *teacher.MaxPeriodsPerDay {
				return false
			}
		}
	}
	if teacher.MaxConsecutivePeriods != nil {
		for _, periods := range periodsByDay {
			if longestRun(periods) > *teacher.MaxConsecutivePeriods {
				return false
			}
		}
	}
	return true
}

func longestRun(periods []int) int {
	if len(periods) == 0 {
		return 0
	}
	sorted := append([]int(nil), periods...)
	sort.Ints(sorted)
	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
		} else if sorted[i] != sorted[i-1] {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

func (p *Workload) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	weekTotal := make(map[string]int)
	dayTotal := make(map[string]map[model.Day]int)
	periodsByDayByTeacher := make(map[string]map[model.Day][]int)

	for i, a := range state.Placements {
		if !a.Present || a.TeacherID == "" {
			continue
		}
		req := ctx.Requests[i]
		weekTotal[a.TeacherID] += req.Length
		if dayTotal[a.TeacherID] == nil {
			dayTotal[a.TeacherID] = make(map[model.Day]int)
			periodsByDayByTeacher[a.TeacherID] = make(map[model.Day][]int)
		}
		for s := a.Start; s < a.Start+req.Length; s++ {
			d, per := ctx.Instance.Config.DayPeriod(s)
			dayTotal[a.TeacherID][d]++
			periodsByDayByTeacher[a.TeacherID][d] = append(periodsByDayByTeacher[a.TeacherID][d], per)
		}
	}

	var violations []constraints.Violation
	for _, t := range ctx.Instance.Teachers {
		if weekTotal[t.ID] > t.MaxPeriodsPerWeek {
			violations = append(violations, constraints.Violation{
				Constraint: p.Name(),
				Detail:     fmt.Sprintf("teacher %q: %d periods exceeds maxPeriodsPerWeek %d", t.ID, weekTotal[t.ID], t.MaxPeriodsPerWeek),
			})
		}
		if t.MaxPeriodsPerDay != nil {
			for d, total := range dayTotal[t.ID] {
				if total > *t.MaxPeriodsPerDay {
					violations = append(violations, constraints.Violation{
						Constraint: p.Name(),
						Detail:     fmt.Sprintf("teacher %q: %d periods on %s exceeds maxPeriodsPerDay %d", t.ID, total, d, *t.MaxPeriodsPerDay),
					})
				}
			}
		}
		if t.MaxConsecutivePeriods != nil {
			for d, periods := range periodsByDayByTeacher[t.ID] {
				if longestRun(periods) > *t.MaxConsecutivePeriods {
					violations = append(violations, constraints.Violation{
						Constraint: p.Name(),
						Detail:     fmt.Sprintf("teacher %q: consecutive run on %s exceeds maxConsecutivePeriods %d", t.ID, d, *t.MaxConsecutivePeriods),
					})
				}
			}
		}
	}
	return violations
}
