package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// firstLastWeight is the fixed objective coefficient for plugins not
// driven by a Preferences field; the Strategy Selector decides whether
// they are included at all, per §4.4 "Implementations may add them
// under budget".
const firstLastWeight = 50

// FirstLastAvoidance penalises placing any lesson in the very first or
// very last period of a day, catering to the "first/last" soft set
// member named in the Strategy table (§4.5).
type FirstLastAvoidance struct{}

func NewFirstLastAvoidance() *FirstLastAvoidance { return &FirstLastAvoidance{} }

func (p *FirstLastAvoidance) Name() string     { return "soft.first_last_period_avoidance" }
func (p *FirstLastAvoidance) Priority() int    { return 80 }
func (p *FirstLastAvoidance) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *FirstLastAvoidance) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *FirstLastAvoidance) Reset()                                {}

func (p *FirstLastAvoidance) Weight(prefs model.Preferences) int { return firstLastWeight }

func (p *FirstLastAvoidance) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	penalty := 0
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		d, period := ctx.Instance.Config.DayPeriod(a.Start)
		last := ctx.Instance.Config.PeriodsPerDay[d] - 1
		if period == 0 || period == last {
			penalty++
		}
		_ = i
	}
	return penalty
}

// Collaboration rewards (by penalising its absence) two classes of the
// same grade taking the same subject in the same slot, so co-teaching
// pairs stay aligned; the "collaboration" soft set member of §4.5.
type Collaboration struct{}

func NewCollaboration() *Collaboration { return &Collaboration{} }

func (p *Collaboration) Name() string     { return "soft.collaboration" }
func (p *Collaboration) Priority() int    { return 90 }
func (p *Collaboration) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *Collaboration) ShouldApply(ctx *cpmodel.Context) bool { return hasGradeLevels(ctx) }
func (p *Collaboration) Reset()                                {}

func (p *Collaboration) Weight(prefs model.Preferences) int { return firstLastWeight }

func hasGradeLevels(ctx *cpmodel.Context) bool {
	for _, c := range ctx.Instance.Classes {
		if c.GradeLevel != nil {
			return true
		}
	}
	return false
}

func (p *Collaboration) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	type occ struct {
		slot    int
		subject string
	}
	byGrade := make(map[int]map[occ]int)
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		class := ctx.ClassByID[req.ClassID]
		if class == nil || class.GradeLevel == nil {
			continue
		}
		grade := *class.GradeLevel
		if byGrade[grade] == nil {
			byGrade[grade] = make(map[occ]int)
		}
		byGrade[grade][occ{slot: a.Start, subject: req.SubjectID}]++
	}
	penalty := 0
	for _, occs := range byGrade {
		for _, count := range occs {
			if count < 2 {
				penalty++
			}
		}
	}
	return penalty
}
