package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// SubjectSpread penalises same-day co-occurrences of a (class, subject)
// pair that has more than one weekly occurrence, grounded on
// constraints/soft/subject_spread.py. Default weight 50
// (preference 0.5).
type SubjectSpread struct{}

func NewSubjectSpread() *SubjectSpread { return &SubjectSpread{} }

func (p *SubjectSpread) Name() string     { return "soft.subject_spread" }
func (p *SubjectSpread) Priority() int    { return 20 }
func (p *SubjectSpread) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *SubjectSpread) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *SubjectSpread) Reset()                                {}

func (p *SubjectSpread) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.SubjectSpreadWeight)
}

func (p *SubjectSpread) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	penalty := 0
	for _, idxs := range ctx.RequestsByClassSubject {
		if len(idxs) < 2 {
			continue
		}
		byDay := make(map[model.Day]int)
		for _, idx := range idxs {
			a := state.Placements[idx]
			if !a.Present {
				continue
			}
			d, _ := ctx.Instance.Config.DayPeriod(a.Start)
			byDay[d]++
		}
		for _, count := range byDay {
			if count > 1 {
				penalty += count - 1
			}
		}
	}
	return penalty
}
