package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// TeacherGaps penalises a teacher having a free period between two
// lessons on the same day, grounded on constraints/soft/teacher_gaps.py.
// The gating condition is the real teacher[i]=teacher[j]=t conjunction
// read directly off the assigned state, which sidesteps the original's
// double-counting ambiguity around forced-vs-free teacher variables
// (see SPEC_FULL.md §9, open question 2): there is no separate
// reification variable here to disagree with the ground truth.
// Default weight 100 (preference 1.0).
type TeacherGaps struct{}

func NewTeacherGaps() *TeacherGaps { return &TeacherGaps{} }

func (p *TeacherGaps) Name() string     { return "soft.avoid_teacher_gaps" }
func (p *TeacherGaps) Priority() int    { return 10 }
func (p *TeacherGaps) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *TeacherGaps) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *TeacherGaps) Reset()                                {}

func (p *TeacherGaps) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.AvoidTeacherGapsWeight)
}

func (p *TeacherGaps) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	type key struct {
		teacher string
		day     model.Day
	}
	byTeacherDay := make(map[key][]int)
	for i, a := range state.Placements {
		if !a.Present || a.TeacherID == "" {
			continue
		}
		d, period := ctx.Instance.Config.DayPeriod(a.Start)
		k := key{a.TeacherID, d}
		byTeacherDay[k] = append(byTeacherDay[k], period)
	}
	penalty := 0
	for _, periods := range byTeacherDay {
		for i := 0; i < len(periods); i++ {
			for j := i + 1; j < len(periods); j++ {
				diff := periods[i] - periods[j]
				if diff < 0 {
					diff = -diff
				}
				if diff > 1 {
					penalty++
				}
			}
		}
	}
	return penalty
}
