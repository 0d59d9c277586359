// Package soft implements the IMPORTANT/OPTIONAL-stage preference
// plugins of §4.4, each grounded on the corresponding module under
// constraints/soft/ of the original implementation. Default weights
// (applied by internal/dto when an instance omits Preferences
// entirely) are documented per plugin and match the original's
// DEFAULT_WEIGHT constants.
package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// MorningDifficult penalises a difficult subject landing in the
// afternoon half of the day, grounded on
// constraints/soft/morning_difficult.py. Default weight 50
// (preference 0.5).
type MorningDifficult struct{}

func NewMorningDifficult() *MorningDifficult { return &MorningDifficult{} }

func (p *MorningDifficult) Name() string     { return "soft.prefer_morning_difficult" }
func (p *MorningDifficult) Priority() int    { return 0 }
func (p *MorningDifficult) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *MorningDifficult) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *MorningDifficult) Reset()                                {}

func (p *MorningDifficult) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.PreferMorningForDifficultWeight)
}

func (p *MorningDifficult) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	pmax := ctx.Instance.Config.Pmax()
	morningCutoff := (pmax + 1) / 2 // ceil(Pmax/2)
	penalty := 0
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		subject := ctx.SubjectByID[req.SubjectID]
		if subject == nil || !subject.IsDifficult {
			continue
		}
		_, period := ctx.Instance.Config.DayPeriod(a.Start)
		if period >= morningCutoff {
			penalty++
		}
	}
	return penalty
}
