package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// DistributeDifficult penalises a class having more than one difficult
// subject on the same day. Default weight 50.
type DistributeDifficult struct{}

func NewDistributeDifficult() *DistributeDifficult { return &DistributeDifficult{} }

func (p *DistributeDifficult) Name() string     { return "soft.distribute_difficult_subjects" }
func (p *DistributeDifficult) Priority() int    { return 70 }
func (p *DistributeDifficult) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *DistributeDifficult) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *DistributeDifficult) Reset()                                {}

func (p *DistributeDifficult) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.DistributeDifficultSubjectsWeight)
}

func (p *DistributeDifficult) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	byClassDay := make(map[string]int)
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		subject := ctx.SubjectByID[req.SubjectID]
		if subject == nil || !subject.IsDifficult {
			continue
		}
		d, _ := ctx.Instance.Config.DayPeriod(a.Start)
		key := req.ClassID + "\x00" + string(d)
		byClassDay[key]++
	}
	penalty := 0
	for _, count := range byClassDay {
		if count > 1 {
			penalty += count - 1
		}
	}
	return penalty
}
