package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// LoadBalance penalises deviation from the average teacher weekly
// load, one of the "further soft constraints" §4.4 allows beyond the
// three grounded plugins. Default weight 50 (preference 0.5).
type LoadBalance struct{}

func NewLoadBalance() *LoadBalance { return &LoadBalance{} }

func (p *LoadBalance) Name() string     { return "soft.balance_teacher_load" }
func (p *LoadBalance) Priority() int    { return 30 }
func (p *LoadBalance) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *LoadBalance) ShouldApply(ctx *cpmodel.Context) bool { return len(ctx.Instance.Teachers) > 1 }
func (p *LoadBalance) Reset()                                {}

func (p *LoadBalance) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.BalanceTeacherLoadWeight)
}

func (p *LoadBalance) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	load := make(map[string]int)
	for i, a := range state.Placements {
		if !a.Present || a.TeacherID == "" {
			continue
		}
		load[a.TeacherID] += ctx.Requests[i].Length
	}
	if len(load) == 0 {
		return 0
	}
	total := 0
	for _, l := range load {
		total += l
	}
	avg := total / len(load)
	penalty := 0
	for _, l := range load {
		diff := l - avg
		if diff < 0 {
			diff = -diff
		}
		penalty += diff
	}
	return penalty
}
