package solver

import (
	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/internal/strategy"
)

// Usage reports a soft plugin's raw penalty count against what the
// priority-pool budget actually admitted into the objective — the
// "usage stats" §4.5 requires a plugin to report when its penalties
// are silently dropped past the cap.
type Usage struct {
	Plugin   string
	Raw      int
	Admitted int
	Dropped  int
}

// Objective sums every enabled soft plugin's weighted, budget-capped
// penalty contribution for state. Each call allocates a fresh budget
// snapshot: the penalty-boolean budget caps how many of a plugin's
// penalty events may count toward a given solution's score, rather
// than depleting across iterations of local search (see DESIGN.md for
// why this reading of §4.5 was chosen over a lifetime-depleting
// counter).
func Objective(ctx *cpmodel.Context, state *cpmodel.State, plugins []constraints.SoftPlugin, prefs model.Preferences, size strategy.ProblemSize, totalBudget int) (int, []Usage) {
	budget := strategy.NewBudget(size, totalBudget)
	total := 0
	usage := make([]Usage, 0, len(plugins))
	for _, p := range plugins {
		raw := p.Penalty(ctx, state)
		class := strategy.PluginPriorityClass(p.Name())
		admitted, dropped := budget.Charge(class, raw)
		weight := p.Weight(prefs)
		total += admitted * weight
		usage = append(usage, Usage{Plugin: p.Name(), Raw: raw, Admitted: admitted, Dropped: dropped})
	}
	return total, usage
}
