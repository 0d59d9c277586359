// Package strategy implements the Strategy Selector and Constraint
// Budget machinery of §4.5: problem-size-driven solver parameters, the
// enabled soft-constraint set, and a penalty-count budget split across
// priority pools.
package strategy

import "github.com/maktab-edu/timetable-solver/internal/cpmodel"

// Name identifies one of the three canonical strategies.
type Name string

const (
	Fast      Name = "FAST"
	Balanced  Name = "BALANCED"
	Thorough  Name = "THOROUGH"
)

// Strategy bundles the solver parameters, enabled soft-constraint
// names and per-request penalty budget for one solve attempt.
type Strategy struct {
	Name               Name
	Workers            int
	ProbingLevel       int
	LinearizationLevel int
	SoftSet            map[string]bool
	BudgetPerRequest    int
}

var fastSoftSet = set("soft.prefer_morning_difficult", "soft.first_last_period_avoidance")

var thoroughSoftSet = set(
	"soft.prefer_morning_difficult", "soft.first_last_period_avoidance",
	"soft.subject_spread", "soft.balance_teacher_load", "soft.minimize_room_changes",
	"soft.respect_teacher_room_preference", "soft.avoid_teacher_gaps", "soft.collaboration",
	"soft.distribute_difficult_subjects", "soft.respect_teacher_time_preference",
)

func balancedSoftSet(numRequests int, avgCandidates float64) map[string]bool {
	s := set("soft.prefer_morning_difficult", "soft.first_last_period_avoidance",
		"soft.subject_spread", "soft.balance_teacher_load", "soft.minimize_room_changes",
		"soft.respect_teacher_room_preference")
	if numRequests < 300 {
		s["soft.avoid_teacher_gaps"] = true
	}
	if numRequests < 200 {
		s["soft.collaboration"] = true
	}
	return s
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Select implements the Strategy table of §4.5. avgCandidateTeachers is
// the mean size of request candidate-teacher domains across ctx's
// requests.
func Select(ctx *cpmodel.Context) Strategy {
	numRequests := len(ctx.Requests)
	avg := avgCandidateTeachers(ctx)

	switch {
	case avg < 2.5 || numRequests >= 500:
		return Strategy{Name: Fast, Workers: 4, ProbingLevel: 0, LinearizationLevel: 1, SoftSet: fastSoftSet, BudgetPerRequest: 2}
	case numRequests < 150 && avg >= 3.5:
		return Strategy{Name: Thorough, Workers: 16, ProbingLevel: 2, LinearizationLevel: 2, SoftSet: thoroughSoftSet, BudgetPerRequest: 10}
	default:
		return Strategy{Name: Balanced, Workers: 8, ProbingLevel: 1, LinearizationLevel: 1, SoftSet: balancedSoftSet(numRequests, avg), BudgetPerRequest: 5}
	}
}

// ForName rebuilds the Strategy bundle for a specific tier, the way
// Select would have if its size/domain thresholds had picked name
// directly. Used by the engine's graceful-degradation retry (§4.6) to
// step down Thorough→Balanced→Fast without re-deriving the problem-size
// thresholds Select itself uses to choose a tier.
func ForName(name Name, ctx *cpmodel.Context) Strategy {
	switch name {
	case Fast:
		return Strategy{Name: Fast, Workers: 4, ProbingLevel: 0, LinearizationLevel: 1, SoftSet: fastSoftSet, BudgetPerRequest: 2}
	case Thorough:
		return Strategy{Name: Thorough, Workers: 16, ProbingLevel: 2, LinearizationLevel: 2, SoftSet: thoroughSoftSet, BudgetPerRequest: 10}
	default:
		numRequests := len(ctx.Requests)
		avg := avgCandidateTeachers(ctx)
		return Strategy{Name: Balanced, Workers: 8, ProbingLevel: 1, LinearizationLevel: 1, SoftSet: balancedSoftSet(numRequests, avg), BudgetPerRequest: 5}
	}
}

// Downgrade returns the next lower strategy tier in the
// Thorough→Balanced→Fast graceful-degradation order §4.6 mandates, and
// whether a lower tier exists below name.
func Downgrade(name Name) (Name, bool) {
	switch name {
	case Thorough:
		return Balanced, true
	case Balanced:
		return Fast, true
	default:
		return Fast, false
	}
}

func avgCandidateTeachers(ctx *cpmodel.Context) float64 {
	if len(ctx.Requests) == 0 {
		return 0
	}
	total := 0
	for _, r := range ctx.Requests {
		total += len(r.CandidateTeachers)
	}
	return float64(total) / float64(len(ctx.Requests))
}
