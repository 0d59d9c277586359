// Package engine wires the full solving pipeline: validate → build
// context → select strategy → register constraints → solve →
// decompose/merge → enrich. Both the stdio transport (cmd/solver) and
// the HTTP surface (cmd/solver-server) call Run as their single shared
// entrypoint, the way the teacher's handler layer calls into one
// service method regardless of transport.
package engine

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/constraints/hard"
	"github.com/maktab-edu/timetable-solver/internal/constraints/soft"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/decompose"
	"github.com/maktab-edu/timetable-solver/internal/enrich"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/internal/solver"
	"github.com/maktab-edu/timetable-solver/internal/strategy"
	"github.com/maktab-edu/timetable-solver/internal/validate"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
	"github.com/maktab-edu/timetable-solver/pkg/metrics"
)

// Options configures one Run invocation.
type Options struct {
	TimeLimit     time.Duration
	DecomposeWork int // bounded concurrency for decomposed sub-solves
	Metrics       *metrics.Solver // optional; nil disables reporting
	// EnableGracefulDegradation implements §4.6: when the first attempt
	// at a sub-problem terminates infeasible, retry at progressively
	// cheaper strategies (Thorough→Balanced→Fast), then as a last
	// resort retry the cheapest tier with soft constraints disabled,
	// before declaring the sub-problem globally infeasible.
	EnableGracefulDegradation bool
}

// Result is the successful outcome of a full pipeline run.
type Result struct {
	Status     solver.Status
	Artefact   enrich.Artefact
	Strategy   strategy.Name
	Decomposed decompose.Strategy
	Violations []constraints.Violation
	// Warnings carries non-fatal notices from the pipeline — e.g.
	// merge.Merge's incomplete_schedule warning when a decomposed solve
	// merges fewer lessons than the instance expects (§7).
	Warnings []string
}

// Run validates inst, decides whether to decompose it, solves it (as
// one problem or as a set of sub-problems), merges and enriches the
// result.
func Run(ctx context.Context, log *zap.Logger, inst *model.Instance, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Metrics != nil {
		defer func() { opts.Metrics.Duration.Observe(time.Since(start).Seconds()) }()
	}

	v := validate.New()
	if err := v.Validate(inst); err != nil {
		return nil, err
	}

	log.Info("build_start")

	var chosenStrategy strategy.Name
	var lastStatus solver.Status
	var lastViolations []constraints.Violation
	var totalObjective, totalBudget int

	solveOne := func(sctx context.Context, sub *model.Instance, dopts decompose.SolveOptions) ([]model.Lesson, error) {
		bctx := cpmodel.BuildContext(sub)
		registry := buildRegistry()
		numRequests := len(bctx.Requests)
		size := strategy.ClassifySize(numRequests)

		attempt := func(strat strategy.Strategy, disableSoft bool) *solver.Result {
			chosenStrategy = strat.Name

			hardPlugins := filterHard(registry.HardPlugins(bctx), dopts.HardOnly)
			softSet := strat.SoftSet
			if disableSoft {
				softSet = map[string]bool{}
			}
			softPlugins := registry.SoftPlugins(bctx, constraints.Optional, softSet, sub.Preferences)

			if opts.Metrics != nil {
				for _, p := range hardPlugins {
					opts.Metrics.ConstraintsApplied.WithLabelValues(p.Name(), "hard").Inc()
				}
				for _, p := range softPlugins {
					opts.Metrics.ConstraintsApplied.WithLabelValues(p.Name(), "soft").Inc()
				}
			}

			timeLimit := opts.TimeLimit
			if dopts.TimeBudgetFraction > 0 {
				timeLimit = time.Duration(float64(timeLimit) * dopts.TimeBudgetFraction)
			}
			total := strategy.TotalBudget(strat.Name, numRequests, strat.BudgetPerRequest)

			result := solver.Solve(sctx, bctx, solver.Params{
				Workers:     strat.Workers,
				TimeLimit:   timeLimit,
				Hard:        hardPlugins,
				Soft:        softPlugins,
				Preferences: sub.Preferences,
				Size:        size,
				TotalBudget: total,
			})

			totalObjective += result.Objective
			totalBudget += total
			log.Info("solve_result",
				zap.String("strategy", string(strat.Name)),
				zap.Bool("soft_disabled", disableSoft),
				zap.String("status", string(result.Status)))

			if opts.Metrics != nil {
				status := "success"
				if result.Status == solver.StatusError || len(result.Violations) > 0 {
					status = "failed"
				}
				opts.Metrics.ClustersSolved.WithLabelValues(status).Inc()
			}
			return result
		}

		infeasible := func(r *solver.Result) bool {
			return r.Status == solver.StatusError || len(r.Violations) > 0
		}

		strat := strategy.Select(bctx)
		disableSoft := dopts.DisableSoft
		log.Info("strategy_selected", zap.String("strategy", string(strat.Name)))
		result := attempt(strat, disableSoft)

		if infeasible(result) && opts.EnableGracefulDegradation {
			for infeasible(result) {
				next, ok := strategy.Downgrade(strat.Name)
				if !ok {
					break
				}
				strat = strategy.ForName(next, bctx)
				result = attempt(strat, disableSoft)
			}
			if infeasible(result) && !disableSoft {
				disableSoft = true
				result = attempt(strat, disableSoft)
			}
		}

		lastStatus = result.Status
		lastViolations = result.Violations

		if result.Status == solver.StatusError {
			return nil, apperrors.ErrInternal.WithDetail("solver produced no result")
		}
		if len(result.Violations) > 0 {
			return result.State.Lessons(), apperrors.ErrInfeasible.WithDetail("hard constraints unsatisfied")
		}
		return result.State.Lessons(), nil
	}

	workers := opts.DecomposeWork
	if workers < 1 {
		workers = 4
	}
	outcome, err := decompose.Run(ctx, log, inst, workers, solveOne)
	if err != nil {
		return nil, err
	}

	quality := solutionQuality(totalObjective, totalBudget)
	if opts.Metrics != nil {
		opts.Metrics.SolutionQuality.Set(float64(quality))
		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)
		opts.Metrics.MemoryUsageBytes.Set(float64(mem.Alloc))
	}
	artefact := enrich.Enrich(inst, outcome.Lessons, &quality)

	return &Result{
		Status:     lastStatus,
		Artefact:   artefact,
		Strategy:   chosenStrategy,
		Decomposed: outcome.Strategy,
		Violations: lastViolations,
		Warnings:   outcome.Warnings,
	}, nil
}

func buildRegistry() *constraints.Registry {
	r := constraints.NewRegistry()

	r.RegisterHard(constraints.Essential, -10, hard.NewFixed())
	r.RegisterHard(constraints.Essential, 0, hard.NewNoOverlap())
	r.RegisterHard(constraints.Essential, 1, hard.NewSingleTeacher())
	r.RegisterHard(constraints.Essential, 5, hard.NewAvailability())
	r.RegisterHard(constraints.Essential, 10, hard.NewSameDay())
	r.RegisterHard(constraints.Essential, 15, hard.NewWorkload())
	r.RegisterHard(constraints.Essential, 20, hard.NewCurriculum())

	r.RegisterSoft(constraints.Important, 10, soft.NewMorningDifficult())
	r.RegisterSoft(constraints.Important, 20, soft.NewTeacherGaps())
	r.RegisterSoft(constraints.Important, 30, soft.NewSubjectSpread())
	r.RegisterSoft(constraints.Important, 40, soft.NewLoadBalance())
	r.RegisterSoft(constraints.Important, 50, soft.NewRoomChange())
	r.RegisterSoft(constraints.Optional, 60, soft.NewTimePreference())
	r.RegisterSoft(constraints.Optional, 65, soft.NewRoomPreference())
	r.RegisterSoft(constraints.Optional, 70, soft.NewDistributeDifficult())
	r.RegisterSoft(constraints.Optional, 80, soft.NewFirstLastAvoidance())
	r.RegisterSoft(constraints.Optional, 90, soft.NewCollaboration())

	return r
}

// solutionQuality scores a solve 0-100 from its total soft-constraint
// penalty relative to the strategy's objective budget: zero penalty is
// a perfect 100, penalty at or past the budget floors at 0.
func solutionQuality(objective, budget int) int {
	if budget <= 0 {
		if objective <= 0 {
			return 100
		}
		return 0
	}
	q := 100 - (objective*100)/budget
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	return q
}

func filterHard(plugins []constraints.HardPlugin, names []string) []constraints.HardPlugin {
	if len(names) == 0 {
		return plugins
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[n] = true
	}
	out := make([]constraints.HardPlugin, 0, len(plugins))
	for _, p := range plugins {
		if allowed[p.Name()] {
			out = append(out, p)
		}
	}
	return out
}
