// Package decompose is the Decomposition Orchestrator (§4.8): it
// decides whether a problem is large enough to benefit from splitting
// into independently solvable sub-problems, picks a strategy, runs the
// sub-solves (bounded by pkg/jobs.Queue the way the teacher bounds its
// own background work), and hands the pieces to internal/merge.
// Grounded on the original source's DecompositionSolver
// (decomposition/decomposition_solver.py): same threshold constants,
// same teacher-sharing and grade-independence ratios, same
// blanket-recover-and-fall-back-to-NONE behaviour.
package decompose

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/maktab-edu/timetable-solver/internal/cluster"
	"github.com/maktab-edu/timetable-solver/internal/merge"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/pkg/jobs"
)

// Strategy is one of the four decomposition strategies of §4.8.
type Strategy string

const (
	StrategyNone            Strategy = "NONE"
	StrategyGradeLevel      Strategy = "GRADE_LEVEL"
	StrategyClassClustering Strategy = "CLASS_CLUSTERING"
	StrategyTwoPhase        Strategy = "TWO_PHASE"
)

const (
	decompositionThreshold  = 200
	largeProblemThreshold   = 250
	veryLargeThreshold      = 400
	sharedTeacherCutoff     = 0.3
	gradeIndependenceCutoff = 0.2
	minClassesToCluster     = 3
)

// CountRequests sums periodsPerWeek across every class, minus the
// number of fixed lessons, floored at zero — the same request count
// the Strategy Selector and Cluster Builder reason about.
func CountRequests(inst *model.Instance) int {
	total := 0
	for _, c := range inst.Classes {
		total += c.TotalPeriodsPerWeek()
	}
	total -= len(inst.FixedLessons)
	if total < 0 {
		total = 0
	}
	return total
}

// Select implements §4.8's strategy table.
func Select(inst *model.Instance) Strategy {
	numRequests := CountRequests(inst)

	if numRequests < decompositionThreshold {
		return StrategyNone
	}
	if numRequests < largeProblemThreshold && teacherSharingRatio(inst) > sharedTeacherCutoff {
		return StrategyNone
	}

	if hasGradeLevels(inst) && gradeIndependenceRatio(inst) < gradeIndependenceCutoff {
		return StrategyGradeLevel
	}
	if len(inst.Classes) >= minClassesToCluster {
		return StrategyClassClustering
	}
	if numRequests >= veryLargeThreshold {
		return StrategyTwoPhase
	}
	return StrategyNone
}

func teacherSharingRatio(inst *model.Instance) float64 {
	teacherClasses := make(map[string]map[string]bool)
	for _, c := range inst.Classes {
		for subjectID := range c.SubjectRequirements {
			for _, t := range inst.Teachers {
				if t.QualifiedFor(subjectID) {
					if teacherClasses[t.ID] == nil {
						teacherClasses[t.ID] = make(map[string]bool)
					}
					teacherClasses[t.ID][c.ID] = true
				}
			}
		}
	}
	if len(teacherClasses) == 0 {
		return 0
	}
	multiClass := 0
	for _, classes := range teacherClasses {
		if len(classes) > 1 {
			multiClass++
		}
	}
	return float64(multiClass) / float64(len(teacherClasses))
}

func hasGradeLevels(inst *model.Instance) bool {
	if len(inst.Classes) == 0 {
		return false
	}
	for _, c := range inst.Classes {
		if c.GradeLevel == nil {
			return false
		}
	}
	return true
}

func gradeIndependenceRatio(inst *model.Instance) float64 {
	teacherGrades := make(map[string]map[int]bool)
	grades := make(map[int]bool)
	for _, c := range inst.Classes {
		if c.GradeLevel == nil {
			continue
		}
		grades[*c.GradeLevel] = true
		for subjectID := range c.SubjectRequirements {
			for _, t := range inst.Teachers {
				if t.QualifiedFor(subjectID) {
					if teacherGrades[t.ID] == nil {
						teacherGrades[t.ID] = make(map[int]bool)
					}
					teacherGrades[t.ID][*c.GradeLevel] = true
				}
			}
		}
	}
	if len(grades) < 2 || len(teacherGrades) == 0 {
		return 1 // fewer than two grades: independence is moot, treat as not-independent
	}
	multiGrade := 0
	for _, g := range teacherGrades {
		if len(g) > 1 {
			multiGrade++
		}
	}
	return float64(multiGrade) / float64(len(teacherGrades))
}

// SolveOptions tunes one (possibly relaxed) sub-solve.
type SolveOptions struct {
	// DisableSoft skips every soft constraint, used by TWO_PHASE's
	// cheap Phase 1 relaxation (§4.8 resolution of Open Question #1).
	DisableSoft bool
	// HardOnly, when non-empty, restricts which named hard plugins run.
	HardOnly []string
	// TimeBudgetFraction scales down the caller's time limit.
	TimeBudgetFraction float64
}

// SolveFunc solves one instance (a full problem, a cluster's
// sub-problem, or a grade partition) and returns its scheduled lessons.
type SolveFunc func(ctx context.Context, inst *model.Instance, opts SolveOptions) ([]model.Lesson, error)

// Outcome is the orchestrator's result: the strategy actually used
// (which may differ from Select's choice if a fall-back occurred) and
// the merged lessons.
type Outcome struct {
	Strategy Strategy
	Lessons  []model.Lesson
	Warnings []string
}

// Run dispatches inst to the strategy Select picks, solving every
// sub-problem (bounded to `workers` concurrent sub-solves via
// pkg/jobs.Queue) and merging the results. Any panic surfaced by a
// strategy's dispatch is recovered and logged, falling back to solving
// the full instance directly (NONE) — matching the source's blanket
// except-and-fall-back.
func Run(ctx context.Context, log *zap.Logger, inst *model.Instance, workers int, solve SolveFunc) (out Outcome, err error) {
	strategy := Select(inst)
	log.Info("decompose_strategy", zap.String("strategy", string(strategy)), zap.Int("num_requests", CountRequests(inst)))

	defer func() {
		if r := recover(); r != nil {
			log.Error("decomposition panicked, falling back to NONE", zap.Any("panic", r))
			lessons, solveErr := solve(ctx, inst, SolveOptions{})
			out = Outcome{Strategy: StrategyNone, Lessons: lessons}
			err = solveErr
		}
	}()

	switch strategy {
	case StrategyNone:
		lessons, solveErr := solve(ctx, inst, SolveOptions{})
		return Outcome{Strategy: StrategyNone, Lessons: lessons}, solveErr
	case StrategyClassClustering:
		return runClustering(ctx, log, inst, workers, solve)
	case StrategyGradeLevel:
		return runGradeLevel(ctx, log, inst, workers, solve)
	case StrategyTwoPhase:
		return runTwoPhase(ctx, inst, solve)
	default:
		lessons, solveErr := solve(ctx, inst, SolveOptions{})
		return Outcome{Strategy: StrategyNone, Lessons: lessons}, solveErr
	}
}

func runClustering(ctx context.Context, log *zap.Logger, inst *model.Instance, workers int, solve SolveFunc) (Outcome, error) {
	clusters := cluster.Build(inst)
	log.Info("cluster_built", zap.Int("count", len(clusters)))

	subs, err := solveSubProblems(ctx, log, workers, clusters, func(c cluster.Cluster) *model.Instance {
		return cluster.SubProblem(inst, c)
	}, solve)
	if err != nil {
		return Outcome{}, err
	}

	return mergeOrFallback(ctx, log, inst, subs, len(clusters), StrategyClassClustering, solve)
}

func runGradeLevel(ctx context.Context, log *zap.Logger, inst *model.Instance, workers int, solve SolveFunc) (Outcome, error) {
	groups := make(map[int][]model.ClassGroup)
	var grades []int
	for _, c := range inst.Classes {
		grade := 0
		if c.GradeLevel != nil {
			grade = *c.GradeLevel
		}
		if _, ok := groups[grade]; !ok {
			grades = append(grades, grade)
		}
		groups[grade] = append(groups[grade], c)
	}
	sort.Ints(grades)
	log.Info("decompose_grade_level", zap.Int("num_grades", len(grades)))

	type gradeCluster struct {
		id     int
		grade  int
		classes []model.ClassGroup
	}
	gcs := make([]gradeCluster, 0, len(grades))
	for i, g := range grades {
		gcs = append(gcs, gradeCluster{id: i, grade: g, classes: groups[g]})
	}

	subs, err := solveSubProblems(ctx, log, workers, gcs, func(gc gradeCluster) *model.Instance {
		return gradeSubProblem(inst, gc.classes)
	}, solve)
	if err != nil {
		return Outcome{}, err
	}

	return mergeOrFallback(ctx, log, inst, subs, len(gcs), StrategyGradeLevel, solve)
}

// mergeOrFallback merges the sub-solutions a decomposition strategy
// produced, unless every one of them failed — in which case §7's
// propagation policy takes over: fall back to a monolithic NONE solve
// against the whole instance rather than declaring a merge error over
// an empty sub-solution set.
func mergeOrFallback(ctx context.Context, log *zap.Logger, inst *model.Instance, subs []merge.SubSolution, numSubProblems int, strategy Strategy, solve SolveFunc) (Outcome, error) {
	if len(subs) == 0 {
		log.Error("all sub-problems failed, falling back to monolithic NONE solve", zap.Int("sub_problem_count", numSubProblems))
		lessons, err := solve(ctx, inst, SolveOptions{})
		return Outcome{Strategy: StrategyNone, Lessons: lessons}, err
	}

	result, mergeErr := merge.Merge(inst, subs)
	if mergeErr != nil {
		return Outcome{}, mergeErr
	}
	return Outcome{Strategy: strategy, Lessons: result.Lessons, Warnings: result.Warnings}, nil
}

func gradeSubProblem(inst *model.Instance, classes []model.ClassGroup) *model.Instance {
	classSet := make(map[string]bool, len(classes))
	for _, c := range classes {
		classSet[c.ID] = true
	}
	teacherSet := make(map[string]bool)
	for _, c := range classes {
		for subjectID := range c.SubjectRequirements {
			for _, t := range inst.Teachers {
				if t.QualifiedFor(subjectID) {
					teacherSet[t.ID] = true
				}
			}
		}
	}

	sub := &model.Instance{
		Config:      inst.Config,
		Preferences: inst.Preferences,
		Rooms:       inst.Rooms,
		Subjects:    inst.Subjects,
		Classes:     classes,
	}
	for _, t := range inst.Teachers {
		if teacherSet[t.ID] {
			sub.Teachers = append(sub.Teachers, t)
		}
	}
	for _, fl := range inst.FixedLessons {
		if classSet[fl.ClassID] {
			sub.FixedLessons = append(sub.FixedLessons, fl)
		}
	}
	return sub
}

// runTwoPhase implements §4.8's resolution of Open Question #1: Phase 1
// is a genuine relaxation (only the essential hard constraints, no soft
// constraints, half the time budget), and Phase 2 is the identity
// pass — there is no second solve, since teacher/room assignment is not
// a deferred decision under this variable model.
func runTwoPhase(ctx context.Context, inst *model.Instance, solve SolveFunc) (Outcome, error) {
	opts := SolveOptions{
		DisableSoft:        true,
		HardOnly:           []string{"hard.no_overlap", "hard.availability_qualification", "hard.same_day", "hard.curriculum_structure", "hard.fixed_lessons", "hard.single_teacher_mode"},
		TimeBudgetFraction: 0.5,
	}
	lessons, err := solve(ctx, inst, opts)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Strategy: StrategyTwoPhase, Lessons: lessons}, nil
}

// solveSubProblems dispatches one solve per item through pkg/jobs.Queue,
// bounded to `workers` concurrent sub-solves, and collects results keyed
// by item index so the merge input can be sorted deterministically
// afterwards regardless of completion order.
func solveSubProblems[T any](ctx context.Context, log *zap.Logger, workers int, items []T, toInstance func(T) *model.Instance, solve SolveFunc) ([]merge.SubSolution, error) {
	if workers < 1 {
		workers = 1
	}

	type outcome struct {
		lessons []model.Lesson
		err     error
	}
	results := make([]outcome, len(items))
	done := make(chan int, len(items))

	queue := jobs.NewQueue("decompose-sub-solve", func(jobCtx context.Context, j jobs.Job) error {
		idx, convErr := strconv.Atoi(j.ID)
		if convErr != nil {
			return convErr
		}
		sub := toInstance(items[idx])
		lessons, err := solve(jobCtx, sub, SolveOptions{})
		results[idx] = outcome{lessons: lessons, err: err}
		done <- idx
		// The error is kept in results; returning nil stops the queue
		// from re-running the sub-solve under its default retry count.
		return nil
	}, jobs.QueueConfig{Workers: workers, BufferSize: len(items), MaxRetries: 0, Logger: log})

	queue.Start(ctx)
	defer queue.Stop()

	for i := range items {
		if err := queue.Enqueue(jobs.Job{ID: strconv.Itoa(i), Type: "solve_sub_problem"}); err != nil {
			return nil, fmt.Errorf("enqueue sub-problem %d: %w", i, err)
		}
	}

	for i := 0; i < len(items); i++ {
		<-done
	}

	subs := make([]merge.SubSolution, 0, len(items))
	for i, r := range results {
		if r.err != nil {
			log.Error("sub_problem_failed", zap.Int("cluster_id", i), zap.Error(r.err))
			continue
		}
		subs = append(subs, merge.SubSolution{ClusterID: i, Lessons: r.lessons})
	}
	return subs, nil
}
