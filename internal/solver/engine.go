// Package solver is the Core Solver (§4.6): a constructive-assignment
// plus local-search engine standing in for a vendored CP-SAT binding,
// grounded on the teacher's own schedulerState/teacherAvailability
// greedy-assign-then-repair pattern in
// internal/service/schedule_generator_service.go, generalised to the
// class/teacher/room occupancy tracked by internal/cpmodel.Occupancy.
package solver

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/internal/strategy"
)

// Status is the terminal state of a solve attempt (§4.6).
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusTimeout    Status = "TIMEOUT"
	StatusError      Status = "ERROR"
)

// Params configures one solve attempt.
type Params struct {
	Workers      int
	TimeLimit    time.Duration
	Hard         []constraints.HardPlugin
	Soft         []constraints.SoftPlugin
	Preferences  model.Preferences
	Size         strategy.ProblemSize
	TotalBudget  int
	Seed         int64
}

// Result is the outcome of a solve attempt.
type Result struct {
	Status     Status
	State      *cpmodel.State
	Objective  int
	Usage      []Usage
	Violations []constraints.Violation
}

const (
	backtrackWindow     = 5
	maxFailsPerRestart  = 200
	candidateSamples    = 24
	noImproveRestart    = 400
)

// Solve runs the constructive-then-local-search engine described in
// SPEC_FULL.md §4.6. Each of Params.Workers goroutines runs an
// independent randomized-restart search seeded differently; the
// best-scoring (fewest hard violations, then lowest objective) result
// across workers wins.
func Solve(ctx context.Context, bctx *cpmodel.Context, p Params) *Result {
	goCtx, cancel := context.WithTimeout(ctx, p.TimeLimit)
	defer cancel()
	deadline, _ := goCtx.Deadline() // always set: WithTimeout guarantees one

	workers := p.Workers
	if workers < 1 {
		workers = 1
	}

	results := make(chan *Result, workers)
	for w := 0; w < workers; w++ {
		seed := p.Seed + int64(w)*9973
		go func(seed int64) {
			results <- runWorker(bctx, p, seed, deadline)
		}(seed)
	}

	var best *Result
	for i := 0; i < workers; i++ {
		r := <-results
		if best == nil || better(r, best) {
			best = r
		}
	}
	return best
}

func better(a, b *Result) bool {
	av, bv := len(a.Violations), len(b.Violations)
	if av != bv {
		return av < bv
	}
	if av > 0 {
		return false
	}
	return a.Objective < b.Objective
}

func runWorker(bctx *cpmodel.Context, p Params, seed int64, deadline time.Time) *Result {
	rng := rand.New(rand.NewSource(seed))

	var bestState *cpmodel.State
	bestViolations := math.MaxInt32
	bestObjective := math.MaxInt32
	var bestUsage []Usage
	timedOut := false

	for { // randomized restarts
		if time.Now().After(deadline) {
			timedOut = true
			break
		}
		state, occ, feasible := construct(bctx, p.Hard, rng, deadline)
		if feasible {
			state, occ = improve(bctx, p, state, occ, rng, deadline)
		}
		violations := validateAll(bctx, p.Hard, state)
		objective, usage := Objective(bctx, state, p.Soft, p.Preferences, p.Size, p.TotalBudget)

		if bestState == nil || len(violations) < bestViolations ||
			(len(violations) == bestViolations && objective < bestObjective) {
			bestState = state
			bestViolations = len(violations)
			bestObjective = objective
			bestUsage = usage
		}
		if bestViolations == 0 {
			// One construction already satisfies every hard constraint
			// and `improve` has polished its objective until it stalled
			// or the deadline passed, so this worker stops restarting.
			break
		}
	}

	status := StatusFeasible
	switch {
	case bestState == nil:
		status = StatusError
	case bestViolations > 0 && timedOut:
		status = StatusTimeout
	case bestViolations > 0:
		status = StatusInfeasible
	case !timedOut:
		status = StatusOptimal
	}

	violations := validateAll(bctx, p.Hard, bestState)
	return &Result{Status: status, State: bestState, Objective: bestObjective, Usage: bestUsage, Violations: violations}
}

// construct places every fixed request, then every free request in a
// shuffled order, consulting every hard plugin's Allows check on each
// candidate; a request with no locally-consistent candidate triggers
// bounded chronological backtracking.
func construct(bctx *cpmodel.Context, hard []constraints.HardPlugin, rng *rand.Rand, deadline time.Time) (*cpmodel.State, *cpmodel.Occupancy, bool) {
	state := cpmodel.NewState(bctx)
	occ := cpmodel.NewOccupancy()
	placeFixed(bctx, state, occ)

	freeOrder := freeRequestOrder(bctx)

	for {
		if time.Now().After(deadline) {
			return state, occ, false
		}
		shuffle(freeOrder, rng)
		if placeAll(bctx, hard, state, occ, freeOrder, rng, deadline) {
			return state, occ, true
		}
		// Reset and try a fresh shuffle.
		state = cpmodel.NewState(bctx)
		occ = cpmodel.NewOccupancy()
		placeFixed(bctx, state, occ)
	}
}

func placeFixed(bctx *cpmodel.Context, state *cpmodel.State, occ *cpmodel.Occupancy) {
	for i, req := range bctx.Requests {
		if req.Fixed == nil {
			continue
		}
		start := bctx.Instance.Config.Slot(req.Fixed.Day, req.Fixed.PeriodIndex)
		occ.Reserve(req.ClassID, req.Fixed.TeacherID, req.Fixed.RoomID, start, req.Length, i)
		state.Placements[i] = cpmodel.Placement{Start: start, TeacherID: req.Fixed.TeacherID, RoomID: req.Fixed.RoomID, Present: true}
	}
}

func freeRequestOrder(bctx *cpmodel.Context) []int {
	var out []int
	for i, req := range bctx.Requests {
		if req.Fixed == nil {
			out = append(out, i)
		}
	}
	return out
}

func shuffle(xs []int, rng *rand.Rand) {
	for i := len(xs) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		xs[i], xs[j] = xs[j], xs[i]
	}
}

func placeAll(bctx *cpmodel.Context, hard []constraints.HardPlugin, state *cpmodel.State, occ *cpmodel.Occupancy, order []int, rng *rand.Rand, deadline time.Time) bool {
	placedStack := make([]int, 0, len(order))
	fails := 0
	i := 0
	for i < len(order) {
		if time.Now().After(deadline) {
			return false
		}
		reqIdx := order[i]
		cand, ok := findCandidate(bctx, hard, state, occ, reqIdx, rng)
		if ok {
			place(bctx, state, occ, reqIdx, cand)
			placedStack = append(placedStack, reqIdx)
			i++
			continue
		}
		fails++
		if fails > maxFailsPerRestart || len(placedStack) == 0 {
			for _, idx := range placedStack {
				unplace(bctx, state, occ, idx)
			}
			return false
		}
		back := backtrackWindow
		if back > len(placedStack) {
			back = len(placedStack)
		}
		for k := 0; k < back; k++ {
			last := placedStack[len(placedStack)-1]
			placedStack = placedStack[:len(placedStack)-1]
			unplace(bctx, state, occ, last)
		}
		i -= back
	}
	return true
}

func findCandidate(bctx *cpmodel.Context, hard []constraints.HardPlugin, state *cpmodel.State, occ *cpmodel.Occupancy, reqIdx int, rng *rand.Rand) (cpmodel.Placement, bool) {
	req := bctx.Requests[reqIdx]
	n := bctx.Instance.Config.TotalSlots()
	if len(req.CandidateTeachers) == 0 || len(req.CandidateRooms) == 0 {
		return cpmodel.Placement{}, false
	}
	for attempt := 0; attempt < candidateSamples; attempt++ {
		start := rng.Intn(n - req.Length + 1)
		teacher := req.CandidateTeachers[rng.Intn(len(req.CandidateTeachers))]
		room := req.CandidateRooms[rng.Intn(len(req.CandidateRooms))]
		cand := cpmodel.Placement{Start: start, TeacherID: teacher, RoomID: room, Present: true}
		if !occ.Free(req.ClassID, teacher, room, start, req.Length) {
			continue
		}
		if allowsAll(bctx, hard, state, reqIdx, cand) {
			return cand, true
		}
	}
	return cpmodel.Placement{}, false
}

func allowsAll(bctx *cpmodel.Context, hard []constraints.HardPlugin, state *cpmodel.State, reqIdx int, cand cpmodel.Placement) bool {
	for _, plugin := range hard {
		if !plugin.Allows(bctx, state, reqIdx, cand) {
			return false
		}
	}
	return true
}

func place(bctx *cpmodel.Context, state *cpmodel.State, occ *cpmodel.Occupancy, reqIdx int, cand cpmodel.Placement) {
	req := bctx.Requests[reqIdx]
	occ.Reserve(req.ClassID, cand.TeacherID, cand.RoomID, cand.Start, req.Length, reqIdx)
	state.Placements[reqIdx] = cand
}

func unplace(bctx *cpmodel.Context, state *cpmodel.State, occ *cpmodel.Occupancy, reqIdx int) {
	req := bctx.Requests[reqIdx]
	a := state.Placements[reqIdx]
	if !a.Present {
		return
	}
	occ.Release(req.ClassID, a.TeacherID, a.RoomID, a.Start, req.Length)
	state.Placements[reqIdx] = cpmodel.Placement{}
}

// improve runs simulated-annealing local search on a feasible state
// until the deadline passes or noImproveRestart consecutive moves bring
// no new best objective, re-placing one free request at a time and
// keeping the move only when it stays hard-constraint-clean.
func improve(bctx *cpmodel.Context, p Params, state *cpmodel.State, occ *cpmodel.Occupancy, rng *rand.Rand, deadline time.Time) (*cpmodel.State, *cpmodel.Occupancy) {
	freeOrder := freeRequestOrder(bctx)
	if len(freeOrder) == 0 {
		return state, occ
	}
	currentObj, _ := Objective(bctx, state, p.Soft, p.Preferences, p.Size, p.TotalBudget)
	bestState := state.Clone()
	bestObj := currentObj

	noImprove := 0
	temperature := 1.0
	for iter := 0; noImprove < noImproveRestart; iter++ {
		if time.Now().After(deadline) {
			break
		}
		reqIdx := freeOrder[rng.Intn(len(freeOrder))]
		old := state.Placements[reqIdx]
		unplace(bctx, state, occ, reqIdx)

		cand, ok := findCandidate(bctx, p.Hard, state, occ, reqIdx, rng)
		if !ok {
			place(bctx, state, occ, reqIdx, old)
			noImprove++
			continue
		}
		place(bctx, state, occ, reqIdx, cand)
		newObj, _ := Objective(bctx, state, p.Soft, p.Preferences, p.Size, p.TotalBudget)

		accept := newObj <= currentObj
		if !accept {
			delta := float64(newObj - currentObj)
			accept = rng.Float64() < math.Exp(-delta/(temperature*float64(len(bctx.Requests)+1)))
		}
		if accept {
			currentObj = newObj
			if newObj < bestObj {
				bestObj = newObj
				bestState = state.Clone()
				noImprove = 0
			} else {
				noImprove++
			}
		} else {
			unplace(bctx, state, occ, reqIdx)
			place(bctx, state, occ, reqIdx, old)
			noImprove++
		}
		temperature *= 0.999
		if temperature < 0.01 {
			temperature = 0.01
		}
	}
	return bestState, occ
}

func validateAll(bctx *cpmodel.Context, hard []constraints.HardPlugin, state *cpmodel.State) []constraints.Violation {
	if state == nil {
		return nil
	}
	var out []constraints.Violation
	for _, plugin := range hard {
		out = append(out, plugin.Validate(bctx, state)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Constraint < out[j].Constraint })
	return out
}
