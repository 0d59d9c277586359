// Package constraints is the Constraint Registry (§4.2) and the hard/
// soft constraint plugins of §4.3-§4.4. Hard plugins participate both
// in construction (incremental Allows checks, cheap to call on every
// candidate placement) and in full-state validation; soft plugins
// contribute weighted penalty terms to the local-search objective.
package constraints

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// Stage is the application priority bucket of §4.2: ESSENTIAL constraints
// are always applied; IMPORTANT and OPTIONAL gate on the Strategy's
// enabled soft-constraint set.
type Stage int

const (
	Essential Stage = iota
	Important
	Optional
)

// Violation names one concrete breach of a hard constraint, used both
// for the engine's internal feasibility bookkeeping and for surfacing
// diagnostics (§7).
type Violation struct {
	Constraint string
	Detail     string
	RequestIDs []int
}

// HardPlugin is a required (§4.3) constraint. Allows is the fast
// incremental check the constructive solver and local search call on
// every candidate placement; Validate re-derives feasibility from a
// full state and is used for final acceptance and for merged-solution
// re-validation (§4.9).
type HardPlugin interface {
	Name() string
	Priority() int
	Enabled(ctx *cpmodel.Context) bool
	ShouldApply(ctx *cpmodel.Context) bool
	Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, p cpmodel.Placement) bool
	Validate(ctx *cpmodel.Context, state *cpmodel.State) []Violation
	Reset()
}

// SoftPlugin is an optional (§4.4) preference. Weight derives the
// effective objective coefficient from Preferences (a zero weight
// disables the plugin per §4.4); Penalty sums the plugin's contribution
// to the objective over the full state, in penalty-units (not yet
// multiplied by weight).
type SoftPlugin interface {
	Name() string
	Priority() int
	Enabled(ctx *cpmodel.Context) bool
	ShouldApply(ctx *cpmodel.Context) bool
	Weight(prefs model.Preferences) int
	Penalty(ctx *cpmodel.Context, state *cpmodel.State) int
	Reset()
}
