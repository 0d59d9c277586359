// Package hard implements the ESSENTIAL-stage constraint plugins of
// §4.3, each grounded on the corresponding module under
// constraints/hard/ of the original implementation.
package hard

import (
	"fmt"

	"github.com/maktab-edu/timetable-solver/internal/constraints"
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
)

// NoOverlap enforces pairwise non-overlap of the intervals
// [start, start+length) per class, per teacher and per room, mirroring
// constraints/hard/no_overlap.py's three AddNoOverlap calls. The
// constructive engine also enforces this structurally via
// cpmodel.Occupancy; this plugin exists so Validate can independently
// re-certify a full state (used for the engine's final acceptance
// check and for the Solution Merger's re-validation, §4.9).
type NoOverlap struct{}

func NewNoOverlap() *NoOverlap { return &NoOverlap{} }

func (p *NoOverlap) Name() string     { return "hard.no_overlap" }
func (p *NoOverlap) Priority() int    { return 0 }
func (p *NoOverlap) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *NoOverlap) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *NoOverlap) Reset()                                {}

// Allows checks the candidate placement against every already-placed
// request sharing class, teacher or room.
func (p *NoOverlap) Allows(ctx *cpmodel.Context, state *cpmodel.State, reqID int, cand cpmodel.Placement) bool {
	req := ctx.Requests[reqID]
	candEnd := cand.Start + req.Length
	for i, pl := range state.Placements {
		if i == reqID || !pl.Present {
			continue
		}
		other := ctx.Requests[i]
		otherEnd := pl.Start + other.Length
		overlaps := cand.Start < otherEnd && pl.Start < candEnd
		if !overlaps {
			continue
		}
		if other.ClassID == req.ClassID {
			return false
		}
		if cand.TeacherID != "" && pl.TeacherID == cand.TeacherID {
			return false
		}
		if cand.RoomID != "" && pl.RoomID == cand.RoomID {
			return false
		}
	}
	return true
}

func (p *NoOverlap) Validate(ctx *cpmodel.Context, state *cpmodel.State) []constraints.Violation {
	var violations []constraints.Violation
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		reqA := ctx.Requests[i]
		endA := a.Start + reqA.Length
		for j := i + 1; j < len(state.Placements); j++ {
			b := state.Placements[j]
			if !b.Present {
				continue
			}
			reqB := ctx.Requests[j]
			endB := b.Start + reqB.Length
			if !(a.Start < endB && b.Start < endA) {
				continue
			}
			switch {
			case reqA.ClassID == reqB.ClassID:
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: []int{i, j},
					Detail: fmt.Sprintf("class %q double-booked", reqA.ClassID),
				})
			case a.TeacherID != "" && a.TeacherID == b.TeacherID:
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: []int{i, j},
					Detail: fmt.Sprintf("teacher %q double-booked", a.TeacherID),
				})
			case a.RoomID != "" && a.RoomID == b.RoomID:
				violations = append(violations, constraints.Violation{
					Constraint: p.Name(), RequestIDs: []int{i, j},
					Detail: fmt.Sprintf("room %q double-booked", a.RoomID),
				})
			}
		}
	}
	return violations
}
