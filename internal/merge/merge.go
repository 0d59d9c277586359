// Package merge is the Solution Merger (§4.9): it concatenates
// independently solved sub-solutions and re-verifies the three
// exclusivity invariants globally, since each sub-solve only certified
// them against its own restricted instance. Grounded on the original
// source's SolutionMerger (decomposition/solution_merger.py): same
// (resourceId, slot) conflict keys, same first-ten-conflicts cap, same
// incomplete-schedule warning.
package merge

import (
	"fmt"
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/model"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
)

// SubSolution is one cluster's solved lessons, ready to be merged.
type SubSolution struct {
	ClusterID int
	Lessons   []model.Lesson
}

// Conflict describes one exclusivity violation found during merge.
type Conflict struct {
	Type     string `json:"type"`
	ResourceID string `json:"resourceId"`
	Day      model.Day `json:"day"`
	Period   int       `json:"periodIndex"`
}

// Result is the outcome of a merge: either a unified, sorted lesson
// list with zero conflicts, or the conflicts that blocked it.
type Result struct {
	Lessons    []model.Lesson
	Warnings   []string
	Conflicts  []Conflict
}

// Merge concatenates every sub-solution's lessons, sorts them
// deterministically by (day, period, classId) so that merging the same
// sub-solutions twice yields a byte-identical result (§8 property 13),
// and checks class/teacher/room exclusivity per slot. On conflict it
// returns a MERGING_ERROR carrying at most the first ten conflicts.
// When the merged count falls short of the instance's total expected
// lessons, an incomplete_schedule warning is attached but the merge
// still succeeds.
func Merge(inst *model.Instance, subs []SubSolution) (*Result, error) {
	if len(subs) == 0 {
		return nil, apperrors.ErrMerging.WithDetail("no sub-solutions to merge")
	}

	ordered := make([]SubSolution, len(subs))
	copy(ordered, subs)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ClusterID < ordered[j].ClusterID })

	var all []model.Lesson
	for _, s := range ordered {
		all = append(all, s.Lessons...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		si := inst.Config.Slot(all[i].Day, all[i].PeriodIndex)
		sj := inst.Config.Slot(all[j].Day, all[j].PeriodIndex)
		if si != sj {
			return si < sj
		}
		return all[i].ClassID < all[j].ClassID
	})

	conflicts := checkConflicts(&inst.Config, all)
	if len(conflicts) > 0 {
		capped := conflicts
		if len(capped) > 10 {
			capped = capped[:10]
		}
		detail := fmt.Sprintf("%d conflicts found", len(conflicts))
		return &Result{Conflicts: capped}, apperrors.ErrMerging.WithDetail(detail).WithData(capped)
	}

	result := &Result{Lessons: all}
	expected := expectedLessons(inst)
	if len(all) < expected {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"incomplete_schedule: expected %d lessons, merged %d (missing %d)",
			expected, len(all), expected-len(all)))
	}
	return result, nil
}

func checkConflicts(cfg *model.PeriodConfig, lessons []model.Lesson) []Conflict {
	type key struct {
		resource string
		slot     int
	}
	teacherSeen := make(map[key]bool)
	roomSeen := make(map[key]bool)
	classSeen := make(map[key]bool)

	var conflicts []Conflict
	for _, l := range lessons {
		slot := cfg.Slot(l.Day, l.PeriodIndex)
		for _, teacherID := range l.TeacherIDs {
			k := key{teacherID, slot}
			if teacherSeen[k] {
				conflicts = append(conflicts, Conflict{Type: "teacher_conflict", ResourceID: teacherID, Day: l.Day, Period: l.PeriodIndex})
			}
			teacherSeen[k] = true
		}
		if l.RoomID != "" {
			k := key{l.RoomID, slot}
			if roomSeen[k] {
				conflicts = append(conflicts, Conflict{Type: "room_conflict", ResourceID: l.RoomID, Day: l.Day, Period: l.PeriodIndex})
			}
			roomSeen[k] = true
		}
		k := key{l.ClassID, slot}
		if classSeen[k] {
			conflicts = append(conflicts, Conflict{Type: "class_conflict", ResourceID: l.ClassID, Day: l.Day, Period: l.PeriodIndex})
		}
		classSeen[k] = true
	}
	return conflicts
}

func expectedLessons(inst *model.Instance) int {
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
