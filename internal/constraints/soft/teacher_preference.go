package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// TimePreference penalises assigning a teacher outside their declared
// PreferredSlots, when they have declared any. Default weight 50.
type TimePreference struct{}

func NewTimePreference() *TimePreference { return &TimePreference{} }

func (p *TimePreference) Name() string     { return "soft.respect_teacher_time_preference" }
func (p *TimePreference) Priority() int    { return 50 }
func (p *TimePreference) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *TimePreference) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *TimePreference) Reset()                                {}

func (p *TimePreference) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.RespectTeacherTimePreferenceWeight)
}

func (p *TimePreference) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	penalty := 0
	for i, a := range state.Placements {
		if !a.Present || a.TeacherID == "" {
			continue
		}
		teacher := ctx.TeacherByID[a.TeacherID]
		if teacher == nil || len(teacher.PreferredSlots) == 0 {
			continue
		}
		req := ctx.Requests[i]
		if !slotsIntersect(teacher.PreferredSlots, a.Start, req.Length) {
			penalty++
		}
	}
	return penalty
}

func slotsIntersect(preferred []int, start, length int) bool {
	for _, s := range preferred {
		if s >= start && s < start+length {
			return true
		}
	}
	return false
}

// RoomPreference penalises assigning a teacher a room outside their
// declared PreferredRoomIDs, when they have declared any. Default
// weight 50.
type RoomPreference struct{}

func NewRoomPreference() *RoomPreference { return &RoomPreference{} }

func (p *RoomPreference) Name() string     { return "soft.respect_teacher_room_preference" }
func (p *RoomPreference) Priority() int    { return 60 }
func (p *RoomPreference) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *RoomPreference) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *RoomPreference) Reset()                                {}

func (p *RoomPreference) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.RespectTeacherRoomPreferenceWeight)
}

func (p *RoomPreference) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	penalty := 0
	for _, a := range state.Placements {
		if !a.Present || a.TeacherID == "" {
			continue
		}
		teacher := ctx.TeacherByID[a.TeacherID]
		if teacher == nil || len(teacher.PreferredRoomIDs) == 0 {
			continue
		}
		if !contains(teacher.PreferredRoomIDs, a.RoomID) {
			penalty++
		}
	}
	return penalty
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
