package soft

import (
	"github.com/maktab-edu/timetable-solver/internal/cpmodel"
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// RoomChange penalises a class moving to a different room between two
// consecutive periods on the same day. Default weight 50.
type RoomChange struct{}

func NewRoomChange() *RoomChange { return &RoomChange{} }

func (p *RoomChange) Name() string     { return "soft.minimize_room_changes" }
func (p *RoomChange) Priority() int    { return 40 }
func (p *RoomChange) Enabled(ctx *cpmodel.Context) bool     { return true }
func (p *RoomChange) ShouldApply(ctx *cpmodel.Context) bool { return true }
func (p *RoomChange) Reset()                                {}

func (p *RoomChange) Weight(prefs model.Preferences) int {
	return model.EffectiveWeight(prefs.MinimizeRoomChangesWeight)
}

func (p *RoomChange) Penalty(ctx *cpmodel.Context, state *cpmodel.State) int {
	type placed struct {
		period int
		room   string
	}
	byClassDay := make(map[string][]placed)
	for i, a := range state.Placements {
		if !a.Present {
			continue
		}
		req := ctx.Requests[i]
		d, period := ctx.Instance.Config.DayPeriod(a.Start)
		key := req.ClassID + "\x00" + string(d)
		byClassDay[key] = append(byClassDay[key], placed{period: period, room: a.RoomID})
	}
	penalty := 0
	for _, list := range byClassDay {
		for i := 0; i < len(list); i++ {
			for j := 0; j < len(list); j++ {
				if list[j].period == list[i].period+1 && list[j].room != list[i].room {
					penalty++
				}
			}
		}
	}
	return penalty
}
