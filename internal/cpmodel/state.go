package cpmodel

import "github.com/maktab-edu/timetable-solver/internal/model"

// Placement is the (start slot, teacher, room) assignment of one
// request. A zero-value Placement with Present=false means the request
// has not yet been assigned.
type Placement struct {
	Start     int
	TeacherID string
	RoomID    string
	Present   bool
}

// State is the full or partial assignment under construction: one
// Placement per request, indexed by Request.ID. It is the mutable
// working set both the constructive solver and the constraint plugins
// read and write during a single solve attempt; State instances are
// never shared across goroutines (§5 concurrency model).
type State struct {
	Context    *Context
	Placements []Placement
}

// NewState returns an all-unplaced State sized to ctx's request list.
func NewState(ctx *Context) *State {
	return &State{Context: ctx, Placements: make([]Placement, len(ctx.Requests))}
}

// Clone deep-copies the state for an independent local-search worker.
func (s *State) Clone() *State {
	out := &State{Context: s.Context, Placements: make([]Placement, len(s.Placements))}
	copy(out.Placements, s.Placements)
	return out
}

// Day returns the day a placed request's start slot falls on.
func (s *State) Day(reqID int) model.Day {
	d, _ := s.Context.Instance.Config.DayPeriod(s.Placements[reqID].Start)
	return d
}

// PeriodIndex returns the period-of-day a placed request's start slot
// falls on.
func (s *State) PeriodIndex(reqID int) int {
	_, p := s.Context.Instance.Config.DayPeriod(s.Placements[reqID].Start)
	return p
}

// EndSlot returns the first slot after the interval this request
// occupies.
func (s *State) EndSlot(reqID int) int {
	return s.Placements[reqID].Start + s.Context.Requests[reqID].Length
}

// Lessons converts every present placement into the external Lesson
// vocabulary the Solution Merger and Enricher consume.
func (s *State) Lessons() []model.Lesson {
	out := make([]model.Lesson, 0, len(s.Placements))
	for i, p := range s.Placements {
		if !p.Present {
			continue
		}
		req := s.Context.Requests[i]
		d, period := s.Context.Instance.Config.DayPeriod(p.Start)
		out = append(out, model.Lesson{
			Day:         d,
			PeriodIndex: period,
			ClassID:     req.ClassID,
			SubjectID:   req.SubjectID,
			RoomID:      p.RoomID,
			TeacherIDs:  []string{p.TeacherID},
			IsFixed:     req.Fixed != nil,
			Length:      req.Length,
		})
	}
	return out
}
