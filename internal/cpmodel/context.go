package cpmodel

import (
	"sort"

	"github.com/maktab-edu/timetable-solver/internal/model"
)

// Context is the build context shared by every constraint plugin (§4.1):
// the input instance, the expanded request list with pruned candidate
// domains, and lookup tables constraint plugins need repeatedly.
type Context struct {
	Instance *model.Instance
	Requests []model.Request

	ClassByID   map[string]*model.ClassGroup
	SubjectByID map[string]*model.Subject
	TeacherByID map[string]*model.Teacher
	RoomByID    map[string]*model.Room

	// RequestsByClassSubject groups request indices by (classID,
	// subjectID), matching the cluster-builder/curriculum-structure
	// plugin's need to iterate "all occurrences of this subject for
	// this class" (§4.3 Curriculum-structure).
	RequestsByClassSubject map[string][]int
}

// BuildContext runs the Variable Manager's domain-filter pass (§4.1):
// it expands requests, prunes each request's candidate teacher set
// (qualification, availability on at least one slot of the week) and
// candidate room set (type, capacity, required features), and indexes
// everything constraint plugins will need.
func BuildContext(inst *model.Instance) *Context {
	ctx := &Context{
		Instance:               inst,
		ClassByID:               make(map[string]*model.ClassGroup, len(inst.Classes)),
		SubjectByID:             make(map[string]*model.Subject, len(inst.Subjects)),
		TeacherByID:             make(map[string]*model.Teacher, len(inst.Teachers)),
		RoomByID:                make(map[string]*model.Room, len(inst.Rooms)),
		RequestsByClassSubject: make(map[string][]int),
	}

	for i := range inst.Classes {
		ctx.ClassByID[inst.Classes[i].ID] = &inst.Classes[i]
	}
	for i := range inst.Subjects {
		ctx.SubjectByID[inst.Subjects[i].ID] = &inst.Subjects[i]
	}
	for i := range inst.Teachers {
		ctx.TeacherByID[inst.Teachers[i].ID] = &inst.Teachers[i]
	}
	for i := range inst.Rooms {
		ctx.RoomByID[inst.Rooms[i].ID] = &inst.Rooms[i]
	}

	requests := model.BuildRequests(inst)
	for i := range requests {
		r := &requests[i]
		class := ctx.ClassByID[r.ClassID]
		r.CandidateTeachers = pruneTeachers(ctx, class, r.SubjectID)
		r.CandidateRooms = pruneRooms(ctx, class, r.SubjectID)

		key := r.ClassID + "\x00" + r.SubjectID
		ctx.RequestsByClassSubject[key] = append(ctx.RequestsByClassSubject[key], i)
	}

	applyFixedLessons(ctx, requests)

	ctx.Requests = requests
	return ctx
}

func pruneTeachers(ctx *Context, class *model.ClassGroup, subjectID string) []string {
	if class.SingleTeacherMode && class.ClassTeacherID != nil {
		return []string{*class.ClassTeacherID}
	}
	var out []string
	for _, t := range ctx.Instance.Teachers {
		if !t.QualifiedFor(subjectID) {
			continue
		}
		if !hasAnyAvailability(&t) {
			continue
		}
		out = append(out, t.ID)
	}
	sort.Strings(out)
	return out
}

func hasAnyAvailability(t *model.Teacher) bool {
	for _, row := range t.Availability {
		for _, free := range row {
			if free {
				return true
			}
		}
	}
	return false
}

func pruneRooms(ctx *Context, class *model.ClassGroup, subjectID string) []string {
	subject := ctx.SubjectByID[subjectID]
	var out []string
	for _, r := range ctx.Instance.Rooms {
		if subject.RequiredRoomType != nil && r.Type != *subject.RequiredRoomType {
			continue
		}
		minCapacity := class.StudentCount
		if subject.MinRoomCapacity != nil && *subject.MinRoomCapacity > minCapacity {
			minCapacity = *subject.MinRoomCapacity
		}
		if r.Capacity < minCapacity {
			continue
		}
		if !hasAllFeatures(r.Features, subject.RequiredFeatures) {
			continue
		}
		out = append(out, r.ID)
	}
	sort.Strings(out)
	return out
}

func hasAllFeatures(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, f := range have {
		set[f] = true
	}
	for _, f := range want {
		if !set[f] {
			return false
		}
	}
	return true
}

// applyFixedLessons resolves each FixedLesson against the matching
// not-yet-placed request of the same (class, subject) and attaches a
// FixedPlacement, consuming one occurrence per fixed lesson.
func applyFixedLessons(ctx *Context, requests []model.Request) {
	consumed := make(map[string]int) // classID\x00subjectID -> count consumed
	for _, fl := range ctx.Instance.FixedLessons {
		key := fl.ClassID + "\x00" + fl.SubjectID
		idxs := ctx.RequestsByClassSubject[key]
		n := consumed[key]
		if n >= len(idxs) {
			continue
		}
		r := &requests[idxs[n]]
		r.Fixed = &model.FixedPlacement{
			Day:         fl.Day,
			PeriodIndex: fl.PeriodIndex,
			TeacherID:   fl.TeacherID,
			RoomID:      fl.RoomID,
		}
		r.Length = fl.Length
		consumed[key] = n + 1
	}
}
