package model

// Request is one unit of scheduling demand: expanding a class's subject
// requirement of N periodsPerWeek yields N requests, one per occurrence
// (§3 Request). Requests are owned by a single solve attempt.
type Request struct {
	ID                int
	ClassID           string
	SubjectID         string
	Length            int
	CandidateTeachers []string
	CandidateRooms    []string
	Consecutive       *int // subject's consecutivePeriods, if declared

	// Fixed is non-nil when this occurrence was pinned via
	// Instance.FixedLessons; Start/Teacher/Room are then constants.
	Fixed *FixedPlacement
}

// FixedPlacement is the resolved slot/teacher/room of a pinned request.
type FixedPlacement struct {
	Day         Day
	PeriodIndex int
	TeacherID   string
	RoomID      string
}

// BuildRequests expands every class's subject requirements into
// Request values in deterministic (class, subject-id-sorted, occurrence)
// order, matching the deterministic variable-creation order required by
// §5 "Ordering guarantees". Candidate pruning (teacher qualification and
// availability, room type/capacity/features) happens separately in the
// Variable Manager; BuildRequests only expands cardinality.
func BuildRequests(inst *Instance) []Request {
	var requests []Request
	for _, c := range sortedClasses(inst.Classes) {
		for _, subjectID := range sortedKeys(c.SubjectRequirements) {
			req := c.SubjectRequirements[subjectID]
			length := 1
			for i := 0; i < req.PeriodsPerWeek; i++ {
				r := Request{
					ID:          len(requests),
					ClassID:     c.ID,
					SubjectID:   subjectID,
					Length:      length,
					Consecutive: req.ConsecutivePeriods,
				}
				requests = append(requests, r)
			}
		}
	}
	return requests
}

func sortedClasses(classes []ClassGroup) []ClassGroup {
	out := make([]ClassGroup, len(classes))
	copy(out, classes)
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && out[j-1].ID > out[j].ID {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	return out
}

func sortedKeys(m map[string]SubjectRequirement) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		j := i
		for j > 0 && keys[j-1] > keys[j] {
			keys[j-1], keys[j] = keys[j], keys[j-1]
			j--
		}
	}
	return keys
}
