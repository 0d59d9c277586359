// Package dto is the wire-format boundary (§6): the external JSON
// Request/Response documents, and the normalisation between them and
// the internal model types. Grounded on the teacher's DTO-then-service
// pattern (e.g. internal/dto + internal/service pairs): handlers and
// the stdio entrypoint decode into these types, never internal/model
// directly, so wire-format concerns stay out of the solving pipeline.
package dto

import "github.com/maktab-edu/timetable-solver/internal/model"

// defaultWeight is applied to every soft-constraint weight when the
// request omits `preferences` entirely — grounded on the original
// source's per-plugin DEFAULT_WEIGHT constants (morning_difficult.py,
// subject_spread.py: 50; teacher_gaps.py: 100). Plugins the source
// never had (load balance, room change, teacher preference, distribute
// difficult) default to 50 like morning/spread, since nothing in the
// original source argues for a different figure.
const (
	defaultWeightStandard = 0.50
	defaultTeacherGapsWeight = 1.00
)

// Request is the external JSON document §6 describes.
type Request struct {
	Config       model.PeriodConfig     `json:"config"`
	Preferences  *model.Preferences     `json:"preferences,omitempty"`
	Rooms        []model.Room           `json:"rooms"`
	Subjects     []model.Subject        `json:"subjects"`
	Teachers     []model.Teacher        `json:"teachers"`
	Classes      []model.ClassGroup     `json:"classes"`
	FixedLessons []model.FixedLesson    `json:"fixedLessons,omitempty"`
}

// ToInstance converts the wire request into the internal, normalised
// Instance, applying default preference weights when preferences is
// omitted entirely. A request that includes preferences is taken
// as-is: a present field of 0 means "disabled" (§4.4), not "use the
// default".
func (r Request) ToInstance() *model.Instance {
	prefs := model.Preferences{
		AvoidTeacherGapsWeight:             defaultTeacherGapsWeight,
		PreferMorningForDifficultWeight:    defaultWeightStandard,
		SubjectSpreadWeight:                defaultWeightStandard,
		MinimizeRoomChangesWeight:          defaultWeightStandard,
		BalanceTeacherLoadWeight:           defaultWeightStandard,
		RespectTeacherTimePreferenceWeight: defaultWeightStandard,
		RespectTeacherRoomPreferenceWeight: defaultWeightStandard,
		DistributeDifficultSubjectsWeight:  defaultWeightStandard,
	}
	if r.Preferences != nil {
		prefs = *r.Preferences
	}

	return &model.Instance{
		Config:       r.Config,
		Preferences:  prefs,
		Rooms:        r.Rooms,
		Subjects:     r.Subjects,
		Teachers:     r.Teachers,
		Classes:      r.Classes,
		FixedLessons: r.FixedLessons,
	}
}
