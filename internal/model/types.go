// Package model defines the in-memory instance types the solver consumes:
// the validated, normalised representation of rooms, subjects, teachers,
// classes, period configuration and preferences described by §3 of the
// timetabling specification.
package model

import "encoding/json"

// Day is an enumerated weekday label. The ordered sequence of days in a
// given instance is carried by PeriodConfig.Days, not by this type.
type Day string

const (
	Saturday  Day = "SATURDAY"
	Sunday    Day = "SUNDAY"
	Monday    Day = "MONDAY"
	Tuesday   Day = "TUESDAY"
	Wednesday Day = "WEDNESDAY"
	Thursday  Day = "THURSDAY"
	Friday    Day = "FRIDAY"
)

// PeriodConfig maps each day of the week to its period count and encodes
// the slot(d,p) helper of §3: slots are days concatenated in Days order.
type PeriodConfig struct {
	Days          []Day         `json:"days" validate:"required,min=1,dive,required"`
	PeriodsPerDay map[Day]int   `json:"periodsPerDay" validate:"required"`
	dayOffset     map[Day]int   `json:"-"`
	total         int           `json:"-"`
	pmax          int           `json:"-"`
}

// Prepare computes the cumulative day offsets, Pmax and N. It must be
// called once after construction (and after any mutation) before Slot,
// DayPeriod or TotalSlots are used; the solve pipeline calls it as part
// of input normalisation.
func (p *PeriodConfig) Prepare() {
	p.dayOffset = make(map[Day]int, len(p.Days))
	offset := 0
	pmax := 0
	for _, d := range p.Days {
		p.dayOffset[d] = offset
		n := p.PeriodsPerDay[d]
		offset += n
		if n > pmax {
			pmax = n
		}
	}
	p.total = offset
	p.pmax = pmax
}

// TotalSlots returns N, the number of slots in the week.
func (p *PeriodConfig) TotalSlots() int { return p.total }

// Pmax returns the largest per-day period count.
func (p *PeriodConfig) Pmax() int { return p.pmax }

// HasVariablePeriods reports whether not every day carries the same
// period count, per the §3 footnote on per-day start domains.
func (p *PeriodConfig) HasVariablePeriods() bool {
	for _, d := range p.Days {
		if p.PeriodsPerDay[d] != p.pmax {
			return true
		}
	}
	return false
}

// Slot returns slot(d, periodIndex).
func (p *PeriodConfig) Slot(d Day, periodIndex int) int {
	return p.dayOffset[d] + periodIndex
}

// DayPeriod is the inverse of Slot: it returns the (day, periodIndex)
// pair a global slot decodes to.
func (p *PeriodConfig) DayPeriod(slot int) (Day, int) {
	for i := len(p.Days) - 1; i >= 0; i-- {
		d := p.Days[i]
		if slot >= p.dayOffset[d] {
			return d, slot - p.dayOffset[d]
		}
	}
	return p.Days[0], slot
}

// DayIndex returns the ordinal position of d within Days, or -1.
func (p *PeriodConfig) DayIndex(d Day) int {
	for i, dd := range p.Days {
		if dd == d {
			return i
		}
	}
	return -1
}

// Room is a physical teaching space.
type Room struct {
	ID       string   `json:"id" validate:"required"`
	Name     string   `json:"name" validate:"required"`
	Capacity int      `json:"capacity" validate:"gte=0"`
	Type     string   `json:"type,omitempty"`
	Features []string `json:"features,omitempty"`
}

// Category is the Afghan curriculum grade bin.
type Category string

const (
	CategoryAlphaPrimary Category = "ALPHA_PRIMARY"
	CategoryBetaPrimary  Category = "BETA_PRIMARY"
	CategoryMiddle       Category = "MIDDLE"
	CategoryHigh         Category = "HIGH"
)

// CategoryDari returns the bilingual Dari display name for a category,
// used by the Solution Enricher (§4.10).
func CategoryDari(c Category) string {
	switch c {
	case CategoryAlphaPrimary:
		return "ابتدایی الف"
	case CategoryBetaPrimary:
		return "ابتدایی ب"
	case CategoryMiddle:
		return "متوسطه"
	case CategoryHigh:
		return "لیسه"
	default:
		return ""
	}
}

// GradeCategory implements the grade→category mapping of §3: 1-3,
// 4-6, 7-9, 10-12. Callers must ensure grade is in [1,12]; validate
// enforces this before GradeCategory is ever called.
func GradeCategory(grade int) Category {
	switch {
	case grade >= 1 && grade <= 3:
		return CategoryAlphaPrimary
	case grade >= 4 && grade <= 6:
		return CategoryBetaPrimary
	case grade >= 7 && grade <= 9:
		return CategoryMiddle
	default:
		return CategoryHigh
	}
}

// Subject is a curriculum subject offered across classes.
type Subject struct {
	ID               string    `json:"id" validate:"required"`
	Name             string    `json:"name" validate:"required"`
	RequiredRoomType *string   `json:"requiredRoomType,omitempty"`
	MinRoomCapacity  *int      `json:"minRoomCapacity,omitempty"`
	RequiredFeatures []string  `json:"requiredFeatures,omitempty"`
	IsDifficult      bool      `json:"isDifficult"`
	IsCustom         bool      `json:"isCustom"`
	CustomCategory   *Category `json:"customCategory,omitempty"`
}

// Teacher is a staff member qualified to teach a set of subjects.
type Teacher struct {
	ID                        string            `json:"id" validate:"required"`
	FullName                  string            `json:"fullName" validate:"required"`
	PrimarySubjectIDs         []string          `json:"primarySubjectIds"`
	AllowedSubjectIDs         []string          `json:"allowedSubjectIds,omitempty"`
	RestrictToPrimarySubjects bool              `json:"restrictToPrimarySubjects"`
	Availability              map[Day][]bool    `json:"availability" validate:"required"`
	MaxPeriodsPerWeek         int               `json:"maxPeriodsPerWeek" validate:"gt=0"`
	MaxPeriodsPerDay          *int              `json:"maxPeriodsPerDay,omitempty"`
	MaxConsecutivePeriods     *int              `json:"maxConsecutivePeriods,omitempty"`
	PreferredSlots            []int             `json:"preferredSlots,omitempty"`
	PreferredRoomIDs          []string          `json:"preferredRoomIds,omitempty"`
}

// UnmarshalJSON decodes a Teacher, setting RestrictToPrimarySubjects to
// true when the input omits the field.
func (t *Teacher) UnmarshalJSON(data []byte) error {
	type plain Teacher
	p := plain{RestrictToPrimarySubjects: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Teacher(p)
	return nil
}

// QualifiedFor reports whether the teacher may be assigned subjectID,
// honouring RestrictToPrimarySubjects (§3 Teacher invariants).
func (t *Teacher) QualifiedFor(subjectID string) bool {
	for _, s := range t.PrimarySubjectIDs {
		if s == subjectID {
			return true
		}
	}
	if t.RestrictToPrimarySubjects {
		return false
	}
	for _, s := range t.AllowedSubjectIDs {
		if s == subjectID {
			return true
		}
	}
	return false
}

// AvailableAt reports whether the teacher's availability bitmap marks
// (day, periodIndex) free.
func (t *Teacher) AvailableAt(d Day, periodIndex int) bool {
	row, ok := t.Availability[d]
	if !ok || periodIndex < 0 || periodIndex >= len(row) {
		return false
	}
	return row[periodIndex]
}

// SubjectRequirement is a class's weekly demand for one subject.
type SubjectRequirement struct {
	PeriodsPerWeek     int  `json:"periodsPerWeek" validate:"gt=0"`
	MinConsecutive     *int `json:"minConsecutive,omitempty"`
	MaxConsecutive     *int `json:"maxConsecutive,omitempty"`
	ConsecutivePeriods *int `json:"consecutivePeriods,omitempty"`
}

// ClassGroup is a single class (section) of students.
type ClassGroup struct {
	ID                   string                        `json:"id" validate:"required"`
	Name                 string                        `json:"name" validate:"required"`
	StudentCount         int                           `json:"studentCount" validate:"gte=0"`
	GradeLevel           *int                          `json:"gradeLevel,omitempty" validate:"omitempty,gte=1,lte=12"`
	Category             *Category                     `json:"category,omitempty"`
	SingleTeacherMode    bool                          `json:"singleTeacherMode"`
	ClassTeacherID       *string                       `json:"classTeacherId,omitempty"`
	SubjectRequirements  map[string]SubjectRequirement `json:"subjectRequirements" validate:"required"`
}

// EffectiveCategory returns Category if set, otherwise derives it from
// GradeLevel per §3.
func (c *ClassGroup) EffectiveCategory() Category {
	if c.Category != nil {
		return *c.Category
	}
	if c.GradeLevel != nil {
		return GradeCategory(*c.GradeLevel)
	}
	return CategoryMiddle
}

// TotalPeriodsPerWeek sums periodsPerWeek across subject requirements.
func (c *ClassGroup) TotalPeriodsPerWeek() int {
	total := 0
	for _, r := range c.SubjectRequirements {
		total += r.PeriodsPerWeek
	}
	return total
}

// Preferences carries non-negative soft-constraint weights, expressed in
// hundredths (§3): a weight of 0.5 is stored as 0.5 and converted to an
// effective integer weight of 50 by round(weight*100) at apply time.
type Preferences struct {
	AvoidTeacherGapsWeight             float64 `json:"avoidTeacherGapsWeight"`
	PreferMorningForDifficultWeight    float64 `json:"preferMorningForDifficultWeight"`
	SubjectSpreadWeight                float64 `json:"subjectSpreadWeight"`
	MinimizeRoomChangesWeight          float64 `json:"minimizeRoomChangesWeight"`
	BalanceTeacherLoadWeight           float64 `json:"balanceTeacherLoadWeight"`
	RespectTeacherTimePreferenceWeight float64 `json:"respectTeacherTimePreferenceWeight"`
	RespectTeacherRoomPreferenceWeight float64 `json:"respectTeacherRoomPreferenceWeight"`
	DistributeDifficultSubjectsWeight  float64 `json:"distributeDifficultSubjectsWeight"`
}

// EffectiveWeight rounds a preference weight to an integer objective
// coefficient; a zero result disables the owning plugin (§4.4).
func EffectiveWeight(w float64) int {
	return int(w*100 + 0.5)
}

// FixedLesson pins a (class, subject) occurrence to a specific
// teacher/room/day/period before solving.
type FixedLesson struct {
	ClassID     string `json:"classId" validate:"required"`
	SubjectID   string `json:"subjectId" validate:"required"`
	TeacherID   string `json:"teacherId" validate:"required"`
	RoomID      string `json:"roomId" validate:"required"`
	Day         Day    `json:"day" validate:"required"`
	PeriodIndex int    `json:"periodIndex" validate:"gte=0"`
	Length      int    `json:"length" validate:"gt=0"`
}

// Instance is the fully validated, normalised input to a solve.
type Instance struct {
	Config       PeriodConfig  `json:"config"`
	Preferences  Preferences   `json:"preferences"`
	Rooms        []Room        `json:"rooms"`
	Subjects     []Subject     `json:"subjects"`
	Teachers     []Teacher     `json:"teachers"`
	Classes      []ClassGroup  `json:"classes"`
	FixedLessons []FixedLesson `json:"fixedLessons,omitempty"`
}

// Lesson is one scheduled occurrence in the output solution.
type Lesson struct {
	Day             Day      `json:"day"`
	PeriodIndex     int      `json:"periodIndex"`
	ClassID         string   `json:"classId"`
	SubjectID       string   `json:"subjectId"`
	RoomID          string   `json:"roomId"`
	TeacherIDs      []string `json:"teacherIds"`
	IsFixed         bool     `json:"isFixed"`
	PeriodsThisDay  *int     `json:"periodsThisDay,omitempty"`
	Length          int      `json:"-"`
}

// Slot returns the global slot this lesson occupies, under cfg.
func (l Lesson) Slot(cfg *PeriodConfig) int {
	return cfg.Slot(l.Day, l.PeriodIndex)
}
