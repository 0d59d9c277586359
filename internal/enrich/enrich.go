// Package enrich is the Solution Enricher (§4.10): it takes the raw
// schedule produced by the solving pipeline and attaches the bilingual
// metadata and statistics the external JSON artefact carries. Grounded
// on the original source's enhance_solution_with_metadata
// (test_sub_chunk_7_1_metadata.py shows the expected shape): class
// category + Dari name, class-teacher name expansion, custom-subject
// category metadata, per-teacher class-teacher lists, period
// configuration, and schedule-wide statistics.
package enrich

import (
	"github.com/maktab-edu/timetable-solver/internal/model"
)

// ClassMetadata is one class's enriched, bilingual metadata.
type ClassMetadata struct {
	ClassID           string  `json:"classId"`
	Category          string  `json:"category"`
	CategoryDari      string  `json:"categoryDari"`
	GradeLevel        *int    `json:"gradeLevel,omitempty"`
	SingleTeacherMode bool    `json:"singleTeacherMode"`
	ClassTeacherName  *string `json:"classTeacherName,omitempty"`
}

// SubjectMetadata is one subject's enriched metadata.
type SubjectMetadata struct {
	SubjectID         string  `json:"subjectId"`
	SubjectName       string  `json:"subjectName"`
	IsCustom          bool    `json:"isCustom"`
	CustomCategory    *string `json:"customCategory,omitempty"`
	CustomCategoryDari *string `json:"customCategoryDari,omitempty"`
}

// TeacherMetadata is one teacher's enriched metadata.
type TeacherMetadata struct {
	TeacherID      string   `json:"teacherId"`
	TeacherName    string   `json:"teacherName"`
	ClassTeacherOf []string `json:"classTeacherOf"`
}

// PeriodConfigMetadata mirrors the period configuration for display.
type PeriodConfigMetadata struct {
	TotalPeriodsPerWeek int            `json:"totalPeriodsPerWeek"`
	HasVariablePeriods  bool           `json:"hasVariablePeriods"`
	PeriodsPerDayMap    map[string]int `json:"periodsPerDayMap"`
}

// Metadata is the full metadata section of the enriched artefact.
type Metadata struct {
	Classes           []ClassMetadata        `json:"classes"`
	Subjects          []SubjectMetadata      `json:"subjects"`
	Teachers          []TeacherMetadata      `json:"teachers"`
	PeriodConfiguration PeriodConfigMetadata `json:"periodConfiguration"`
}

// Statistics tallies schedule-wide counts.
type Statistics struct {
	TotalClasses              int            `json:"totalClasses"`
	SingleTeacherClasses      int            `json:"singleTeacherClasses"`
	MultiTeacherClasses       int            `json:"multiTeacherClasses"`
	TotalSubjects             int            `json:"totalSubjects"`
	CustomSubjects            int            `json:"customSubjects"`
	StandardSubjects          int            `json:"standardSubjects"`
	CategoryCounts            map[string]int `json:"categoryCounts"`
	CustomSubjectsByCategory  map[string]int `json:"customSubjectsByCategory"`
	// SolutionQuality is 0-100, derived from the objective's total
	// penalty relative to the strategy's budget (§4.10, serves C14's
	// gauge and C17's SolveRun audit record on the optional HTTP path).
	SolutionQuality *int `json:"solutionQuality,omitempty"`
}

// Artefact is the external JSON document of §4.10: {schedule, metadata,
// statistics}.
type Artefact struct {
	Schedule   []model.Lesson `json:"schedule"`
	Metadata   Metadata       `json:"metadata"`
	Statistics Statistics     `json:"statistics"`
}

// Enrich builds the full artefact from a solved instance's schedule.
// qualityScore becomes Statistics.SolutionQuality and is omitted when
// nil; engine.Run, shared by the stdio and HTTP paths, always passes one.
func Enrich(inst *model.Instance, schedule []model.Lesson, qualityScore *int) Artefact {
	teacherByID := make(map[string]model.Teacher, len(inst.Teachers))
	for _, t := range inst.Teachers {
		teacherByID[t.ID] = t
	}
	subjectByID := make(map[string]model.Subject, len(inst.Subjects))
	for _, s := range inst.Subjects {
		subjectByID[s.ID] = s
	}

	return Artefact{
		Schedule:   schedule,
		Metadata:   buildMetadata(inst, teacherByID),
		Statistics: buildStatistics(inst, subjectByID, qualityScore),
	}
}

func buildMetadata(inst *model.Instance, teacherByID map[string]model.Teacher) Metadata {
	classTeacherOf := make(map[string][]string)

	classes := make([]ClassMetadata, 0, len(inst.Classes))
	for _, c := range inst.Classes {
		category := c.EffectiveCategory()
		cm := ClassMetadata{
			ClassID:           c.ID,
			Category:          string(category),
			CategoryDari:      model.CategoryDari(category),
			GradeLevel:        c.GradeLevel,
			SingleTeacherMode: c.SingleTeacherMode,
		}
		if c.SingleTeacherMode && c.ClassTeacherID != nil {
			if t, ok := teacherByID[*c.ClassTeacherID]; ok {
				name := t.FullName
				cm.ClassTeacherName = &name
			}
			classTeacherOf[*c.ClassTeacherID] = append(classTeacherOf[*c.ClassTeacherID], c.ID)
		}
		classes = append(classes, cm)
	}

	subjects := make([]SubjectMetadata, 0, len(inst.Subjects))
	for _, s := range inst.Subjects {
		sm := SubjectMetadata{SubjectID: s.ID, SubjectName: s.Name, IsCustom: s.IsCustom}
		if s.IsCustom && s.CustomCategory != nil {
			cat := string(*s.CustomCategory)
			dari := model.CategoryDari(*s.CustomCategory)
			sm.CustomCategory = &cat
			sm.CustomCategoryDari = &dari
		}
		subjects = append(subjects, sm)
	}

	teachers := make([]TeacherMetadata, 0, len(inst.Teachers))
	for _, t := range inst.Teachers {
		teachers = append(teachers, TeacherMetadata{
			TeacherID:      t.ID,
			TeacherName:    t.FullName,
			ClassTeacherOf: classTeacherOf[t.ID],
		})
	}

	periodsPerDayMap := make(map[string]int, len(inst.Config.PeriodsPerDay))
	for d, n := range inst.Config.PeriodsPerDay {
		periodsPerDayMap[string(d)] = n
	}

	return Metadata{
		Classes:  classes,
		Subjects: subjects,
		Teachers: teachers,
		PeriodConfiguration: PeriodConfigMetadata{
			TotalPeriodsPerWeek: inst.Config.TotalSlots(),
			HasVariablePeriods:  inst.Config.HasVariablePeriods(),
			PeriodsPerDayMap:    periodsPerDayMap,
		},
	}
}

func buildStatistics(inst *model.Instance, subjectByID map[string]model.Subject, qualityScore *int) Statistics {
	stats := Statistics{
		CategoryCounts:           make(map[string]int),
		CustomSubjectsByCategory: make(map[string]int),
		SolutionQuality:          qualityScore,
	}

	for _, c := range inst.Classes {
		stats.TotalClasses++
		if c.SingleTeacherMode {
			stats.SingleTeacherClasses++
		} else {
			stats.MultiTeacherClasses++
		}
		stats.CategoryCounts[string(c.EffectiveCategory())]++
	}

	for _, s := range inst.Subjects {
		stats.TotalSubjects++
		if s.IsCustom {
			stats.CustomSubjects++
			if s.CustomCategory != nil {
				stats.CustomSubjectsByCategory[string(*s.CustomCategory)]++
			}
		} else {
			stats.StandardSubjects++
		}
	}

	return stats
}
