package dto

import (
	"github.com/maktab-edu/timetable-solver/internal/enrich"
	"github.com/maktab-edu/timetable-solver/internal/merge"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
)

// SuccessResponse is the enriched success document of §6:
// {schedule, metadata, statistics}, plus any non-fatal warnings (§7) a
// decomposed solve's partial-failure recovery attached along the way.
type SuccessResponse struct {
	Schedule   interface{}       `json:"schedule"`
	Metadata   enrich.Metadata   `json:"metadata"`
	Statistics enrich.Statistics `json:"statistics"`
	Warnings   []string          `json:"warnings,omitempty"`
}

// FromArtefact converts an enrich.Artefact and its pipeline warnings
// into the wire success response.
func FromArtefact(a enrich.Artefact, warnings []string) SuccessResponse {
	return SuccessResponse{Schedule: a.Schedule, Metadata: a.Metadata, Statistics: a.Statistics, Warnings: warnings}
}

// ErrorItem is one element of the §6 failure array.
type ErrorItem struct {
	Error     string      `json:"error"`
	Status    string      `json:"status"`
	Details   interface{} `json:"details,omitempty"`
	Conflicts interface{} `json:"conflicts,omitempty"`
}

// FromError converts any error into the single-element (or, for merge
// conflicts, conflict-carrying) failure array §6 and §7 describe.
func FromError(err error) []ErrorItem {
	appErr := apperrors.FromError(err)
	item := ErrorItem{Error: appErr.Message, Status: appErr.Code}
	if conflicts, ok := appErr.Data.([]merge.Conflict); ok {
		item.Conflicts = conflicts
	}
	return []ErrorItem{item}
}
