// Package handler is the HTTP surface's gin handler layer, grounded on
// the teacher's handler package: an interface-typed service field, one
// NewXHandler constructor, swaggo-annotated methods taking *gin.Context
// and replying through pkg/response.
package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/maktab-edu/timetable-solver/internal/dto"
	"github.com/maktab-edu/timetable-solver/internal/model"
	"github.com/maktab-edu/timetable-solver/internal/store"
	apperrors "github.com/maktab-edu/timetable-solver/pkg/errors"
	"github.com/maktab-edu/timetable-solver/pkg/export"
	"github.com/maktab-edu/timetable-solver/pkg/response"
	"github.com/maktab-edu/timetable-solver/pkg/storage"
)

// solverEngine is the subset of internal/engine.Run this handler
// depends on, kept as an interface so tests can substitute a stub.
type solverEngine interface {
	Run(ctx context.Context, inst *model.Instance) (dto.SuccessResponse, error)
}

// EngineFunc adapts a plain function (typically a closure over
// engine.Run, a *zap.Logger and engine.Options) to solverEngine, the
// way cmd/solver-server wires the handler without the handler package
// needing to import internal/engine directly.
type EngineFunc func(ctx context.Context, inst *model.Instance) (dto.SuccessResponse, error)

// Run implements solverEngine.
func (f EngineFunc) Run(ctx context.Context, inst *model.Instance) (dto.SuccessResponse, error) {
	return f(ctx, inst)
}

// SolveHandler serves the synchronous solve endpoint plus proposal
// retrieval/export, backed by the shared engine and an optional audit
// repository.
type SolveHandler struct {
	engine solverEngine
	store  *store.ProposalStore
	audit  *store.SolveRunRepository // nil when the audit store is disabled
	files  *storage.LocalStorage    // nil when export persistence is disabled
	signer *storage.SignedURLSigner // nil when export persistence is disabled
	logger *zap.Logger
}

// NewSolveHandler constructs the handler. audit, files and signer may
// all be nil; exports persist to disk and carry a download token only
// when files and signer are both set.
func NewSolveHandler(engine solverEngine, proposals *store.ProposalStore, audit *store.SolveRunRepository, files *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *SolveHandler {
	return &SolveHandler{engine: engine, store: proposals, audit: audit, files: files, signer: signer, logger: logger}
}

// Solve godoc
// @Summary Solve a timetabling instance
// @Tags Solve
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /v1/solve [post]
func (h *SolveHandler) Solve(c *gin.Context) {
	var req dto.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrValidation.WithDetail(err.Error()))
		return
	}

	start := time.Now()
	resp, err := h.engine.Run(c.Request.Context(), req.ToInstance())
	h.recordAudit(c.Request.Context(), requestHash(req), resp, err, time.Since(start))
	if err != nil {
		response.Error(c, err)
		return
	}

	id := h.store.Save(resp)
	response.JSON(c, http.StatusOK, gin.H{"proposalId": id, "response": resp})
}

// Get godoc
// @Summary Fetch a previously computed proposal
// @Tags Solve
// @Produce json
// @Param id path string true "Proposal id"
// @Success 200 {object} response.Envelope
// @Router /v1/solve/{id} [get]
func (h *SolveHandler) Get(c *gin.Context) {
	id := c.Param("id")
	p, ok := h.store.Get(id)
	if !ok {
		response.Error(c, apperrors.ErrNotFound.WithDetail("proposal not found or expired"))
		return
	}
	response.JSON(c, http.StatusOK, p.Response)
}

// ExportCSV godoc
// @Summary Export a stored proposal's schedule as CSV
// @Tags Solve
// @Produce text/csv
// @Param id path string true "Proposal id"
// @Router /v1/solve/{id}/export.csv [get]
func (h *SolveHandler) ExportCSV(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.Error(c, apperrors.ErrNotFound.WithDetail("proposal not found or expired"))
		return
	}
	data, err := export.NewCSVExporter().Render(scheduleDataset(p))
	if err != nil {
		response.Error(c, apperrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	h.persistExport(c, p.ID, "export.csv", data)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportPDF godoc
// @Summary Export a stored proposal's schedule as PDF
// @Tags Solve
// @Produce application/pdf
// @Param id path string true "Proposal id"
// @Router /v1/solve/{id}/export.pdf [get]
func (h *SolveHandler) ExportPDF(c *gin.Context) {
	p, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.Error(c, apperrors.ErrNotFound.WithDetail("proposal not found or expired"))
		return
	}
	data, err := export.NewPDFExporter().Render(scheduleDataset(p), "Timetable")
	if err != nil {
		response.Error(c, apperrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	h.persistExport(c, p.ID, "export.pdf", data)
	c.Data(http.StatusOK, "application/pdf", data)
}

// persistExport archives a rendered export to disk and, if a signer is
// configured, attaches a signed download token as a response header —
// both steps are best-effort and never fail the request the caller is
// already waiting on.
func (h *SolveHandler) persistExport(c *gin.Context, proposalID, filename string, data []byte) {
	if h.files == nil {
		return
	}
	relPath := proposalID + "/" + filename
	if _, err := h.files.Save(relPath, data); err != nil {
		h.logger.Warn("failed to archive export", zap.Error(err))
		return
	}
	if h.signer == nil {
		return
	}
	token, expiresAt, err := h.signer.Generate(proposalID, relPath)
	if err != nil {
		h.logger.Warn("failed to sign export token", zap.Error(err))
		return
	}
	c.Header("X-Export-Token", token)
	c.Header("X-Export-Expires", expiresAt.UTC().Format(time.RFC3339))
}

// History godoc
// @Summary Paginated solve-run audit log
// @Tags Solve
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /v1/solve/history [get]
func (h *SolveHandler) History(c *gin.Context) {
	if h.audit == nil {
		response.Error(c, apperrors.ErrNotFound.WithDetail("audit store disabled"))
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	runs, err := h.audit.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, apperrors.ErrInternal.WithDetail(err.Error()))
		return
	}
	response.JSON(c, http.StatusOK, runs)
}

func (h *SolveHandler) recordAudit(ctx context.Context, reqHash string, resp dto.SuccessResponse, solveErr error, d time.Duration) {
	if h.audit == nil {
		return
	}
	status := "OPTIMAL"
	quality := 0
	if resp.Statistics.SolutionQuality != nil {
		quality = *resp.Statistics.SolutionQuality
	}
	if solveErr != nil {
		status = apperrors.FromError(solveErr).Code
	}
	run := &store.SolveRun{
		RequestHash:     reqHash,
		Status:          status,
		DurationMs:      d.Milliseconds(),
		SolutionQuality: quality,
	}
	if err := h.audit.Create(ctx, run); err != nil {
		h.logger.Warn("failed to record solve run audit log", zap.Error(err))
	}
}

// requestHash fingerprints a request for the audit trail without
// retaining the request body itself. Strategy/Decomposition are left
// blank here: solverEngine deliberately only returns the wire-shaped
// dto.SuccessResponse, not the internal engine.Result those came from,
// so the handler layer never learns which strategy ran.
func requestHash(req dto.Request) string {
	raw, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func scheduleDataset(p store.Proposal) export.Dataset {
	headers := []string{"day", "period", "classId", "subjectId", "teacherIds", "roomId"}
	schedule, _ := p.Response.Schedule.([]model.Lesson)
	rows := make([]map[string]string, 0, len(schedule))
	for _, l := range schedule {
		rows = append(rows, map[string]string{
			"day":        string(l.Day),
			"period":     strconv.Itoa(l.PeriodIndex),
			"classId":    l.ClassID,
			"subjectId":  l.SubjectID,
			"teacherIds": strings.Join(l.TeacherIDs, ","),
			"roomId":     l.RoomID,
		})
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
