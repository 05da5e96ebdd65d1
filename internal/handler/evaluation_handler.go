package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/fyp-coordination-api/internal/service"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
	"github.com/campushq/fyp-coordination-api/pkg/response"
)

// EvaluationHandler exposes evaluation endpoints.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
	metrics     *service.MetricsService
}

// NewEvaluationHandler constructs handler. metrics may be nil.
func NewEvaluationHandler(evaluations *service.EvaluationService, metrics *service.MetricsService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations, metrics: metrics}
}

// SaveFYPTeam godoc
// @Summary Record one phase of the FYP team's evaluation for a student
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.SaveEvaluationRequest true "Evaluation payload"
// @Success 200 {object} response.Envelope
// @Router /evaluations [post]
func (h *EvaluationHandler) SaveFYPTeam(c *gin.Context) {
	var req service.SaveEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.evaluations.SaveFYPTeamEvaluation(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordEvaluationSaved(string(detail.EvaluatorType), req.Phase)
	response.JSON(c, http.StatusOK, detail)
}

// SaveSupervisor godoc
// @Summary Record one phase of the supervisor's evaluation for a student
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.SaveEvaluationRequest true "Evaluation payload"
// @Success 200 {object} response.Envelope
// @Router /evaluations/supervisor [post]
func (h *EvaluationHandler) SaveSupervisor(c *gin.Context) {
	var req service.SaveEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	detail, err := h.evaluations.SaveSupervisorEvaluation(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordEvaluationSaved(string(detail.EvaluatorType), req.Phase)
	response.JSON(c, http.StatusOK, detail)
}

// GroupSummaries godoc
// @Summary List eligible groups with their evaluation records and rollups
// @Tags Evaluations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /evaluations [get]
func (h *EvaluationHandler) GroupSummaries(c *gin.Context) {
	summaries, err := h.evaluations.GroupSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// GroupEvaluations godoc
// @Summary Get one group's evaluation records and rollup
// @Tags Evaluations
// @Produce json
// @Param groupId path string true "Group id"
// @Success 200 {object} response.Envelope
// @Router /evaluations/group/{groupId} [get]
func (h *EvaluationHandler) GroupEvaluations(c *gin.Context) {
	summary, err := h.evaluations.GroupEvaluations(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// StudentEvaluations godoc
// @Summary Get both evaluators' records for a student
// @Tags Evaluations
// @Produce json
// @Param rollNumber path string true "Roll number"
// @Success 200 {object} response.Envelope
// @Router /evaluations/student/{rollNumber} [get]
func (h *EvaluationHandler) StudentEvaluations(c *gin.Context) {
	details, err := h.evaluations.StudentEvaluations(c.Request.Context(), c.Param("rollNumber"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// CombinedMarks godoc
// @Summary Get the calling student's combined official marks
// @Tags Evaluations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /evaluations/combined-marks [get]
func (h *EvaluationHandler) CombinedMarks(c *gin.Context) {
	combined, err := h.evaluations.CombinedMarks(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, combined)
}

// SupervisorRecords godoc
// @Summary Get the supervisor-track records of a group
// @Tags Evaluations
// @Produce json
// @Param groupId path string true "Group id"
// @Success 200 {object} response.Envelope
// @Router /evaluations/supervisor-records/{groupId} [get]
func (h *EvaluationHandler) SupervisorRecords(c *gin.Context) {
	details, err := h.evaluations.SupervisorRecordsForGroup(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details)
}

// SupervisorGroupStatuses godoc
// @Summary Marks-free completion rollups for the caller's supervised groups
// @Tags Evaluations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /evaluations/supervisor-groups [get]
func (h *EvaluationHandler) SupervisorGroupStatuses(c *gin.Context) {
	rollups, err := h.evaluations.SupervisorGroupStatuses(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rollups)
}

// MyEvaluations godoc
// @Summary List the completed phases the calling supervisor has recorded
// @Tags Evaluations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /evaluations/my-evaluations [get]
func (h *EvaluationHandler) MyEvaluations(c *gin.Context) {
	entries, err := h.evaluations.MyEvaluations(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}

// ExportGroupSheet godoc
// @Summary Export a group's evaluation records as a PDF mark sheet
// @Tags Evaluations
// @Produce application/pdf
// @Param groupId path string true "Group id"
// @Success 200 {file} binary
// @Router /evaluations/group/{groupId}/export [get]
func (h *EvaluationHandler) ExportGroupSheet(c *gin.Context) {
	groupID := c.Param("groupId")
	pdf, err := h.evaluations.ExportGroupSheet(c.Request.Context(), groupID)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("evaluations-%s.pdf", groupID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
