package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/fyp-coordination-api/internal/service"
	appErrors "github.com/campushq/fyp-coordination-api/pkg/errors"
	"github.com/campushq/fyp-coordination-api/pkg/response"
)

// MeetingHandler exposes meeting scheduling endpoints.
type MeetingHandler struct {
	meetings *service.MeetingService
	metrics  *service.MetricsService
}

// NewMeetingHandler constructs handler. metrics may be nil.
func NewMeetingHandler(meetings *service.MeetingService, metrics *service.MetricsService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, metrics: metrics}
}

// List godoc
// @Summary List scheduled meetings visible to the caller
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	meetings, err := h.meetings.ListScheduled(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, meetings)
}

// Venues godoc
// @Summary List bookable venues
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meetings/venues [get]
func (h *MeetingHandler) Venues(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.meetings.Venues())
}

// Schedule godoc
// @Summary Schedule a meeting for a group
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body service.ScheduleMeetingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /meetings/schedule [post]
func (h *MeetingHandler) Schedule(c *gin.Context) {
	var req service.ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	meeting, err := h.meetings.Schedule(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) && appErr.Code == appErrors.ErrVenueConflict.Code {
			h.metrics.RecordVenueConflict()
		}
		response.Error(c, err)
		return
	}
	h.metrics.RecordMeetingBooked()
	response.Created(c, meeting)
}

// CheckAvailability godoc
// @Summary Check whether a venue is free for an interval
// @Tags Meetings
// @Accept json
// @Produce json
// @Param payload body service.CheckAvailabilityRequest true "Availability probe"
// @Success 200 {object} response.Envelope
// @Router /meetings/check-availability [post]
func (h *MeetingHandler) CheckAvailability(c *gin.Context) {
	var req service.CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	availability, err := h.meetings.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, availability)
}

// EligibleGroups godoc
// @Summary List groups eligible for scheduling
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meetings/eligible-groups [get]
func (h *MeetingHandler) EligibleGroups(c *gin.Context) {
	groups, err := h.meetings.EligibleGroups(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}

// SupervisorGroups godoc
// @Summary List groups supervised by the caller
// @Tags Meetings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /meetings/supervisor-groups [get]
func (h *MeetingHandler) SupervisorGroups(c *gin.Context) {
	groups, err := h.meetings.SupervisorGroups(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups)
}
