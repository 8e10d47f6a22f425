package event

import (
	"errors"
	"net/http"
	"strconv"

	"brandlink/internal/pkg/pagination"
	"brandlink/internal/pkg/response"
	"brandlink/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Param request body CreateEventRequest true "event"
// @Success 201 {object} domain.Event
// @Router /events [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateEventRequest
	if !validator.Bind(c, &req) {
		return
	}
	e, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

// List godoc
// @Summary List published events
// @Tags Events
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} EventListResponse
// @Router /events [get]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.Normalize(
		parseIntDefault(c.Query("page"), 1),
		parseIntDefault(c.Query("limit"), pagination.DefaultLimit),
	)

	items, total, err := h.service.ListPublished(c.Request.Context(), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, EventListResponse{Events: items, Total: total, Page: page, Limit: limit})
}

// ListMine godoc
// @Summary List the brand's own events
// @Tags Events
// @Success 200 {array} domain.Event
// @Router /brand/events [get]
func (h *Handler) ListMine(c *gin.Context) {
	items, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// Get godoc
// @Summary Get event
// @Tags Events
// @Param id path int true "event id"
// @Success 200 {object} domain.Event
// @Failure 404 {object} map[string]interface{}
// @Router /events/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	e, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), c.GetString("role"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// UpdateStatus godoc
// @Summary Change event status
// @Tags Events
// @Param id path int true "event id"
// @Param request body UpdateStatusRequest true "status"
// @Success 200 {object} domain.Event
// @Failure 403,404 {object} map[string]interface{}
// @Router /events/{id}/status [put]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if !validator.Bind(c, &req) {
		return
	}
	e, err := h.service.UpdateStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

// ExpressInterest godoc
// @Summary Express interest in an event
// @Tags Events
// @Param id path int true "event id"
// @Param request body InterestRequest false "message"
// @Success 201 {object} domain.EventInterest
// @Failure 400,404,409 {object} map[string]interface{}
// @Router /events/{id}/interests [post]
func (h *Handler) ExpressInterest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req InterestRequest
	if c.Request.ContentLength != 0 {
		if !validator.Bind(c, &req) {
			return
		}
	}
	in, err := h.service.ExpressInterest(c.Request.Context(), id, c.GetInt64("user_id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, in)
}

// ListInterests godoc
// @Summary List interests for an event
// @Tags Events
// @Param id path int true "event id"
// @Success 200 {array} domain.EventInterest
// @Failure 403,404 {object} map[string]interface{}
// @Router /events/{id}/interests [get]
func (h *Handler) ListInterests(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	items, err := h.service.ListInterests(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

// ApproveInterest godoc
// @Summary Approve an influencer's interest
// @Tags Events
// @Param id path int true "interest id"
// @Success 200 {object} domain.EventInterest
// @Failure 400 {object} map[string]interface{} "capacity exceeded"
// @Failure 401,403,404 {object} map[string]interface{}
// @Router /events/interests/{id}/approve [put]
func (h *Handler) ApproveInterest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, err := h.service.ApproveInterest(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, in)
}

// RejectInterest godoc
// @Summary Reject an influencer's interest
// @Tags Events
// @Param id path int true "interest id"
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,404 {object} map[string]interface{}
// @Router /events/interests/{id}/reject [put]
func (h *Handler) RejectInterest(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service.RejectInterest(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEventNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Event not found")
	case errors.Is(err, ErrInterestNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Interest not found")
	case errors.Is(err, ErrNotEventOwner):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Only the event creator can do this")
	case errors.Is(err, ErrCapacityExceeded):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", "Event has reached its influencer limit")
	case errors.Is(err, ErrEventNotOpen):
		response.Error(c, http.StatusBadRequest, "EVENT_NOT_OPEN", "Event is not open for interest")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Invalid event status")
	case errors.Is(err, ErrAlreadyInterested):
		response.Error(c, http.StatusConflict, "ALREADY_INTERESTED", "You already expressed interest in this event")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func parseIntDefault(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
