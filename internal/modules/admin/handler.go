package admin

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"brandlink/internal/domain"
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

// ApproveInfluencer moves a pending influencer profile to APPROVED.
// @Summary		Approve influencer
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"influencer profile id"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}	"profile already reviewed"
// @Router		/admin/influencers/{id}/approve [POST]
func (h *Handler) ApproveInfluencer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid influencer ID")
		return
	}

	p, err := h.service.ApproveInfluencer(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"influencer": p})
}

// RejectInfluencer moves a pending influencer profile to REJECTED.
// @Summary		Reject influencer
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int						true	"influencer profile id"
// @Param		request	body	RejectInfluencerRequest	false	"optional reason"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}	"profile already reviewed"
// @Router		/admin/influencers/{id}/reject [POST]
func (h *Handler) RejectInfluencer(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid influencer ID")
		return
	}

	var req RejectInfluencerRequest
	if c.Request.ContentLength != 0 {
		if !validator.Bind(c, &req) {
			return
		}
	}

	p, err := h.service.RejectInfluencer(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"influencer": p})
}

// ListInfluencers returns the moderation queue.
// @Summary		List influencers for review
// @Tags		Admin
// @Security	BearerAuth
// @Param		status	query	string	false	"PENDING, APPROVED or REJECTED; empty for all"
// @Param		page	query	int		false	"page"	default(1)
// @Param		limit	query	int		false	"page size"	default(20)
// @Success		200	{object}	InfluencerListResponse
// @Router		/admin/influencers [GET]
func (h *Handler) ListInfluencers(c *gin.Context) {
	status := domain.ApprovalStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	switch status {
	case "", domain.ApprovalPending, domain.ApprovalApproved, domain.ApprovalRejected:
	default:
		response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Status must be PENDING, APPROVED or REJECTED")
		return
	}

	page, limit := pagination.Normalize(
		parseIntDefault(c.Query("page"), 1),
		parseIntDefault(c.Query("limit"), pagination.DefaultLimit),
	)

	items, total, err := h.service.ListInfluencers(c.Request.Context(), status, page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, InfluencerListResponse{
		Influencers: items,
		Total:       total,
		Page:        page,
		Limit:       limit,
	})
}

// GetStatistics returns user and moderation counters.
// @Summary		Platform statistics
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	StatisticsResponse
// @Router		/admin/stats [GET]
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Influencer profile not found")
	case errors.Is(err, ErrAlreadyReviewed):
		response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Influencer profile has already been reviewed")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// -------------------- helpers --------------------

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
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
