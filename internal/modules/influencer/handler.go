package influencer

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

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

// GetStatus reports the caller's own approval status.
// @Summary		Influencer approval status
// @Tags		Influencers
// @Param		userId	query	int	false	"must equal the session user id"
// @Success		200	{object}	StatusResponse
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}	"no profile yet"
// @Router		/influencer/status [GET]
func (h *Handler) GetStatus(c *gin.Context) {
	self := c.GetInt64("user_id")
	userID := self
	if raw := strings.TrimSpace(c.Query("userId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid userId")
			return
		}
		userID = id
	}

	status, err := h.service.Status(c.Request.Context(), self, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

// GetByID returns an approved influencer's public profile.
// @Summary		Get influencer
// @Tags		Influencers
// @Param		id	path	int	true	"influencer profile id"
// @Success		200	{object}	PublicProfile
// @Failure		401	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}	"missing or not approved"
// @Router		/influencer/{id} [GET]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid influencer ID")
		return
	}
	p, err := h.service.GetApproved(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// List returns approved influencers, largest audience first.
// @Summary		List influencers
// @Tags		Influencers
// @Param		niche	query	string	false	"niche tag"
// @Param		q		query	string	false	"nickname or handle"
// @Param		page	query	int		false	"page"	default(1)
// @Param		limit	query	int		false	"page size"	default(20)
// @Success		200	{object}	ListResponse
// @Router		/influencers [GET]
func (h *Handler) List(c *gin.Context) {
	page, limit := pagination.Normalize(
		parseIntDefault(c.Query("page"), 1),
		parseIntDefault(c.Query("limit"), pagination.DefaultLimit),
	)

	items, total, err := h.service.ListApproved(c.Request.Context(), c.Query("niche"), c.Query("q"), page, limit)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ListResponse{Influencers: items, Total: total, Page: page, Limit: limit})
}

// CreateProfile submits the onboarding profile for review.
// @Summary		Submit influencer profile
// @Tags		Influencers
// @Param		request	body	ProfileRequest	true	"profile"
// @Success		201	{object}	map[string]interface{}	"profile with approval_status PENDING"
// @Failure		409	{object}	map[string]interface{}	"profile already exists"
// @Router		/influencer/profile [POST]
func (h *Handler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if !validator.Bind(c, &req) {
		return
	}
	p, err := h.service.CreateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"profile": p})
}

// UpdateProfile edits an approved influencer's own profile.
// @Summary		Update influencer profile
// @Tags		Influencers
// @Param		request	body	ProfileRequest	true	"profile"
// @Success		200	{object}	map[string]interface{}
// @Router		/influencer/profile [PUT]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !validator.Bind(c, &req) {
		return
	}
	p, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Influencer not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only view your own status")
	case errors.Is(err, ErrProfileExists):
		response.Error(c, http.StatusConflict, "PROFILE_EXISTS", "Influencer profile already exists")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
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
