// Package brand serves the brand's own company profile.
package brand

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/response"
	"brandlink/internal/pkg/validator"
	"brandlink/internal/repository"

	"github.com/gin-gonic/gin"
)

var ErrNotFound = errors.New("brand profile not found")

type Repository interface {
	Create(ctx context.Context, p *domain.BrandProfile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.BrandProfile, error)
	Update(ctx context.Context, p *domain.BrandProfile) error
}

type ProfileRequest struct {
	CompanyName  string `json:"companyName" validate:"required,max=255"`
	Website      string `json:"website,omitempty" validate:"omitempty,url"`
	Logo         string `json:"logo,omitempty" validate:"max=2048"`
	Industry     string `json:"industry,omitempty" validate:"max=100"`
	Location     string `json:"location,omitempty" validate:"max=255"`
	ContactPhone string `json:"contactPhone,omitempty" validate:"max=32"`
	Description  string `json:"description,omitempty" validate:"max=5000"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int64) (*domain.BrandProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Save updates the brand profile, creating it for brands that signed up
// through an identity provider and never had one.
func (s *Service) Save(ctx context.Context, userID int64, req ProfileRequest) (*domain.BrandProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
	case repository.IsNotFound(err):
		p = &domain.BrandProfile{UserID: userID}
	default:
		return nil, err
	}

	p.CompanyName = strings.TrimSpace(req.CompanyName)
	p.Website = req.Website
	p.Logo = req.Logo
	p.Industry = req.Industry
	p.Location = req.Location
	p.ContactPhone = req.ContactPhone
	p.Description = req.Description

	if p.ID == 0 {
		err = s.repo.Create(ctx, p)
	} else {
		err = s.repo.Update(ctx, p)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetProfile returns the caller's brand profile.
// @Summary		Get brand profile
// @Tags		Brands
// @Success		200	{object}	domain.BrandProfile
// @Failure		404	{object}	map[string]interface{}
// @Router		/brand/profile [GET]
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// UpdateProfile saves the caller's brand profile.
// @Summary		Update brand profile
// @Tags		Brands
// @Param		request	body	ProfileRequest	true	"company fields"
// @Success		200	{object}	domain.BrandProfile
// @Router		/brand/profile [PUT]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if !validator.Bind(c, &req) {
		return
	}
	p, err := h.service.Save(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Brand profile not found")
		return
	}
	_ = c.Error(err)
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
