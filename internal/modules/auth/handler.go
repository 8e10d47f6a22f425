package auth

import (
	"errors"
	"net/http"

	"brandlink/internal/middleware"
	"brandlink/internal/pkg/jwt"
	"brandlink/internal/pkg/response"
	"brandlink/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CookieOptions describe the session cookie written on login.
type CookieOptions struct {
	Name     string
	Path     string
	Secure   bool
	SameSite http.SameSite
	MaxAge   int
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookie  CookieOptions
}

func NewHandler(service *Service, cookie CookieOptions) *Handler {
	return &Handler{service: service, cookie: cookie}
}

// Register creates a BRAND or INFLUENCER account.
// @Summary		Register
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"name, email, password, role"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"validation error or email already registered"
// @Router		/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !validator.Bind(c, &req) {
		return
	}
	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": publicFromUser(user)})
}

// RegisterBrand creates a BRAND user and its brand profile.
// @Summary		Register brand
// @Tags		Auth
// @Param		request	body	RegisterBrandRequest	true	"account and company fields"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Router		/register/brand [POST]
func (h *Handler) RegisterBrand(c *gin.Context) {
	var req RegisterBrandRequest
	if !validator.Bind(c, &req) {
		return
	}
	user, err := h.service.RegisterBrand(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": publicFromUser(user)})
}

// RegisterInfluencer creates an INFLUENCER user with a profile awaiting review.
// @Summary		Register influencer
// @Tags		Auth
// @Param		request	body	RegisterInfluencerRequest	true	"account and profile fields"
// @Success		201	{object}	map[string]interface{}	"approvalStatus is PENDING"
// @Failure		400	{object}	map[string]interface{}
// @Router		/register/influencer [POST]
func (h *Handler) RegisterInfluencer(c *gin.Context) {
	var req RegisterInfluencerRequest
	if !validator.Bind(c, &req) {
		return
	}
	user, err := h.service.RegisterInfluencer(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"user":           publicFromUser(user),
		"approvalStatus": "PENDING",
	})
}

// Login verifies credentials and issues a session.
// @Summary		Log in
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"email, password"
// @Success		200	{object}	map[string]interface{}	"token, user, expires; session cookie set"
// @Failure		401	{object}	map[string]interface{}	"invalid credentials"
// @Failure		403	{object}	map[string]interface{}	"influencer pending or rejected"
// @Failure		429	{object}	map[string]interface{}
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !validator.Bind(c, &req) {
		return
	}
	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setCookie(c, res.Token)
	response.Success(c, http.StatusOK, gin.H{
		"token":   res.Token,
		"user":    res.User,
		"expires": res.Session.ExpiresAt,
	})
}

// Logout clears the session cookie. Issued tokens stay valid until expiry.
// @Summary		Log out
// @Tags		Auth
// @Success		200	{object}	map[string]interface{}
// @Router		/auth/logout [POST]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, "", h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true})
}

// GetSession reports the decoded session, if any.
// @Summary		Current session
// @Tags		Auth
// @Success		200	{object}	map[string]interface{}	"authenticated, session"
// @Router		/auth/session [GET]
func (h *Handler) GetSession(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Success(c, http.StatusOK, gin.H{"authenticated": false, "session": nil})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"authenticated": true, "session": sess})
}

// UpdateSession changes name and image and returns a re-signed token.
// @Summary		Update session
// @Tags		Auth
// @Param		request	body	UpdateSessionRequest	true	"name, image"
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Router		/auth/session [PUT]
func (h *Handler) UpdateSession(c *gin.Context) {
	var req UpdateSessionRequest
	if !validator.Bind(c, &req) {
		return
	}
	sess := middleware.CurrentSession(c)
	if sess == nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	token, updated, err := h.service.UpdateSession(c.Request.Context(), middleware.CurrentToken(c), sess, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.setCookie(c, token)
	response.Success(c, http.StatusOK, gin.H{"token": token, "session": updated})
}

// Federated issues a session for an identity asserted by the trusted
// identity-provider bridge.
// @Summary		Federated sign-in
// @Tags		Internal
// @Security	BearerAuth
// @Param		request	body	FederatedRequest	true	"email, name, image, role for new users"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}	"new user without role"
// @Failure		403	{object}	map[string]interface{}	"influencer pending or rejected, or admin/password account"
// @Router		/internal/auth/federated [POST]
func (h *Handler) Federated(c *gin.Context) {
	var req FederatedRequest
	if !validator.Bind(c, &req) {
		return
	}
	res, err := h.service.FederatedLogin(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":   res.Token,
		"user":    res.User,
		"expires": res.Session.ExpiresAt,
	})
}

func (h *Handler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, token, h.cookie.MaxAge, h.cookie.Path, "", h.cookie.Secure, true)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var rejected *RejectedError
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, ErrAccountPending):
		response.Error(c, http.StatusForbidden, "ACCOUNT_PENDING", "Your account is awaiting admin approval")
	case errors.As(err, &rejected):
		response.ErrorWithDetails(c, http.StatusForbidden, "ACCOUNT_REJECTED", rejected.Error(), gin.H{"reason": rejected.Reason})
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusBadRequest, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Role must be BRAND or INFLUENCER")
	case errors.Is(err, jwt.ErrInvalidSession):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Session expired")
	case errors.Is(err, ErrRoleRequired):
		response.Error(c, http.StatusBadRequest, "ROLE_REQUIRED", "Choose a role to finish sign-up")
	case errors.Is(err, ErrFederatedNotAllowed):
		response.Error(c, http.StatusForbidden, "FEDERATED_NOT_ALLOWED", "This account must sign in with its password")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("auth request failed")
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
