// Package web renders the server-side pages: login, role dashboards and the
// influencer onboarding/approval screens.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"brandlink/internal/domain"
	"brandlink/internal/middleware"
	"brandlink/internal/modules/auth"
	"brandlink/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type Authenticator interface {
	Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error)
}

type Handler struct {
	auth      Authenticator
	approvals middleware.ApprovalLookup
	cookie    auth.CookieOptions
}

func NewHandler(a Authenticator, approvals middleware.ApprovalLookup, cookie auth.CookieOptions) *Handler {
	return &Handler{auth: a, approvals: approvals, cookie: cookie}
}

type page struct {
	Title       string
	Session     *jwt.Session
	Error       string
	Email       string
	CallbackURL string
	Reason      string
}

func (h *Handler) Root(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, safeCallback(c.Query("callbackUrl")))
		return
	}
	c.HTML(http.StatusOK, "login.html", page{Title: "Sign in", CallbackURL: c.Query("callbackUrl")})
}

// LoginSubmit handles the HTML form; the JSON API lives at /api/auth/login.
func (h *Handler) LoginSubmit(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	callback := c.PostForm("callbackUrl")

	res, err := h.auth.Login(c.Request.Context(), auth.LoginRequest{Email: email, Password: c.PostForm("password")})
	if err != nil {
		status, msg := loginFailure(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("page login failed")
		}
		c.HTML(status, "login.html", page{Title: "Sign in", Error: msg, Email: email, CallbackURL: callback})
		return
	}

	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, res.Token, h.cookie.MaxAge, h.cookie.Path, "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, safeCallback(callback))
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(h.cookie.SameSite)
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *Handler) Unauthorized(c *gin.Context) {
	c.HTML(http.StatusForbidden, "unauthorized.html", page{Title: "Access denied", Session: middleware.CurrentSession(c)})
}

// Dashboard sends each role to its own area.
func (h *Handler) Dashboard(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	switch domain.UserRole(sess.Role) {
	case domain.RoleAdmin:
		c.Redirect(http.StatusFound, "/admin")
	case domain.RoleBrand:
		c.Redirect(http.StatusFound, "/brand")
	case domain.RoleInfluencer:
		c.Redirect(http.StatusFound, "/influencer")
	default:
		c.Redirect(http.StatusFound, middleware.UnauthorizedPath)
	}
}

func (h *Handler) AdminHome(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", page{Title: "Admin dashboard", Session: middleware.CurrentSession(c)})
}

func (h *Handler) BrandHome(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", page{Title: "Brand dashboard", Session: middleware.CurrentSession(c)})
}

func (h *Handler) InfluencerHome(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", page{Title: "Influencer dashboard", Session: middleware.CurrentSession(c)})
}

// The three approval pages re-check the state so a user who is no longer in
// that state is moved on instead of seeing a stale screen.

func (h *Handler) Onboarding(c *gin.Context) {
	h.approvalPage(c, domain.StateNoProfile, "onboarding.html", "Complete your profile")
}

func (h *Handler) Pending(c *gin.Context) {
	h.approvalPage(c, domain.StatePending, "pending.html", "Under review")
}

func (h *Handler) Rejected(c *gin.Context) {
	h.approvalPage(c, domain.StateRejected, "rejected.html", "Not approved")
}

func (h *Handler) approvalPage(c *gin.Context, want domain.ApprovalState, tmpl, title string) {
	sess := middleware.CurrentSession(c)
	state, profile, err := middleware.InfluencerState(c.Request.Context(), h.approvals, sess.UserID)
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	if state != want {
		target := middleware.ApprovalRedirect(state)
		if target == "" {
			target = "/influencer"
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	p := page{Title: title, Session: sess}
	if profile != nil {
		p.Reason = profile.RejectionReason
	}
	c.HTML(http.StatusOK, tmpl, p)
}

func loginFailure(err error) (int, string) {
	var rejected *auth.RejectedError
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, auth.ErrAccountPending):
		return http.StatusForbidden, "Your account is awaiting admin approval."
	case errors.As(err, &rejected):
		if rejected.Reason != "" {
			return http.StatusForbidden, "Your account was not approved: " + rejected.Reason
		}
		return http.StatusForbidden, "Your account was not approved."
	default:
		return http.StatusInternalServerError, "Something went wrong, please try again."
	}
}

// safeCallback only follows same-site relative paths.
func safeCallback(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return "/dashboard"
	}
	return raw
}
