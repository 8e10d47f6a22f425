package server

import (
	"net/http"

	"brandlink/internal/domain"
	"brandlink/internal/middleware"

	"github.com/gin-gonic/gin"
)

// route is one entry of the routing table. The same table registers the
// handlers and feeds the access gate, so a route cannot exist without a policy.
type route struct {
	method   string
	path     string
	policy   middleware.Policy
	handlers []gin.HandlerFunc
}

func r(method, path string, policy middleware.Policy, handlers ...gin.HandlerFunc) route {
	return route{method: method, path: path, policy: policy, handlers: handlers}
}

var (
	public         = middleware.Public()
	authenticated  = middleware.Authenticated()
	adminOnly      = middleware.Roles(domain.RoleAdmin)
	brandOnly      = middleware.Roles(domain.RoleBrand)
	influencerOnly = middleware.Roles(domain.RoleInfluencer)
	adminOrBrand   = middleware.Roles(domain.RoleAdmin, domain.RoleBrand)
)

func (s *Server) routes() []route {
	h := s.handlers
	loginLimit := middleware.RateLimit(s.limiter, "login")

	return []route{
		// pages
		r(http.MethodGet, "/", public, h.web.Root),
		r(http.MethodGet, "/login", public, h.web.LoginPage),
		r(http.MethodPost, "/login", public, loginLimit, h.web.LoginSubmit),
		r(http.MethodPost, "/logout", public, h.web.Logout),
		r(http.MethodGet, "/unauthorized", public, h.web.Unauthorized),
		r(http.MethodGet, "/dashboard", authenticated.AsPage(), h.web.Dashboard),
		r(http.MethodGet, "/admin", adminOnly.AsPage(), h.web.AdminHome),
		r(http.MethodGet, "/brand", brandOnly.AsPage(), h.web.BrandHome),
		r(http.MethodGet, "/influencer", influencerOnly.AsPage().Approved(), h.web.InfluencerHome),
		r(http.MethodGet, "/influencer/onboarding", influencerOnly.AsPage(), h.web.Onboarding),
		r(http.MethodGet, "/influencer/pending", influencerOnly.AsPage(), h.web.Pending),
		r(http.MethodGet, "/influencer/rejected", influencerOnly.AsPage(), h.web.Rejected),

		// auth
		r(http.MethodPost, "/api/register", public, h.auth.Register),
		r(http.MethodPost, "/api/register/brand", public, h.auth.RegisterBrand),
		r(http.MethodPost, "/api/register/influencer", public, h.auth.RegisterInfluencer),
		r(http.MethodPost, "/api/auth/login", public, loginLimit, h.auth.Login),
		r(http.MethodPost, "/api/auth/logout", public, h.auth.Logout),
		r(http.MethodGet, "/api/auth/session", public, h.auth.GetSession),
		r(http.MethodPut, "/api/auth/session", authenticated, h.auth.UpdateSession),
		r(http.MethodPost, "/api/internal/auth/federated", public, middleware.InternalTokenAuth(s.cfg.InternalToken), h.auth.Federated),

		// admin
		r(http.MethodGet, "/api/admin/influencers", adminOnly, h.admin.ListInfluencers),
		r(http.MethodPost, "/api/admin/influencers/:id/approve", adminOnly, h.admin.ApproveInfluencer),
		r(http.MethodPost, "/api/admin/influencers/:id/reject", adminOnly, h.admin.RejectInfluencer),
		r(http.MethodGet, "/api/admin/stats", adminOnly, h.admin.GetStatistics),

		// influencers
		r(http.MethodGet, "/api/influencer/status", authenticated, h.influencer.GetStatus),
		r(http.MethodPost, "/api/influencer/profile", influencerOnly, h.influencer.CreateProfile),
		r(http.MethodPut, "/api/influencer/profile", influencerOnly.Approved(), h.influencer.UpdateProfile),
		r(http.MethodGet, "/api/influencer/:id", adminOrBrand, h.influencer.GetByID),
		r(http.MethodGet, "/api/influencers", adminOrBrand, h.influencer.List),

		// brands
		r(http.MethodGet, "/api/brand/profile", brandOnly, h.brand.GetProfile),
		r(http.MethodPut, "/api/brand/profile", brandOnly, h.brand.UpdateProfile),
		r(http.MethodGet, "/api/brand/events", brandOnly, h.event.ListMine),

		// events
		r(http.MethodPost, "/api/events", brandOnly, h.event.Create),
		r(http.MethodGet, "/api/events", authenticated, h.event.List),
		r(http.MethodGet, "/api/events/:id", authenticated, h.event.Get),
		r(http.MethodPut, "/api/events/:id/status", brandOnly, h.event.UpdateStatus),
		r(http.MethodPost, "/api/events/:id/interests", influencerOnly.Approved(), h.event.ExpressInterest),
		r(http.MethodGet, "/api/events/:id/interests", brandOnly, h.event.ListInterests),
		r(http.MethodPut, "/api/events/interests/:id/approve", authenticated, h.event.ApproveInterest),
		r(http.MethodPut, "/api/events/interests/:id/reject", authenticated, h.event.RejectInterest),

		// uploads
		r(http.MethodPost, "/api/upload", authenticated, h.upload.Upload),
		r(http.MethodGet, "/api/upload", authenticated, h.upload.ListMy),

		// ops
		r(http.MethodGet, "/health", public, s.health),
		r(http.MethodGet, "/metrics", public, gin.WrapH(s.metricsHandler)),
	}
}

// accessTable derives the gate's policy map from the routing table.
func accessTable(routes []route) middleware.AccessTable {
	t := make(middleware.AccessTable, len(routes))
	for _, rt := range routes {
		t[middleware.RouteKey(rt.method, rt.path)] = rt.policy
	}
	return t
}
