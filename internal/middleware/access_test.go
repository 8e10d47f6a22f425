package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"brandlink/internal/domain"
	"brandlink/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDecide(t *testing.T) {
	brand := &jwt.Session{UserID: 1, Role: string(domain.RoleBrand)}
	admin := &jwt.Session{UserID: 2, Role: string(domain.RoleAdmin)}
	influencer := &jwt.Session{UserID: 3, Role: string(domain.RoleInfluencer)}

	adminOrBrand := Roles(domain.RoleAdmin, domain.RoleBrand)

	tests := []struct {
		name   string
		sess   *jwt.Session
		policy Policy
		want   Decision
	}{
		{"public anonymous", nil, Public(), Allow},
		{"public with session", brand, Public(), Allow},
		{"authenticated anonymous", nil, Authenticated(), NeedLogin},
		{"authenticated any role", influencer, Authenticated(), Allow},
		{"role match admin", admin, adminOrBrand, Allow},
		{"role match brand", brand, adminOrBrand, Allow},
		{"role mismatch", influencer, adminOrBrand, Forbidden},
		{"role anonymous", nil, adminOrBrand, NeedLogin},
		{"page keeps decision", influencer, Roles(domain.RoleAdmin).AsPage(), Forbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sess, tt.policy))
			// same inputs, same answer
			assert.Equal(t, tt.want, Decide(tt.sess, tt.policy))
		})
	}
}

type fakeApprovals struct {
	profile *domain.InfluencerProfile
	err     error
	calls   int
}

func (f *fakeApprovals) GetByUserID(_ context.Context, _ int64) (*domain.InfluencerProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func gateRouter(t *testing.T, approvals ApprovalLookup) (*gin.Engine, *jwt.Service) {
	t.Helper()
	svc := jwt.New("test-secret-123", time.Hour)

	table := AccessTable{
		RouteKey(http.MethodGet, "/admin"):                  Roles(domain.RoleAdmin).AsPage(),
		RouteKey(http.MethodGet, "/influencer"):             Roles(domain.RoleInfluencer).AsPage().Approved(),
		RouteKey(http.MethodGet, "/api/admin/stats"):        Roles(domain.RoleAdmin),
		RouteKey(http.MethodGet, "/api/influencer/:id"):     Roles(domain.RoleAdmin, domain.RoleBrand),
		RouteKey(http.MethodPut, "/api/influencer/profile"): Roles(domain.RoleInfluencer).Approved(),
	}

	router := gin.New()
	router.Use(Session(svc, "session_token"), Gate(table, approvals))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/admin", ok)
	router.GET("/influencer", ok)
	router.GET("/api/admin/stats", ok)
	router.GET("/api/influencer/:id", ok)
	router.PUT("/api/influencer/profile", ok)
	router.GET("/open", ok)
	return router, svc
}

func do(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func tokenFor(t *testing.T, svc *jwt.Service, id int64, role domain.UserRole) string {
	t.Helper()
	token, _, err := svc.Issue(jwt.Identity{ID: id, Role: string(role)})
	require.NoError(t, err)
	return token
}

func TestGate_PageRedirectsToLoginWithCallback(t *testing.T) {
	router, _ := gateRouter(t, &fakeApprovals{})

	w := do(router, http.MethodGet, "/admin?tab=users", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fadmin%3Ftab%3Dusers", w.Header().Get("Location"))
}

func TestGate_PageWrongRoleRedirectsToUnauthorized(t *testing.T) {
	router, svc := gateRouter(t, &fakeApprovals{})

	w := do(router, http.MethodGet, "/admin", tokenFor(t, svc, 5, domain.RoleBrand))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, UnauthorizedPath, w.Header().Get("Location"))
}

func TestGate_APIStatusCodes(t *testing.T) {
	router, svc := gateRouter(t, &fakeApprovals{})

	w := do(router, http.MethodGet, "/api/influencer/9", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")

	w = do(router, http.MethodGet, "/api/influencer/9", tokenFor(t, svc, 3, domain.RoleInfluencer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = do(router, http.MethodGet, "/api/influencer/9", tokenFor(t, svc, 4, domain.RoleBrand))
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/api/admin/stats", tokenFor(t, svc, 4, domain.RoleBrand))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGate_UnlistedRouteIsPublic(t *testing.T) {
	router, _ := gateRouter(t, &fakeApprovals{})

	w := do(router, http.MethodGet, "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGate_ApprovalRedirects(t *testing.T) {
	tests := []struct {
		name     string
		lookup   *fakeApprovals
		location string
	}{
		{"no profile", &fakeApprovals{err: gorm.ErrRecordNotFound}, OnboardingPath},
		{"pending", &fakeApprovals{profile: &domain.InfluencerProfile{ApprovalStatus: domain.ApprovalPending}}, PendingPath},
		{"rejected", &fakeApprovals{profile: &domain.InfluencerProfile{ApprovalStatus: domain.ApprovalRejected}}, RejectedPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := gateRouter(t, tt.lookup)
			w := do(router, http.MethodGet, "/influencer", tokenFor(t, svc, 3, domain.RoleInfluencer))

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestGate_ApprovedInfluencerPasses(t *testing.T) {
	lookup := &fakeApprovals{profile: &domain.InfluencerProfile{ApprovalStatus: domain.ApprovalApproved}}
	router, svc := gateRouter(t, lookup)

	w := do(router, http.MethodGet, "/influencer", tokenFor(t, svc, 3, domain.RoleInfluencer))
	assert.Equal(t, http.StatusOK, w.Code)

	// evaluated on every request
	lookup.profile.ApprovalStatus = domain.ApprovalRejected
	w = do(router, http.MethodGet, "/influencer", tokenFor(t, svc, 3, domain.RoleInfluencer))
	assert.Equal(t, RejectedPath, w.Header().Get("Location"))
	assert.Equal(t, 2, lookup.calls)
}

func TestGate_ApprovalOnAPIReturnsJSON(t *testing.T) {
	lookup := &fakeApprovals{profile: &domain.InfluencerProfile{ApprovalStatus: domain.ApprovalPending}}
	router, svc := gateRouter(t, lookup)

	w := do(router, http.MethodPut, "/api/influencer/profile", tokenFor(t, svc, 3, domain.RoleInfluencer))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "APPROVAL_REQUIRED")
	assert.Contains(t, w.Body.String(), `"status":"PENDING"`)
}

func TestApprovalRedirect(t *testing.T) {
	assert.Equal(t, "", ApprovalRedirect(domain.StateApproved))
	assert.Equal(t, OnboardingPath, ApprovalRedirect(domain.StateNoProfile))
	assert.Equal(t, PendingPath, ApprovalRedirect(domain.StatePending))
	assert.Equal(t, RejectedPath, ApprovalRedirect(domain.StateRejected))
}
