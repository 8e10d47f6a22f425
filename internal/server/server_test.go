package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"brandlink/internal/config"
	"brandlink/internal/database"
	"brandlink/internal/domain"
	"brandlink/internal/middleware"
	"brandlink/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "password123"

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithLimiter(t, middleware.NewMemoryLimiter(1000))
}

func newTestAppWithLimiter(t *testing.T, limiter middleware.Limiter) *testApp {
	t.Helper()
	db, err := database.Connect(fmt.Sprintf("file:server_%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		AppEnv:          "test",
		JWTSecret:       "test-secret-with-enough-length-0123456789",
		SessionTTL:      time.Hour,
		CookieName:      "session_token",
		CookieSameSite:  "Lax",
		CookiePath:      "/",
		InternalToken:   "internal-test-token",
		LoginRatePerMin: 1000,
		UploadDir:       t.TempDir(),
		UploadURLBase:   "/static/uploads",
	}
	return &testApp{
		t:      t,
		db:     db,
		engine: New(Deps{Config: cfg, DB: db, Limiter: limiter}),
	}
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) seedUser(email string, role domain.UserRole) *domain.User {
	a.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(a.t, err)
	h := string(hash)
	u := &domain.User{Email: email, Name: "Seeded", Role: role, PasswordHash: &h}
	require.NoError(a.t, a.db.Create(u).Error)
	return u
}

func (a *testApp) login(email string) (int, string) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": testPassword})
	if w.Code != http.StatusOK {
		return w.Code, ""
	}
	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body.Data.Token
}

func (a *testApp) mustLogin(email string) string {
	a.t.Helper()
	code, token := a.login(email)
	require.Equal(a.t, http.StatusOK, code)
	return token
}

func (a *testApp) registerInfluencer(email string) *domain.InfluencerProfile {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/register/influencer", "", gin.H{
		"name":               "Ina Fluence",
		"email":              email,
		"password":           testPassword,
		"nickname":           "ina",
		"instagramFollowers": 1200,
		"niches":             []string{"Beauty"},
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	var u domain.User
	require.NoError(a.t, a.db.Where("email = ?", email).First(&u).Error)
	p, err := repository.NewInfluencerRepository(a.db).GetByUserID(a.t.Context(), u.ID)
	require.NoError(a.t, err)
	return p
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func dataID(t *testing.T, w *httptest.ResponseRecorder) int64 {
	t.Helper()
	var body struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.ID
}

func TestInfluencerApprovalFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@example.com", domain.RoleAdmin)
	profile := app.registerInfluencer("ina@example.com")
	assert.Equal(t, domain.ApprovalPending, profile.ApprovalStatus)

	code, _ := app.login("ina@example.com")
	assert.Equal(t, http.StatusForbidden, code)

	adminToken := app.mustLogin("admin@example.com")
	w := app.do(http.MethodPost, fmt.Sprintf("/api/admin/influencers/%d/approve", profile.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := app.mustLogin("ina@example.com")
	w = app.do(http.MethodGet, "/api/influencer/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"APPROVED"`)

	w = app.do(http.MethodPost, fmt.Sprintf("/api/admin/influencers/%d/reject", profile.ID), adminToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRejectedInfluencerSeesReason(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@example.com", domain.RoleAdmin)
	profile := app.registerInfluencer("rex@example.com")

	adminToken := app.mustLogin("admin@example.com")
	w := app.do(http.MethodPost, fmt.Sprintf("/api/admin/influencers/%d/reject", profile.ID), adminToken, gin.H{"reason": "too few followers"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "rex@example.com", "password": testPassword})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ACCOUNT_REJECTED", errorCode(t, w))
	assert.Contains(t, w.Body.String(), "too few followers")
}

func TestLoginWrongPassword(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("brand@example.com", domain.RoleBrand)

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "brand@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))

	w = app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "nobody@example.com", "password": testPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, w))
}

func TestLoginSetsSessionCookie(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("brand@example.com", domain.RoleBrand)

	w := app.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "brand@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, w.Code)

	var cookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "session_token" {
			cookie = ck
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"role":"BRAND"`)
}

func TestInfluencerLookupAccess(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@example.com", domain.RoleAdmin)
	app.seedUser("brand@example.com", domain.RoleBrand)
	approved := app.registerInfluencer("ok@example.com")
	pending := app.registerInfluencer("wait@example.com")

	adminToken := app.mustLogin("admin@example.com")
	w := app.do(http.MethodPost, fmt.Sprintf("/api/admin/influencers/%d/approve", approved.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	influencerToken := app.mustLogin("ok@example.com")
	brandToken := app.mustLogin("brand@example.com")
	path := fmt.Sprintf("/api/influencer/%d", approved.ID)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, path, influencerToken, nil).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, path, brandToken, nil).Code)

	w = app.do(http.MethodGet, fmt.Sprintf("/api/influencer/%d", pending.ID), brandToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(http.MethodGet, "/api/influencers", brandToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestListingsReportAppliedPageSize(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@example.com", domain.RoleAdmin)
	adminToken := app.mustLogin("admin@example.com")

	for _, path := range []string{
		"/api/influencers?limit=500&page=0",
		"/api/events?limit=500&page=0",
		"/api/admin/influencers?limit=500&page=0",
	} {
		w := app.do(http.MethodGet, path, adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code, path)

		var body struct {
			Data struct {
				Page  int `json:"page"`
				Limit int `json:"limit"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 1, body.Data.Page, path)
		assert.Equal(t, 20, body.Data.Limit, path)
	}
}

func TestEventCapacity(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("admin@example.com", domain.RoleAdmin)
	app.seedUser("brand@example.com", domain.RoleBrand)
	first := app.registerInfluencer("first@example.com")
	second := app.registerInfluencer("second@example.com")

	adminToken := app.mustLogin("admin@example.com")
	for _, p := range []*domain.InfluencerProfile{first, second} {
		w := app.do(http.MethodPost, fmt.Sprintf("/api/admin/influencers/%d/approve", p.ID), adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	brandToken := app.mustLogin("brand@example.com")
	w := app.do(http.MethodPost, "/api/events", brandToken, gin.H{
		"title":          "Launch party",
		"status":         "PUBLISHED",
		"maxInfluencers": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	eventID := dataID(t, w)

	var interests []int64
	for _, email := range []string{"first@example.com", "second@example.com"} {
		token := app.mustLogin(email)
		w := app.do(http.MethodPost, fmt.Sprintf("/api/events/%d/interests", eventID), token, gin.H{"message": "count me in"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		interests = append(interests, dataID(t, w))
	}

	w = app.do(http.MethodPut, fmt.Sprintf("/api/events/interests/%d/approve", interests[0]), brandToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodPut, fmt.Sprintf("/api/events/interests/%d/approve", interests[1]), brandToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CAPACITY_EXCEEDED", errorCode(t, w))

	w = app.do(http.MethodPut, fmt.Sprintf("/api/events/interests/%d/reject", interests[1]), brandToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
}

func TestPendingInfluencerAPIBlocked(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("brand@example.com", domain.RoleBrand)

	// A session issued before registration is reviewed still hits the approval gate.
	u := app.seedUser("fresh@example.com", domain.RoleInfluencer)
	token := app.mustLogin("fresh@example.com")
	require.NoError(t, app.db.Create(&domain.InfluencerProfile{
		UserID:         u.ID,
		Nickname:       "fresh",
		ApprovalStatus: domain.ApprovalPending,
	}).Error)

	brandToken := app.mustLogin("brand@example.com")
	w := app.do(http.MethodPost, "/api/events", brandToken, gin.H{"title": "Open call", "status": "PUBLISHED"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = app.do(http.MethodPost, fmt.Sprintf("/api/events/%d/interests", dataID(t, w)), token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "APPROVAL_REQUIRED", errorCode(t, w))
}

func TestPageRedirects(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("brand@example.com", domain.RoleBrand)
	app.seedUser("new@example.com", domain.RoleInfluencer)

	w := app.do(http.MethodGet, "/admin", "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?callbackUrl="+url.QueryEscape("/admin"), w.Header().Get("Location"))

	brandToken := app.mustLogin("brand@example.com")
	w = app.do(http.MethodGet, "/admin", brandToken, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/unauthorized", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/brand", brandToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/dashboard", brandToken, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/brand", w.Header().Get("Location"))

	influencerToken := app.mustLogin("new@example.com")
	w = app.do(http.MethodGet, "/influencer", influencerToken, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/influencer/onboarding", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/unauthorized", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLoginFormRedirectsToCallback(t *testing.T) {
	app := newTestApp(t)
	app.seedUser("brand@example.com", domain.RoleBrand)

	form := url.Values{"email": {"brand@example.com"}, "password": {testPassword}, "callbackUrl": {"/brand"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	app.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/brand", w.Header().Get("Location"))
}

func TestHealthAndUnknownRoute(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInternalFederatedRequiresToken(t *testing.T) {
	app := newTestApp(t)

	w := app.do(http.MethodPost, "/api/internal/auth/federated", "", gin.H{"email": "fed@example.com", "role": "BRAND"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(http.MethodPost, "/api/internal/auth/federated", "internal-test-token", gin.H{"email": "fed@example.com", "role": "BRAND"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"token"`)
}

func TestLoginRateLimitIgnoresForwardedFor(t *testing.T) {
	app := newTestAppWithLimiter(t, middleware.NewMemoryLimiter(2))

	var codes []int
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"nobody@example.com","password":"wrong-password"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		req.RemoteAddr = "198.51.100.7:4321"
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{
		http.StatusUnauthorized, http.StatusUnauthorized,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}
