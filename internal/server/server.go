// Package server wires repositories, services and handlers into the gin engine.
package server

import (
	"context"
	"net/http"
	"time"

	"brandlink/internal/config"
	"brandlink/internal/database"
	"brandlink/internal/middleware"
	"brandlink/internal/modules/admin"
	"brandlink/internal/modules/auth"
	"brandlink/internal/modules/brand"
	"brandlink/internal/modules/event"
	"brandlink/internal/modules/influencer"
	"brandlink/internal/modules/upload"
	"brandlink/internal/pkg/jwt"
	"brandlink/internal/pkg/metrics"
	"brandlink/internal/pkg/response"
	"brandlink/internal/repository"
	"brandlink/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Limiter middleware.Limiter
}

type handlers struct {
	web        *web.Handler
	auth       *auth.Handler
	admin      *admin.Handler
	influencer *influencer.Handler
	brand      *brand.Handler
	event      *event.Handler
	upload     *upload.Handler
}

type Server struct {
	cfg            *config.Config
	db             *gorm.DB
	limiter        middleware.Limiter
	tokens         *jwt.Service
	influencers    *repository.InfluencerRepository
	handlers       handlers
	metricsHandler http.Handler
}

// New builds the HTTP engine. A nil Limiter falls back to the in-memory one.
func New(d Deps) *gin.Engine {
	s := &Server{
		cfg:            d.Config,
		db:             d.DB,
		limiter:        d.Limiter,
		metricsHandler: metrics.Handler(),
	}
	if s.limiter == nil {
		s.limiter = middleware.NewMemoryLimiter(d.Config.LoginRatePerMin)
	}
	s.wire()
	return s.engine()
}

func (s *Server) wire() {
	cfg := s.cfg

	userRepo := repository.NewUserRepository(s.db)
	brandRepo := repository.NewBrandRepository(s.db)
	eventRepo := repository.NewEventRepository(s.db)
	uploadRepo := repository.NewUploadRepository(s.db)
	s.influencers = repository.NewInfluencerRepository(s.db)
	s.tokens = jwt.New(cfg.JWTSecret, cfg.SessionTTL)

	cookie := auth.CookieOptions{
		Name:     cfg.CookieName,
		Path:     cfg.CookiePath,
		Secure:   cfg.CookieSecure,
		SameSite: cfg.SameSite(),
		MaxAge:   int(cfg.SessionTTL.Seconds()),
	}

	authService := auth.NewService(userRepo, s.influencers, s.tokens)

	s.handlers = handlers{
		web:        web.NewHandler(authService, s.influencers, cookie),
		auth:       auth.NewHandler(authService, cookie),
		admin:      admin.NewHandler(admin.NewService(s.influencers, userRepo, eventRepo)),
		influencer: influencer.NewHandler(influencer.NewService(s.influencers)),
		brand:      brand.NewHandler(brand.NewService(brandRepo)),
		event:      event.NewHandler(event.NewService(eventRepo)),
		upload:     upload.NewHandler(upload.NewService(uploadRepo, cfg.UploadDir, cfg.UploadURLBase)),
	}
}

func (s *Server) engine() *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	// Without TRUSTED_PROXIES, ClientIP is the socket peer.
	if err := router.SetTrustedProxies(s.cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Strs("trusted_proxies", s.cfg.TrustedProxies).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = router.SetTrustedProxies(nil)
	}

	routes := s.routes()
	router.Use(
		middleware.ErrorLogger(s.cfg.IsProduction()),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORS(s.cfg.CORSAllowedOrigins, s.cfg.IsProduction()),
		middleware.Session(s.tokens, s.cfg.CookieName),
		middleware.Gate(accessTable(routes), s.influencers),
	)

	router.Static(s.cfg.UploadURLBase, s.cfg.UploadDir)
	for _, rt := range routes {
		router.Handle(rt.method, rt.path, rt.handlers...)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	return router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := database.Ping(ctx, s.db); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unreachable")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"status": "ok"})
}
