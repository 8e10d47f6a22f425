package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultInternalToken = "change-me-internal-token"
	minSecretLength      = 32
)

type Config struct {
	AppEnv             string        `env:"APP_ENV" envDefault:"dev"`
	Port               int           `env:"PORT" envDefault:"8080"`
	DatabaseURL        string        `env:"DATABASE_URL" envDefault:"brandlink.db"`
	JWTSecret          string        `env:"JWT_SECRET" envDefault:"change-me-jwt-secret"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	CookieName         string        `env:"COOKIE_NAME" envDefault:"session_token"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CookieSameSite     string        `env:"COOKIE_SAMESITE" envDefault:"Lax"`
	CookiePath         string        `env:"COOKIE_PATH" envDefault:"/"`
	InternalToken      string        `env:"INTERNAL_TOKEN" envDefault:"change-me-internal-token"`
	RedisURL           string        `env:"REDIS_URL"`
	LoginRatePerMin    int           `env:"LOGIN_RATE_PER_MIN" envDefault:"10"`
	UploadDir          string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	UploadURLBase      string        `env:"UPLOAD_URL_BASE" envDefault:"/static/uploads"`
	SentryDSN          string        `env:"SENTRY_DSN"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	TrustedProxies     []string      `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

// SameSite maps COOKIE_SAMESITE onto net/http's constants.
func (c *Config) SameSite() http.SameSite {
	switch strings.ToLower(strings.TrimSpace(c.CookieSameSite)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if c.LoginRatePerMin <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be > 0")
	}
	if strings.TrimSpace(c.CookieName) == "" {
		return fmt.Errorf("COOKIE_NAME must not be empty")
	}
	if strings.TrimSpace(c.CookiePath) == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	sameSite := strings.ToLower(strings.TrimSpace(c.CookieSameSite))
	if sameSite != "lax" && sameSite != "none" && sameSite != "strict" {
		return fmt.Errorf("COOKIE_SAMESITE must be one of: Lax, None, Strict")
	}
	if sameSite == "none" && !c.CookieSecure {
		return fmt.Errorf("COOKIE_SECURE must be true when COOKIE_SAMESITE=None")
	}

	if c.IsProduction() {
		if isEmptyOrDefault(c.JWTSecret, defaultJWTSecret) || len(c.JWTSecret) < minSecretLength {
			return fmt.Errorf("in prod/release JWT_SECRET must be set, not default and at least %d characters", minSecretLength)
		}
		if isEmptyOrDefault(c.InternalToken, defaultInternalToken) {
			return fmt.Errorf("in prod/release INTERNAL_TOKEN must be set and not default")
		}
		if !c.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}
