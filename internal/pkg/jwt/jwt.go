package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session")

// Identity is what a verified login hands to the issuer.
type Identity struct {
	ID    int64
	Name  string
	Email string
	Role  string
	Image string
}

// Session is the decoded, verified content of a session token.
type Session struct {
	UserID    int64     `json:"id"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Image     string    `json:"image,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires"`
}

type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	jwtlib.RegisteredClaims
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests around the expiry boundary.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) TTL() time.Duration { return s.ttl }

// Issue mints a token valid for the configured lifetime.
func (s *Service) Issue(id Identity) (string, *Session, error) {
	issuedAt := s.now().Truncate(time.Second)
	sess := &Session{
		UserID:    id.ID,
		Role:      id.Role,
		Name:      id.Name,
		Image:     id.Image,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(s.ttl),
	}
	token, err := s.sign(sess)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

// Validate verifies signature and expiry. A token is valid only while
// now < exp; at exactly exp it is rejected.
func (s *Service) Validate(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidSession
	}
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, ErrInvalidSession
	}
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrInvalidSession
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, ErrInvalidSession
	}

	return &Session{
		UserID:    userID,
		Role:      claims.Role,
		Name:      claims.Name,
		Image:     claims.Image,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Update overwrites the display fields of a valid token. Subject, role and
// the validity window are carried over untouched.
func (s *Service) Update(tokenStr, name, image string) (string, *Session, error) {
	sess, err := s.Validate(tokenStr)
	if err != nil {
		return "", nil, err
	}
	if name != "" {
		sess.Name = name
	}
	if image != "" {
		sess.Image = image
	}
	token, err := s.sign(sess)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

func (s *Service) sign(sess *Session) (string, error) {
	claims := Claims{
		Role:  sess.Role,
		Name:  sess.Name,
		Image: sess.Image,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(sess.UserID, 10),
			IssuedAt:  jwtlib.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwtlib.NewNumericDate(sess.ExpiresAt),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
