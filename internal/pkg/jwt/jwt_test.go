package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(clock *fakeClock) *Service {
	return New("test-secret-123", 30*24*time.Hour).WithClock(clock.Now)
}

func TestIssueValidate_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, issued, err := svc.Issue(Identity{ID: 42, Name: "Ann", Role: "INFLUENCER", Image: "/a.png"})
	require.NoError(t, err)
	assert.Equal(t, clock.t.Add(30*24*time.Hour), issued.ExpiresAt)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "INFLUENCER", sess.Role)
	assert.Equal(t, "Ann", sess.Name)
	assert.Equal(t, "/a.png", sess.Image)
}

func TestValidate_ExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: start}
	svc := newTestService(clock)

	token, issued, err := svc.Issue(Identity{ID: 1, Role: "BRAND"})
	require.NoError(t, err)

	clock.t = issued.ExpiresAt.Add(-time.Second)
	_, err = svc.Validate(token)
	assert.NoError(t, err)

	clock.t = issued.ExpiresAt
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	clock.t = issued.ExpiresAt.Add(time.Hour)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidate_WrongSecret(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	token, _, err := newTestService(clock).Issue(Identity{ID: 7, Role: "ADMIN"})
	require.NoError(t, err)

	other := New("another-secret", time.Hour).WithClock(clock.Now)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidate_Garbage(t *testing.T) {
	svc := New("secret", time.Hour)
	for _, tok := range []string{"", "invalid-jwt-here", "a.b.c"} {
		_, err := svc.Validate(tok)
		assert.ErrorIs(t, err, ErrInvalidSession, tok)
	}
}

func TestValidate_RejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		Role: "ADMIN",
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "1",
			IssuedAt:  jwtlib.NewNumericDate(time.Now()),
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New("secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestUpdate_KeepsIdentityAndWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	svc := newTestService(clock)

	token, issued, err := svc.Issue(Identity{ID: 5, Name: "Old", Role: "BRAND"})
	require.NoError(t, err)

	clock.t = clock.t.Add(48 * time.Hour)
	updated, sess, err := svc.Update(token, "New Name", "/logo.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", sess.Name)
	assert.Equal(t, "/logo.png", sess.Image)

	decoded, err := svc.Validate(updated)
	require.NoError(t, err)
	assert.Equal(t, int64(5), decoded.UserID)
	assert.Equal(t, "BRAND", decoded.Role)
	assert.True(t, issued.ExpiresAt.Equal(decoded.ExpiresAt))
	assert.True(t, issued.IssuedAt.Equal(decoded.IssuedAt))
}

func TestUpdate_InvalidToken(t *testing.T) {
	_, _, err := New("secret", time.Hour).Update("nope", "x", "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
