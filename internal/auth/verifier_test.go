package auth

import (
	"testing"
	"time"

	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	webSecret    = "web-secret"
	mobileSecret = "mobile-secret"
)

func newVerifier() *Verifier {
	return NewVerifier(config.Config{Auth: config.AuthConfig{
		JWTSecret:       webSecret,
		MobileJWTSecret: mobileSecret,
	}}, zap.NewNop())
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func valid(extra jwt.MapClaims) jwt.MapClaims {
	claims := jwt.MapClaims{
		"sub":   "6f1c1b9e-3f7a-4c1b-9a52-4a86a1a2c001",
		"email": "ops@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	return claims
}

func TestVerifyWebRoleFromMetadata(t *testing.T) {
	v := newVerifier()
	token := sign(t, webSecret, valid(jwt.MapClaims{
		"role":          "authenticated",
		"user_metadata": map[string]any{"role": "Super_Admin"},
	}))

	p, err := v.VerifyWeb(token)
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, p.Role)
	assert.Equal(t, "ops@example.com", p.Email)
	assert.Equal(t, ChannelWeb, p.Channel)
}

func TestVerifyWebTopLevelRole(t *testing.T) {
	v := newVerifier()

	p, err := v.VerifyWeb(sign(t, webSecret, valid(jwt.MapClaims{"role": "manager"})))
	require.NoError(t, err)
	assert.Equal(t, RoleManager, p.Role)

	p, err = v.VerifyWeb(sign(t, webSecret, valid(jwt.MapClaims{"role": "authenticated"})))
	require.NoError(t, err)
	assert.Empty(t, p.Role)
}

func TestVerifyRejects(t *testing.T) {
	v := newVerifier()

	_, err := v.VerifyWeb("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = v.VerifyWeb(sign(t, "other", valid(nil)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.VerifyWeb(sign(t, webSecret, valid(jwt.MapClaims{"exp": time.Now().Add(-time.Minute).Unix()})))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp := valid(nil)
	delete(noExp, "exp")
	_, err = v.VerifyWeb(sign(t, webSecret, noExp))
	assert.ErrorIs(t, err, ErrInvalidToken)

	noSub := valid(nil)
	delete(noSub, "sub")
	_, err = v.VerifyWeb(sign(t, webSecret, noSub))
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, valid(nil)).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.VerifyWeb(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMobile(t *testing.T) {
	v := newVerifier()

	p, err := v.VerifyMobile(sign(t, mobileSecret, valid(jwt.MapClaims{"role": "technician"})))
	require.NoError(t, err)
	assert.Equal(t, "6f1c1b9e-3f7a-4c1b-9a52-4a86a1a2c001", p.UserID)
	assert.Equal(t, RoleTechnician, p.Role)
	assert.Equal(t, ChannelMobile, p.Channel)

	_, err = v.VerifyMobile(sign(t, webSecret, valid(nil)))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifierWithoutSecret(t *testing.T) {
	v := NewVerifier(config.Config{}, zap.NewNop())
	assert.Equal(t, "accessToken", v.CookieName())

	_, err := v.VerifyWeb("a.b.c")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer  abc "))
	assert.Empty(t, BearerToken("Basic abc"))
	assert.Empty(t, BearerToken(""))
}
