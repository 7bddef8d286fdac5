package auth

import (
	"errors"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("auth",
	fx.Provide(NewVerifier),
)

var (
	ErrMissingToken  = errors.New("unauthorized")
	ErrInvalidToken  = errors.New("invalid_token")
	ErrNotConfigured = errors.New("auth_not_configured")
)

type claims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
}

// Verifier checks HS256 access tokens issued by the identity provider.
type Verifier struct {
	webSecret    []byte
	mobileSecret []byte
	cookieName   string
	parser       *jwt.Parser
}

func NewVerifier(cfg config.Config, log *zap.Logger) *Verifier {
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		log.Named("auth").Warn("jwt secret not configured, every request will be rejected")
	}
	cookie := strings.TrimSpace(cfg.Auth.CookieName)
	if cookie == "" {
		cookie = "accessToken"
	}
	return &Verifier{
		webSecret:    []byte(cfg.Auth.JWTSecret),
		mobileSecret: []byte(cfg.Auth.MobileJWTSecret),
		cookieName:   cookie,
		parser:       jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired()),
	}
}

// CookieName is the cookie carrying the web access token.
func (v *Verifier) CookieName() string {
	return v.cookieName
}

// VerifyWeb validates a dashboard token. The role is read from
// user_metadata.role, falling back to a top-level role claim.
func (v *Verifier) VerifyWeb(token string) (Principal, error) {
	c, err := v.parse(token, v.webSecret)
	if err != nil {
		return Principal{}, err
	}
	role, _ := ParseRole(metadataRole(c.UserMetadata))
	if role == "" {
		role, _ = ParseRole(c.Role)
	}
	return Principal{
		UserID:  c.Subject,
		Email:   c.Email,
		Role:    role,
		Channel: ChannelWeb,
	}, nil
}

// VerifyMobile validates a technician app token; sub is the auth user id.
func (v *Verifier) VerifyMobile(token string) (Principal, error) {
	c, err := v.parse(token, v.mobileSecret)
	if err != nil {
		return Principal{}, err
	}
	role, _ := ParseRole(metadataRole(c.UserMetadata))
	if role == "" {
		role, _ = ParseRole(c.Role)
	}
	return Principal{
		UserID:  c.Subject,
		Email:   c.Email,
		Role:    role,
		Channel: ChannelMobile,
	}, nil
}

func (v *Verifier) parse(token string, secret []byte) (*claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	if len(secret) == 0 {
		return nil, ErrNotConfigured
	}
	var c claims
	_, err := v.parser.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(c.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return &c, nil
}

func metadataRole(metadata map[string]any) string {
	if metadata == nil {
		return ""
	}
	role, _ := metadata["role"].(string)
	return role
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
