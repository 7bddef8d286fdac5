package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fiberafrica/missioncontrol/internal/auth"
	obscontext "github.com/fiberafrica/missioncontrol/internal/observability/context"
	"github.com/fiberafrica/missioncontrol/internal/observability/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	actorTypeUser   = "user"
	actorTypeMobile = "mobile"
)

// WebAuthRequired verifies the dashboard token from the access token cookie
// or an Authorization bearer header.
func (s *Server) WebAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(s.verifier.CookieName())
		if strings.TrimSpace(token) == "" {
			token = auth.BearerToken(c.GetHeader("Authorization"))
		}

		principal, err := s.verifier.VerifyWeb(token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		s.setPrincipal(c, principal, actorTypeUser)
		c.Next()
	}
}

// MobileAuthRequired verifies the technician app bearer token.
func (s *Server) MobileAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.verifier.VerifyMobile(auth.BearerToken(c.GetHeader("Authorization")))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		s.setPrincipal(c, principal, actorTypeMobile)
		c.Next()
	}
}

func (s *Server) setPrincipal(c *gin.Context, principal auth.Principal, actorType string) {
	ctx := auth.WithPrincipal(c.Request.Context(), principal)
	ctx = obscontext.WithActor(ctx, actorType, principal.UserID)
	c.Request = c.Request.WithContext(ctx)
	c.Set(contextUserIDKey, principal.UserID)
}

const contextUserIDKey = "user_id"

// authorize checks the caller's role against the RBAC policy.
func (s *Server) authorize(object string, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := auth.PrincipalFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if principal.Role == "" {
			AbortWithError(c, ErrForbidden)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), principal.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

// MobileRateLimit throttles each app user with the redis token bucket. A
// missing limiter lets everything through.
func (s *Server) MobileRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.mobileLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		endpoint := normalizeRateLimitEndpoint(c)
		principal, ok := auth.PrincipalFromContext(ctx)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		result, err := s.mobileLimiter.Allow(ctx, principal.UserID)
		if err != nil {
			logger.FromContext(ctx).Warn("mobile rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			logger.FromContext(ctx).Warn("mobile rate limit exceeded", zap.String("endpoint", endpoint))
			s.obsMetrics.RecordRateLimitDenied(ctx, endpoint, "user-rate")

			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrRateLimited)
			return
		}

		s.obsMetrics.RecordRateLimitAllowed(ctx, endpoint)
		c.Next()
	}
}

func normalizeRateLimitEndpoint(c *gin.Context) string {
	if c == nil {
		return "unknown"
	}
	endpoint := strings.TrimSpace(c.FullPath())
	if endpoint == "" {
		endpoint = strings.TrimSpace(c.Request.URL.Path)
	}
	if endpoint == "" {
		endpoint = "unknown"
	}
	return endpoint
}

func principalFrom(c *gin.Context) (auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c.Request.Context())
	if !ok {
		return auth.Principal{}, ErrUnauthorized
	}
	return principal, nil
}

// bindJSON decodes the body, keeping the field-level errors raised by the
// custom week and notes decoders.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if isValidationError(err) {
			return err
		}
		var vErr *ValidationErrors
		if errors.As(err, &vErr) {
			return vErr
		}
		return invalidRequestError()
	}
	return nil
}
