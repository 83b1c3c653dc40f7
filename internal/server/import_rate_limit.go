package server

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	obslogger "github.com/enervue/enervue/internal/observability/logger"
	obsmetrics "github.com/enervue/enervue/internal/observability/metrics"
)

const (
	rateLimitReasonUserRate            = "user-rate"
	rateLimitReasonPropertyConcurrency = "property-concurrency"
)

// ImportRateLimit throttles CSV imports per user and serializes concurrent
// imports against the same property.
func (s *Server) ImportRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.importLimiter == nil || !s.importLimiter.Enabled() {
			c.Next()
			return
		}

		ownerID, err := ownerIDFromContext(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		ctx := c.Request.Context()
		endpoint := normalizeRateLimitEndpoint(c)

		result, err := s.importLimiter.AllowUser(ctx, ownerID)
		if err != nil {
			obslogger.FromContext(ctx).Warn("import rate limit check failed", zap.Error(err))
			AbortWithError(c, ErrServiceUnavailable)
			return
		}
		if !result.Allowed {
			c.Header("Retry-After", strconv.FormatInt(int64(result.RetryAfter.Seconds())+1, 10))
			denyImportRateLimit(c, endpoint, rateLimitReasonUserRate, s.obsMetrics)
			return
		}

		propertyID := strings.TrimSpace(c.Param("id"))
		if propertyID != "" {
			token, allowed, err := s.importLimiter.TryLockProperty(ctx, propertyID)
			if err != nil {
				obslogger.FromContext(ctx).Warn("import concurrency lock failed", zap.Error(err))
				AbortWithError(c, ErrServiceUnavailable)
				return
			}
			if !allowed {
				denyImportRateLimit(c, endpoint, rateLimitReasonPropertyConcurrency, s.obsMetrics)
				return
			}
			defer func() {
				if err := s.importLimiter.ReleaseProperty(ctx, propertyID, token); err != nil {
					obslogger.FromContext(ctx).Warn("import concurrency unlock failed", zap.Error(err))
				}
			}()
		}

		recordRateLimitAllowed(ctx, endpoint, s.obsMetrics)
		c.Next()
	}
}

func denyImportRateLimit(c *gin.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	ctx := c.Request.Context()
	obslogger.FromContext(ctx).Warn("import rate limit exceeded",
		zap.String("reason", reason),
		zap.String("endpoint", endpoint),
	)
	recordRateLimitDenied(ctx, endpoint, reason, metrics)

	c.Header("X-Rate-Limited-Reason", reason)
	AbortWithError(c, ErrRateLimited)
}

func recordRateLimitAllowed(ctx context.Context, endpoint string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitAllowed(ctx, endpoint)
}

func recordRateLimitDenied(ctx context.Context, endpoint, reason string, metrics *obsmetrics.Metrics) {
	if metrics == nil {
		return
	}
	metrics.RecordRateLimitDenied(ctx, endpoint, reason)
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
