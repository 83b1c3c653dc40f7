package server

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	"github.com/enervue/enervue/internal/usercontext"
)

const (
	contextAuthTypeKey     = "auth_type"
	contextAPIKeyIDKey     = "api_key_id"
	contextAPIKeyScopesKey = "api_key_scopes"

	authTypeAPIKey = "api_key"
)

// APIKeyRequired authenticates requests using a bearer API key. User
// identity is derived solely from the api_keys table.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		hash := apikeydomain.HashAPIKey(parts[1])

		key, err := s.apiKeyRepo.FindActiveByHash(c.Request.Context(), s.db, hash)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if key == nil || subtle.ConstantTimeCompare([]byte(key.KeyHash), []byte(hash)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.apiKeyRepo.TouchLastUsed(c.Request.Context(), s.db, key.ID); err != nil {
			AbortWithError(c, err)
			return
		}

		scopes := make([]string, 0, len(key.Scopes))
		scopes = append(scopes, key.Scopes...)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, contextAuthTypeKey, authTypeAPIKey)
		ctx = context.WithValue(ctx, contextAPIKeyIDKey, int64(key.ID))
		ctx = usercontext.WithUserID(ctx, int64(key.UserID))

		c.Request = c.Request.WithContext(ctx)
		c.Set(contextAPIKeyScopesKey, scopes)
		c.Next()
	}
}

// RequireScope gates a route on an API key scope. Keys carrying the full
// scope pass every gate.
func (s *Server) RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopes, _ := c.Get(contextAPIKeyScopesKey)
		granted, ok := scopes.([]string)
		if !ok {
			AbortWithError(c, ErrForbidden)
			return
		}
		for _, candidate := range granted {
			if candidate == scope || candidate == apikeydomain.ScopeFull {
				c.Next()
				return
			}
		}
		AbortWithError(c, ErrForbidden)
	}
}

func ownerIDFromContext(c *gin.Context) (string, error) {
	userID, ok := usercontext.UserIDFromContext(c.Request.Context())
	if !ok || userID == 0 {
		return "", ErrUnauthorized
	}
	return userID.String(), nil
}
