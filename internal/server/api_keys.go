package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
)

func (s *Server) ListAPIKeys(c *gin.Context) {
	keys, err := s.apiKeySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"api_keys": keys})
}

func (s *Server) CreateAPIKey(c *gin.Context) {
	var req apikeydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	secret, err := s.apiKeySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, secret)
}

func (s *Server) RotateAPIKey(c *gin.Context) {
	secret, err := s.apiKeySvc.Rotate(c.Request.Context(), c.Param("key_id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, secret)
}

func (s *Server) RevokeAPIKey(c *gin.Context) {
	if err := s.apiKeySvc.Revoke(c.Request.Context(), c.Param("key_id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "revoked"})
}
