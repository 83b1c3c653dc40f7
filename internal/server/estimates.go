package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) EstimateProperty(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	estimate, err := s.estimateSvc.EstimateProperty(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}

func (s *Server) EstimateDevice(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	estimate, err := s.estimateSvc.EstimateDevice(c.Request.Context(), ownerID, c.Param("id"), c.Param("deviceId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
