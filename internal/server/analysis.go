package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) AnalyzeProperty(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	result, err := s.analysisSvc.AnalyzeProperty(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
