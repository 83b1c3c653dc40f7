package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	scenariodomain "github.com/enervue/enervue/internal/scenario/domain"
)

func (s *Server) SetupScenario(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req scenariodomain.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OwnerUserID = ownerID
	req.PropertyID = c.Param("id")

	result, err := s.scenarioSvc.Setup(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
