package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	propertydomain "github.com/enervue/enervue/internal/property/domain"
)

func (s *Server) CreateProperty(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req propertydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OwnerUserID = ownerID

	resp, err := s.propertySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListProperties(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	properties, err := s.propertySvc.List(c.Request.Context(), ownerID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"properties": properties})
}

func (s *Server) GetPropertyByID(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.propertySvc.GetByID(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetPropertyDetails(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	details, err := s.propertySvc.GetDetails(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (s *Server) UpdateProperty(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req propertydomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OwnerUserID = ownerID
	req.ID = c.Param("id")

	resp, err := s.propertySvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteProperty(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.propertySvc.Delete(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
