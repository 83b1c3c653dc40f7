package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	devicedomain "github.com/enervue/enervue/internal/device/domain"
)

func (s *Server) CreateDevice(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req devicedomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OwnerUserID = ownerID
	req.PropertyID = c.Param("id")

	resp, err := s.deviceSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (s *Server) ListDevices(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	devices, err := s.deviceSvc.ListByProperty(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

func (s *Server) UpdateDevice(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req devicedomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.OwnerUserID = ownerID
	req.PropertyID = c.Param("id")
	req.ID = c.Param("deviceId")

	resp, err := s.deviceSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteDevice(c *gin.Context) {
	ownerID, err := ownerIDFromContext(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.deviceSvc.Delete(c.Request.Context(), ownerID, c.Param("id"), c.Param("deviceId")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
