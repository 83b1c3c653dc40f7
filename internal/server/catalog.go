package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
)

func (s *Server) ListDeviceTemplates(c *gin.Context) {
	ctx := c.Request.Context()

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		templates := s.catalogSvc.ListDeviceTemplatesByCategory(ctx, catalogdomain.Category(category))
		c.JSON(http.StatusOK, gin.H{"device_templates": templates})
		return
	}

	templates := s.catalogSvc.ListDeviceTemplates(ctx)
	c.JSON(http.StatusOK, gin.H{"device_templates": templates})
}

func (s *Server) GetDeviceTemplate(c *gin.Context) {
	deviceType := strings.TrimSpace(c.Param("type"))

	template, err := s.catalogSvc.GetDeviceTemplate(c.Request.Context(), catalogdomain.DeviceType(deviceType))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, template)
}

func (s *Server) ListUsageScenarios(c *gin.Context) {
	scenarios := s.catalogSvc.ListScenarios(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"usage_scenarios": scenarios})
}

func (s *Server) GetUsageScenario(c *gin.Context) {
	key := strings.TrimSpace(c.Param("key"))

	scenario, err := s.catalogSvc.GetScenario(c.Request.Context(), catalogdomain.ScenarioKey(key))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, scenario)
}
