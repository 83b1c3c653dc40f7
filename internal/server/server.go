package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/enervue/enervue/internal/analysis"
	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
	"github.com/enervue/enervue/internal/apikey"
	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	"github.com/enervue/enervue/internal/catalog"
	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
	"github.com/enervue/enervue/internal/config"
	"github.com/enervue/enervue/internal/device"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	"github.com/enervue/enervue/internal/estimate"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	"github.com/enervue/enervue/internal/observability"
	obslogger "github.com/enervue/enervue/internal/observability/logger"
	obsmetrics "github.com/enervue/enervue/internal/observability/metrics"
	obstracing "github.com/enervue/enervue/internal/observability/tracing"
	"github.com/enervue/enervue/internal/property"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	"github.com/enervue/enervue/internal/ratelimit"
	"github.com/enervue/enervue/internal/reading"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	"github.com/enervue/enervue/internal/scenario"
	scenariodomain "github.com/enervue/enervue/internal/scenario/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	apikey.Module,
	catalog.Module,
	property.Module,
	device.Module,
	reading.Module,
	estimate.Module,
	analysis.Module,
	scenario.Module,
	ratelimit.Module,
	fx.Provide(NewServer),
	fx.Invoke(registerRoutes),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	// Unknown JSON fields in request bodies are rejected, not ignored.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	db            *gorm.DB
	log           *zap.Logger
	catalogSvc    catalogdomain.Service
	propertySvc   propertydomain.Service
	deviceSvc     devicedomain.Service
	readingSvc    readingdomain.Service
	estimateSvc   estimatedomain.Service
	analysisSvc   analysisdomain.Service
	scenarioSvc   scenariodomain.Service
	apiKeySvc     apikeydomain.Service
	apiKeyRepo    apikeydomain.Repository
	importLimiter *ratelimit.ImportLimiter
	obsMetrics    *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	DB            *gorm.DB
	Log           *zap.Logger
	CatalogSvc    catalogdomain.Service
	PropertySvc   propertydomain.Service
	DeviceSvc     devicedomain.Service
	ReadingSvc    readingdomain.Service
	EstimateSvc   estimatedomain.Service
	AnalysisSvc   analysisdomain.Service
	ScenarioSvc   scenariodomain.Service
	APIKeySvc     apikeydomain.Service
	APIKeyRepo    apikeydomain.Repository
	ImportLimiter *ratelimit.ImportLimiter `optional:"true"`
	ObsMetrics    *obsmetrics.Metrics      `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		db:            p.DB,
		log:           p.Log.Named("http.server"),
		catalogSvc:    p.CatalogSvc,
		propertySvc:   p.PropertySvc,
		deviceSvc:     p.DeviceSvc,
		readingSvc:    p.ReadingSvc,
		estimateSvc:   p.EstimateSvc,
		analysisSvc:   p.AnalysisSvc,
		scenarioSvc:   p.ScenarioSvc,
		apiKeySvc:     p.APIKeySvc,
		apiKeyRepo:    p.APIKeyRepo,
		importLimiter: p.ImportLimiter,
		obsMetrics:    p.ObsMetrics,
	}
}

func registerRoutes(s *Server) {
	s.RegisterAPIRoutes()
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Catalog (static reference data, no auth) --------
	api.GET("/catalog/device-templates", s.ListDeviceTemplates)
	api.GET("/catalog/device-templates/:type", s.GetDeviceTemplate)
	api.GET("/catalog/usage-scenarios", s.ListUsageScenarios)
	api.GET("/catalog/usage-scenarios/:key", s.GetUsageScenario)

	// -------- Properties --------
	api.GET("/properties", s.APIKeyRequired(), s.ListProperties)
	api.POST("/properties", s.APIKeyRequired(), s.CreateProperty)
	api.GET("/properties/:id", s.APIKeyRequired(), s.GetPropertyByID)
	api.GET("/properties/:id/details", s.APIKeyRequired(), s.GetPropertyDetails)
	api.PATCH("/properties/:id", s.APIKeyRequired(), s.UpdateProperty)
	api.DELETE("/properties/:id", s.APIKeyRequired(), s.DeleteProperty)

	// -------- Devices --------
	api.GET("/properties/:id/devices", s.APIKeyRequired(), s.ListDevices)
	api.POST("/properties/:id/devices", s.APIKeyRequired(), s.CreateDevice)
	api.PATCH("/properties/:id/devices/:deviceId", s.APIKeyRequired(), s.UpdateDevice)
	api.DELETE("/properties/:id/devices/:deviceId", s.APIKeyRequired(), s.DeleteDevice)

	// -------- Meter readings --------
	api.POST("/properties/:id/readings/import",
		s.APIKeyRequired(),
		s.RequireScope(apikeydomain.ScopeReadingsWrite),
		s.ImportRateLimit(),
		s.ImportReadings,
	)
	api.GET("/properties/:id/readings", s.APIKeyRequired(), s.ListReadings)
	api.GET("/properties/:id/imports", s.APIKeyRequired(), s.ListImports)

	// -------- Estimates & analysis --------
	api.GET("/properties/:id/estimate", s.APIKeyRequired(), s.EstimateProperty)
	api.GET("/properties/:id/devices/:deviceId/estimate", s.APIKeyRequired(), s.EstimateDevice)
	api.GET("/properties/:id/analysis", s.APIKeyRequired(), s.AnalyzeProperty)

	// -------- Scenario setup --------
	api.POST("/properties/:id/scenario", s.APIKeyRequired(), s.SetupScenario)

	// -------- API keys --------
	api.GET("/api-keys", s.APIKeyRequired(), s.ListAPIKeys)
	api.POST("/api-keys", s.APIKeyRequired(), s.CreateAPIKey)
	api.POST("/api-keys/:key_id/rotate", s.APIKeyRequired(), s.RotateAPIKey)
	api.POST("/api-keys/:key_id/revoke", s.APIKeyRequired(), s.RevokeAPIKey)
}
