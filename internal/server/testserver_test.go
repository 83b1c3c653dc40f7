package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	analysisservice "github.com/enervue/enervue/internal/analysis/service"
	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
	apikeyrepository "github.com/enervue/enervue/internal/apikey/repository"
	apikeyservice "github.com/enervue/enervue/internal/apikey/service"
	catalogservice "github.com/enervue/enervue/internal/catalog/service"
	"github.com/enervue/enervue/internal/config"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	devicerepository "github.com/enervue/enervue/internal/device/repository"
	deviceservice "github.com/enervue/enervue/internal/device/service"
	estimateservice "github.com/enervue/enervue/internal/estimate/service"
	"github.com/enervue/enervue/internal/observability"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	propertyrepository "github.com/enervue/enervue/internal/property/repository"
	propertyservice "github.com/enervue/enervue/internal/property/service"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	readingrepository "github.com/enervue/enervue/internal/reading/repository"
	readingservice "github.com/enervue/enervue/internal/reading/service"
	scenarioservice "github.com/enervue/enervue/internal/scenario/service"
)

const testAPIKey = "ev_live_key_TEST_secret"

type testServer struct {
	server *Server
	db     *gorm.DB
	node   *snowflake.Node
	userID snowflake.ID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_loc=auto", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(
		&propertydomain.Property{},
		&devicedomain.Device{},
		&readingdomain.MeterReading{},
		&readingdomain.ImportJob{},
		&apikeydomain.APIKey{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	cfg := config.Config{
		Environment: "test",
		Tariff:      config.TariffConfig{RatePerKwh: 0.35, Currency: "EUR"},
		Import:      config.ImportConfig{MaxRows: 100000},
	}
	log := zap.NewNop()
	propertyRepo := propertyrepository.Provide()
	deviceRepo := devicerepository.Provide()
	readingRepo := readingrepository.Provide()
	apiKeyRepo := apikeyrepository.Provide()
	catalog := catalogservice.New(catalogservice.Params{Log: log})

	deviceSvc := deviceservice.New(deviceservice.Params{
		DB:           db,
		Log:          log,
		GenID:        node,
		Repo:         deviceRepo,
		PropertyRepo: propertyRepo,
	})
	readingSvc := readingservice.New(readingservice.Params{
		DB:           db,
		Log:          log,
		GenID:        node,
		Cfg:          cfg,
		Repo:         readingRepo,
		PropertyRepo: propertyRepo,
	})
	estimator := estimateservice.New(estimateservice.Params{
		DB:           db,
		Log:          log,
		Cfg:          cfg,
		DeviceRepo:   deviceRepo,
		ReadingRepo:  readingRepo,
		PropertyRepo: propertyRepo,
		Catalog:      catalog,
	})
	analyzer := analysisservice.New(analysisservice.Params{
		DB:           db,
		Log:          log,
		ReadingRepo:  readingRepo,
		PropertyRepo: propertyRepo,
		Estimator:    estimator,
	})
	propertySvc := propertyservice.New(propertyservice.Params{
		DB:         db,
		Log:        log,
		GenID:      node,
		Repo:       propertyRepo,
		DeviceSvc:  deviceSvc,
		ReadingSvc: readingSvc,
		Estimator:  estimator,
		Analyzer:   analyzer,
	})
	scenarioSvc := scenarioservice.New(scenarioservice.Params{
		DB:           db,
		Log:          log,
		GenID:        node,
		Catalog:      catalog,
		DeviceSvc:    deviceSvc,
		ReadingRepo:  readingRepo,
		PropertyRepo: propertyRepo,
	})
	apiKeySvc := apikeyservice.New(apikeyservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  apiKeyRepo,
	})

	engine := NewEngine(observability.Config{})
	srv := NewServer(ServerParams{
		Gin:         engine,
		Cfg:         cfg,
		DB:          db,
		Log:         log,
		CatalogSvc:  catalog,
		PropertySvc: propertySvc,
		DeviceSvc:   deviceSvc,
		ReadingSvc:  readingSvc,
		EstimateSvc: estimator,
		AnalysisSvc: analyzer,
		ScenarioSvc: scenarioSvc,
		APIKeySvc:   apiKeySvc,
		APIKeyRepo:  apiKeyRepo,
	})
	srv.RegisterAPIRoutes()

	ts := &testServer{server: srv, db: db, node: node}
	ts.userID = ts.seedAPIKey(t, testAPIKey, []string{apikeydomain.ScopeFull})

	return ts
}

func (ts *testServer) seedAPIKey(t *testing.T, plainKey string, scopes []string) snowflake.ID {
	t.Helper()

	userID := ts.node.Generate()
	now := time.Now().UTC()
	key := apikeydomain.APIKey{
		ID:        ts.node.Generate(),
		UserID:    userID,
		KeyID:     "key_" + userID.String(),
		Name:      "test key",
		Scopes:    pq.StringArray(scopes),
		KeyHash:   apikeydomain.HashAPIKey(plainKey),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ts.db.Create(&key).Error; err != nil {
		t.Fatalf("seed api key: %v", err)
	}
	return userID
}

func (ts *testServer) request(t *testing.T, method, path, apiKey string, body *strings.Reader) *httptest.ResponseRecorder {
	t.Helper()

	if body == nil {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	if method == http.MethodPost || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	ts.server.Engine().ServeHTTP(rec, req)
	return rec
}
