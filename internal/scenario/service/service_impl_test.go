package service

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
	catalogservice "github.com/enervue/enervue/internal/catalog/service"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	devicerepository "github.com/enervue/enervue/internal/device/repository"
	deviceservice "github.com/enervue/enervue/internal/device/service"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	propertyrepository "github.com/enervue/enervue/internal/property/repository"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	readingrepository "github.com/enervue/enervue/internal/reading/repository"
	scenariodomain "github.com/enervue/enervue/internal/scenario/domain"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupScenarioService(t *testing.T, node *snowflake.Node) (scenariodomain.Service, *gorm.DB) {
	t.Helper()

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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	propertyRepo := propertyrepository.Provide()
	deviceSvc := deviceservice.New(deviceservice.Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Repo:         devicerepository.Provide(),
		PropertyRepo: propertyRepo,
	})

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Catalog:      catalogservice.New(catalogservice.Params{Log: zap.NewNop()}),
		DeviceSvc:    deviceSvc,
		ReadingRepo:  readingrepository.Provide(),
		PropertyRepo: propertyRepo,
	})

	return svc, db
}

func seedProperty(t *testing.T, db *gorm.DB, node *snowflake.Node, ownerID snowflake.ID) snowflake.ID {
	t.Helper()
	property := propertydomain.Property{
		ID:           node.Generate(),
		OwnerUserID:  ownerID,
		Name:         "Demo Home",
		PropertyType: "home",
		Address:      "123 Residential Street",
		City:         "Brussels",
		Region:       "brussels",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&property).Error)
	return property.ID
}

func TestSetupFamilyHome(t *testing.T) {
	node := mustNode(t)
	svc, db := setupScenarioService(t, node)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	result, err := svc.Setup(context.Background(), scenariodomain.SetupRequest{
		OwnerUserID:      ownerID.String(),
		PropertyID:       propertyID.String(),
		ScenarioKey:      "family_home",
		GenerateMockData: true,
	})
	require.NoError(t, err)
	require.Equal(t, 8, result.DevicesCreated)
	require.Equal(t, 168, result.MeterReadingsCreated)
	require.NotEmpty(t, result.Message)

	var devices []devicedomain.Device
	require.NoError(t, db.Where("property_id = ?", propertyID).Find(&devices).Error)
	require.Len(t, devices, 8)

	var readings []readingdomain.MeterReading
	require.NoError(t, db.Where("property_id = ?", propertyID).Find(&readings).Error)
	require.Len(t, readings, 168)
	for _, reading := range readings {
		require.Equal(t, readingdomain.SourceScenarioMock, reading.Source)
		require.Equal(t, readingdomain.GranularityHourly, reading.Granularity)
	}
}

func TestSetupWithoutMockData(t *testing.T) {
	node := mustNode(t)
	svc, db := setupScenarioService(t, node)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	result, err := svc.Setup(context.Background(), scenariodomain.SetupRequest{
		OwnerUserID: ownerID.String(),
		PropertyID:  propertyID.String(),
		ScenarioKey: "studio_apartment",
	})
	require.NoError(t, err)
	require.Equal(t, 6, result.DevicesCreated)
	require.Zero(t, result.MeterReadingsCreated)

	var count int64
	require.NoError(t, db.Model(&readingdomain.MeterReading{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSetupUnknownScenario(t *testing.T) {
	node := mustNode(t)
	svc, db := setupScenarioService(t, node)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	_, err := svc.Setup(context.Background(), scenariodomain.SetupRequest{
		OwnerUserID: ownerID.String(),
		PropertyID:  propertyID.String(),
		ScenarioKey: "mansion",
	})
	require.ErrorIs(t, err, scenariodomain.ErrScenarioNotFound)
}

func TestSetupUnknownProperty(t *testing.T) {
	node := mustNode(t)
	svc, _ := setupScenarioService(t, node)

	_, err := svc.Setup(context.Background(), scenariodomain.SetupRequest{
		OwnerUserID: node.Generate().String(),
		PropertyID:  node.Generate().String(),
		ScenarioKey: "family_home",
	})
	require.ErrorIs(t, err, scenariodomain.ErrPropertyNotFound)
}

func TestSetupConcurrentProperties(t *testing.T) {
	node := mustNode(t)
	svc, db := setupScenarioService(t, node)

	ownerID := node.Generate()
	first := seedProperty(t, db, node, ownerID)
	second := seedProperty(t, db, node, ownerID)

	// Overlapping setups must not share mutable state such as a rand source.
	errs := make(chan error, 2)
	for _, propertyID := range []snowflake.ID{first, second} {
		go func(id snowflake.ID) {
			_, err := svc.Setup(context.Background(), scenariodomain.SetupRequest{
				OwnerUserID:      ownerID.String(),
				PropertyID:       id.String(),
				ScenarioKey:      "family_home",
				GenerateMockData: true,
			})
			errs <- err
		}(propertyID)
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, <-errs)
	}

	var count int64
	require.NoError(t, db.Model(&readingdomain.MeterReading{}).Count(&count).Error)
	require.EqualValues(t, 336, count)
}

func TestGenerateMockReadingsAggregateAndShape(t *testing.T) {
	scenario := &catalogdomain.Scenario{
		Key:               catalogdomain.ScenarioFamilyHome,
		TypicalMonthlyKwh: 450,
	}
	end := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(42))

	readings := generateMockReadings(scenario, end, rng)
	require.Len(t, readings, 168)

	var total float64
	distinct := map[float64]struct{}{}
	for _, reading := range readings {
		require.Greater(t, reading.consumptionKwh, 0.0)
		require.False(t, reading.timestamp.After(end))
		total += reading.consumptionKwh
		distinct[reading.consumptionKwh] = struct{}{}
	}

	// Weekly total approximates 450 kWh prorated to 7 of 30 days.
	target := 450.0 * 7 / 30
	require.InDelta(t, target, total, target*0.1)

	// Non-degenerate series: jitter and the day/night curve should produce
	// far more than a handful of distinct values.
	require.Greater(t, len(distinct), 100)

	// Hour-by-hour coverage with no gaps.
	for i := 1; i < len(readings); i++ {
		require.Equal(t, time.Hour, readings[i].timestamp.Sub(readings[i-1].timestamp))
	}
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}
