package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogservice "github.com/enervue/enervue/internal/catalog/service"
	"github.com/enervue/enervue/internal/config"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	devicerepository "github.com/enervue/enervue/internal/device/repository"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	propertyrepository "github.com/enervue/enervue/internal/property/repository"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	readingrepository "github.com/enervue/enervue/internal/reading/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEstimateService(t *testing.T) (estimatedomain.Service, *gorm.DB) {
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

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		Cfg:          config.Config{Tariff: config.TariffConfig{RatePerKwh: 0.35, Currency: "EUR"}},
		DeviceRepo:   devicerepository.Provide(),
		ReadingRepo:  readingrepository.Provide(),
		PropertyRepo: propertyrepository.Provide(),
		Catalog:      catalogservice.New(catalogservice.Params{Log: zap.NewNop()}),
	})

	return svc, db
}

func seedProperty(t *testing.T, db *gorm.DB, node *snowflake.Node, ownerID snowflake.ID) snowflake.ID {
	t.Helper()
	property := propertydomain.Property{
		ID:           node.Generate(),
		OwnerUserID:  ownerID,
		Name:         "Rue des Tanneurs 12",
		PropertyType: "home",
		Address:      "Rue des Tanneurs 12",
		City:         "Brussels",
		Region:       "brussels",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&property).Error)
	return property.ID
}

func seedDevice(t *testing.T, db *gorm.DB, device devicedomain.Device) {
	t.Helper()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
		device.UpdatedAt = device.CreatedAt
	}
	device.Active = true
	require.NoError(t, db.Create(&device).Error)
}

func seedHourlyReadings(t *testing.T, db *gorm.DB, node *snowflake.Node, propertyID snowflake.ID, count int, kwhEach float64) {
	t.Helper()
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		reading := readingdomain.MeterReading{
			ID:             node.Generate(),
			PropertyID:     propertyID,
			Timestamp:      now.Add(-time.Duration(i+1) * time.Hour),
			ConsumptionKwh: kwhEach,
			Granularity:    readingdomain.GranularityHourly,
			Source:         readingdomain.SourceCSVImport,
			CreatedAt:      now,
		}
		require.NoError(t, db.Create(&reading).Error)
	}
}

func TestEstimateDeviceDailyMath(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	deviceID := node.Generate()
	seedDevice(t, db, devicedomain.Device{
		ID:                deviceID,
		PropertyID:        propertyID,
		Name:              "Aquarium Pump",
		DeviceType:        "other",
		Category:          "other",
		EstimatedWattage:  100,
		DailyRuntimeHours: 5,
		StandbyWattage:    2,
	})

	estimate, err := svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), deviceID.String())
	require.NoError(t, err)

	// 100W for 5h plus 2W standby for the remaining 19h.
	require.InDelta(t, 0.538, estimate.EstimatedDailyKwh, 1e-9)
	require.InDelta(t, 0.538*7, estimate.EstimatedWeeklyKwh, 1e-9)
	require.InDelta(t, 0.538*30, estimate.EstimatedMonthlyKwh, 1e-9)
	require.InDelta(t, 0.538*0.35, estimate.EstimatedDailyCost, 1e-9)
	require.InDelta(t, 0.538*30*0.35, estimate.EstimatedMonthlyCost, 1e-9)
	require.InDelta(t, 0.5, estimate.ConfidenceScore, 1e-9)
}

func TestEstimateDeviceWeeklyRuntimeOverride(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	deviceID := node.Generate()
	seedDevice(t, db, devicedomain.Device{
		ID:                 deviceID,
		PropertyID:         propertyID,
		Name:               "Workshop Saw",
		DeviceType:         "other",
		Category:           "other",
		EstimatedWattage:   200,
		DailyRuntimeHours:  2,
		WeeklyRuntimeHours: 30,
	})

	estimate, err := svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), deviceID.String())
	require.NoError(t, err)

	// Weekly runtime (30h) disagrees with daily×7 (14h) by far more than 25%,
	// so the weekly figure comes from the stored weekly runtime.
	require.InDelta(t, 0.4, estimate.EstimatedDailyKwh, 1e-9)
	require.InDelta(t, 6.0, estimate.EstimatedWeeklyKwh, 1e-9)
	require.InDelta(t, 12.0, estimate.EstimatedMonthlyKwh, 1e-9)
}

func TestEstimateDeviceWeeklyRuntimeConsistentKeepsDaily(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	deviceID := node.Generate()
	seedDevice(t, db, devicedomain.Device{
		ID:                 deviceID,
		PropertyID:         propertyID,
		Name:               "Dehumidifier",
		DeviceType:         "other",
		Category:           "other",
		EstimatedWattage:   500,
		DailyRuntimeHours:  2,
		WeeklyRuntimeHours: 15,
	})

	estimate, err := svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), deviceID.String())
	require.NoError(t, err)

	// 15h weekly vs 14h from daily×7 is within tolerance, so daily wins.
	require.InDelta(t, 7.0, estimate.EstimatedWeeklyKwh, 1e-9)
}

func TestEstimateDeviceConfidence(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	// Matches the LED TV catalog defaults exactly.
	templatedID := node.Generate()
	seedDevice(t, db, devicedomain.Device{
		ID:                templatedID,
		PropertyID:        propertyID,
		Name:              "Living Room TV",
		DeviceType:        "tv",
		Category:          "electronics",
		EstimatedWattage:  120,
		DailyRuntimeHours: 6,
		StandbyWattage:    15,
	})

	estimate, err := svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), templatedID.String())
	require.NoError(t, err)
	require.InDelta(t, 0.35, estimate.ConfidenceScore, 1e-9)

	// A day of hourly readings raises confidence.
	seedHourlyReadings(t, db, node, propertyID, 24, 0.4)
	estimate, err = svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), templatedID.String())
	require.NoError(t, err)
	require.InDelta(t, 0.55, estimate.ConfidenceScore, 1e-9)

	// A full week of hourly readings raises it further.
	seedHourlyReadings(t, db, node, propertyID, 144, 0.4)
	estimate, err = svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), templatedID.String())
	require.NoError(t, err)
	require.InDelta(t, 0.65, estimate.ConfidenceScore, 1e-9)
}

func TestEstimatePropertyTotalsAndMetered(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	seedDevice(t, db, devicedomain.Device{
		ID:                node.Generate(),
		PropertyID:        propertyID,
		Name:              "Fridge",
		DeviceType:        "refrigerator",
		Category:          "major_appliances",
		EstimatedWattage:  150,
		DailyRuntimeHours: 24,
	})
	seedDevice(t, db, devicedomain.Device{
		ID:                node.Generate(),
		PropertyID:        propertyID,
		Name:              "Desk Lamp",
		DeviceType:        "led_lights",
		Category:          "lighting",
		EstimatedWattage:  10,
		DailyRuntimeHours: 4,
	})

	estimate, err := svc.EstimateProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, estimate.Devices, 2)

	// Fridge 3.6 kWh/day, lamp 0.04 kWh/day.
	require.InDelta(t, 3.64, estimate.TotalDailyKwh, 1e-9)
	require.InDelta(t, 3.64*30, estimate.TotalMonthlyKwh, 1e-9)
	require.InDelta(t, 3.64*30*0.35, estimate.TotalMonthlyCost, 1e-9)
	require.Nil(t, estimate.MeteredMonthlyKwh)
	require.Zero(t, estimate.MeterReadingsLast30d)
	require.Equal(t, "EUR", estimate.Currency)

	seedHourlyReadings(t, db, node, propertyID, 3, 1.5)
	estimate, err = svc.EstimateProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.NotNil(t, estimate.MeteredMonthlyKwh)
	require.InDelta(t, 4.5, *estimate.MeteredMonthlyKwh, 1e-9)
	require.EqualValues(t, 3, estimate.MeterReadingsLast30d)
}

func TestEstimateDeviceUnknownProperty(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)
	otherOwner := node.Generate()

	_, err := svc.EstimateProperty(context.Background(), otherOwner.String(), propertyID.String())
	require.ErrorIs(t, err, estimatedomain.ErrPropertyNotFound)
}

func TestEstimateDeviceInactiveDevice(t *testing.T) {
	node := mustNode(t)
	svc, db := setupEstimateService(t)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	deviceID := node.Generate()
	device := devicedomain.Device{
		ID:                deviceID,
		PropertyID:        propertyID,
		Name:              "Old Freezer",
		DeviceType:        "other",
		Category:          "other",
		EstimatedWattage:  200,
		DailyRuntimeHours: 24,
		CreatedAt:         time.Now().UTC(),
		UpdatedAt:         time.Now().UTC(),
	}
	require.NoError(t, db.Create(&device).Error)
	require.NoError(t, db.Model(&devicedomain.Device{}).Where("id = ?", deviceID).Update("active", false).Error)

	_, err := svc.EstimateDevice(context.Background(), ownerID.String(), propertyID.String(), deviceID.String())
	require.ErrorIs(t, err, estimatedomain.ErrNotFound)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}
