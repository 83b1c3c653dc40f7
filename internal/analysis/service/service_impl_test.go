package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
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

type estimatorStub struct {
	property *estimatedomain.PropertyEstimate
	err      error
}

func (e *estimatorStub) EstimateDevice(ctx context.Context, ownerID, propertyID, deviceID string) (*estimatedomain.DeviceEstimate, error) {
	return nil, e.err
}

func (e *estimatorStub) EstimateProperty(ctx context.Context, ownerID, propertyID string) (*estimatedomain.PropertyEstimate, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.property, nil
}

func setupAnalysisService(t *testing.T, estimator estimatedomain.Service) (analysisdomain.Service, *gorm.DB) {
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
		&readingdomain.MeterReading{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := New(Params{
		DB:           db,
		Log:          zap.NewNop(),
		ReadingRepo:  readingrepository.Provide(),
		PropertyRepo: propertyrepository.Provide(),
		Estimator:    estimator,
	})

	return svc, db
}

func seedProperty(t *testing.T, db *gorm.DB, node *snowflake.Node, ownerID snowflake.ID) snowflake.ID {
	t.Helper()
	property := propertydomain.Property{
		ID:           node.Generate(),
		OwnerUserID:  ownerID,
		Name:         "Kerkstraat 4",
		PropertyType: "home",
		Address:      "Kerkstraat 4",
		City:         "Ghent",
		Region:       "flanders",
		Active:       true,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(&property).Error)
	return property.ID
}

func seedReading(t *testing.T, db *gorm.DB, node *snowflake.Node, propertyID snowflake.ID, age time.Duration, kwh float64) {
	t.Helper()
	now := time.Now().UTC()
	reading := readingdomain.MeterReading{
		ID:             node.Generate(),
		PropertyID:     propertyID,
		Timestamp:      now.Add(-age),
		ConsumptionKwh: kwh,
		Granularity:    readingdomain.GranularityHourly,
		Source:         readingdomain.SourceCSVImport,
		CreatedAt:      now,
	}
	require.NoError(t, db.Create(&reading).Error)
}

func noDiscrepancyEstimator() *estimatorStub {
	return &estimatorStub{property: &estimatedomain.PropertyEstimate{}}
}

func TestAnalyzePropertyHighUsageAlert(t *testing.T) {
	node := mustNode(t)
	svc, db := setupAnalysisService(t, noDiscrepancyEstimator())

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	// Nine ordinary readings and one spike. Mean ~= 0.58, spike at 2.0 kWh
	// is well past 150% and past 200%.
	for i := 0; i < 9; i++ {
		seedReading(t, db, node, propertyID, time.Duration(i+2)*time.Hour, 0.42)
	}
	seedReading(t, db, node, propertyID, time.Hour, 2.0)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, result.Alerts, 1)

	alert := result.Alerts[0]
	require.Equal(t, analysisdomain.AlertTypeHighUsage, alert.Type)
	require.Equal(t, analysisdomain.SeverityCritical, alert.Severity)
	require.InDelta(t, 2.0, alert.ObservedKwh, 1e-9)
	require.Greater(t, alert.ObservedKwh, alert.BaselineKwh*1.5)
	require.NotEmpty(t, alert.Title)
	require.NotEmpty(t, alert.Message)
}

func TestAnalyzePropertyWarningSeverity(t *testing.T) {
	node := mustNode(t)
	svc, db := setupAnalysisService(t, noDiscrepancyEstimator())

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	// Mean of {1,1,1,1,1,1.7} ~= 1.117; 1.7 is ~152% of mean, short of 200%.
	for i := 0; i < 5; i++ {
		seedReading(t, db, node, propertyID, time.Duration(i+2)*time.Hour, 1.0)
	}
	seedReading(t, db, node, propertyID, time.Hour, 1.7)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, result.Alerts, 1)
	require.Equal(t, analysisdomain.SeverityWarning, result.Alerts[0].Severity)
}

func TestAnalyzePropertyNeedsBaseline(t *testing.T) {
	node := mustNode(t)
	svc, db := setupAnalysisService(t, noDiscrepancyEstimator())

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	// Four readings, one of them a spike: below the minimum sample size, so
	// no alert is raised.
	seedReading(t, db, node, propertyID, 4*time.Hour, 0.4)
	seedReading(t, db, node, propertyID, 3*time.Hour, 0.4)
	seedReading(t, db, node, propertyID, 2*time.Hour, 0.4)
	seedReading(t, db, node, propertyID, time.Hour, 5.0)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Empty(t, result.Alerts)
}

func TestAnalyzePropertyDiscrepancyOverEstimated(t *testing.T) {
	node := mustNode(t)
	metered := 100.0
	estimator := &estimatorStub{property: &estimatedomain.PropertyEstimate{
		TotalMonthlyKwh:   150,
		MeteredMonthlyKwh: &metered,
	}}
	svc, db := setupAnalysisService(t, estimator)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, result.Discrepancies, 1)

	discrepancy := result.Discrepancies[0]
	require.Equal(t, analysisdomain.DirectionOverEstimated, discrepancy.Direction)
	require.InDelta(t, 50.0, discrepancy.DeviationPercent, 1e-9)
	require.InDelta(t, 150.0, discrepancy.EstimatedMonthlyKwh, 1e-9)
	require.InDelta(t, 100.0, discrepancy.MeteredMonthlyKwh, 1e-9)
	require.NotEmpty(t, discrepancy.Message)
}

func TestAnalyzePropertyDiscrepancyUnderEstimated(t *testing.T) {
	node := mustNode(t)
	metered := 200.0
	estimator := &estimatorStub{property: &estimatedomain.PropertyEstimate{
		TotalMonthlyKwh:   120,
		MeteredMonthlyKwh: &metered,
	}}
	svc, db := setupAnalysisService(t, estimator)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Len(t, result.Discrepancies, 1)
	require.Equal(t, analysisdomain.DirectionUnderEstimated, result.Discrepancies[0].Direction)
}

func TestAnalyzePropertyWithinToleranceNoDiscrepancy(t *testing.T) {
	node := mustNode(t)
	metered := 100.0
	estimator := &estimatorStub{property: &estimatedomain.PropertyEstimate{
		TotalMonthlyKwh:   115,
		MeteredMonthlyKwh: &metered,
	}}
	svc, db := setupAnalysisService(t, estimator)

	ownerID := node.Generate()
	propertyID := seedProperty(t, db, node, ownerID)

	result, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), propertyID.String())
	require.NoError(t, err)
	require.Empty(t, result.Discrepancies)
}

func TestAnalyzePropertyUnknownProperty(t *testing.T) {
	node := mustNode(t)
	svc, db := setupAnalysisService(t, noDiscrepancyEstimator())

	ownerID := node.Generate()
	seedProperty(t, db, node, ownerID)

	_, err := svc.AnalyzeProperty(context.Background(), ownerID.String(), node.Generate().String())
	require.ErrorIs(t, err, analysisdomain.ErrPropertyNotFound)
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}
	return node
}
