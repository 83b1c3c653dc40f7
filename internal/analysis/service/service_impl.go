package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	"github.com/enervue/enervue/internal/observability/metrics"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// A reading trips a high-usage alert when it exceeds the trailing mean
	// by these factors.
	warningFactor  = 1.5
	criticalFactor = 2.0

	// Minimum sample size before the trailing mean is trusted at all.
	minReadingsForBaseline = 5

	// Estimate vs metered tolerance, in percent.
	discrepancyTolerancePercent = 20.0

	analysisLookbackDays = 30
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	ReadingRepo  readingdomain.Repository
	PropertyRepo propertydomain.Repository
	Estimator    estimatedomain.Service
	Metrics      *metrics.Metrics
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	readingRepo  readingdomain.Repository
	propertyRepo propertydomain.Repository
	estimator    estimatedomain.Service
	metrics      *metrics.Metrics
}

func New(p Params) analysisdomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("analysis.service"),
		readingRepo:  p.ReadingRepo,
		propertyRepo: p.PropertyRepo,
		estimator:    p.Estimator,
		metrics:      p.Metrics,
	}
}

func (s *Service) AnalyzeProperty(ctx context.Context, ownerID, propertyID string) (*analysisdomain.Result, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return nil, err
	}

	result := &analysisdomain.Result{
		PropertyID:    propID.String(),
		Alerts:        []analysisdomain.Alert{},
		Discrepancies: []analysisdomain.Discrepancy{},
	}

	since := time.Now().UTC().AddDate(0, 0, -analysisLookbackDays)
	readings, err := s.readingRepo.ListByProperty(ctx, s.db, propID, readingdomain.ListReadingFilter{
		From: &since,
	})
	if err != nil {
		return nil, err
	}

	result.Alerts = s.highUsageAlerts(ctx, propID, readings)

	discrepancy, err := s.estimateDiscrepancy(ctx, ownerID, propertyID, propID)
	if err != nil {
		return nil, err
	}
	if discrepancy != nil {
		result.Discrepancies = append(result.Discrepancies, *discrepancy)
	}

	return result, nil
}

// highUsageAlerts compares each reading against the trailing mean of its
// granularity. With fewer than five readings per granularity there is no
// baseline worth flagging against.
func (s *Service) highUsageAlerts(ctx context.Context, propertyID snowflake.ID, readings []*readingdomain.MeterReading) []analysisdomain.Alert {
	byGranularity := make(map[string][]*readingdomain.MeterReading)
	for _, reading := range readings {
		byGranularity[reading.Granularity] = append(byGranularity[reading.Granularity], reading)
	}

	alerts := []analysisdomain.Alert{}
	for granularity, group := range byGranularity {
		if len(group) < minReadingsForBaseline {
			continue
		}

		var total float64
		for _, reading := range group {
			total += reading.ConsumptionKwh
		}
		mean := total / float64(len(group))
		if mean <= 0 {
			continue
		}

		for _, reading := range group {
			if reading.ConsumptionKwh < mean*warningFactor {
				continue
			}

			severity := analysisdomain.SeverityWarning
			if reading.ConsumptionKwh >= mean*criticalFactor {
				severity = analysisdomain.SeverityCritical
			}

			alert := analysisdomain.Alert{
				PropertyID:       propertyID.String(),
				Type:             analysisdomain.AlertTypeHighUsage,
				Severity:         severity,
				Title:            "Unusually high consumption",
				Message: fmt.Sprintf(
					"A %s reading of %.2f kWh is %.0f%% of your recent average (%.2f kWh).",
					granularity,
					reading.ConsumptionKwh,
					reading.ConsumptionKwh/mean*100,
					mean,
				),
				ReadingTimestamp: reading.Timestamp,
				ObservedKwh:      reading.ConsumptionKwh,
				BaselineKwh:      mean,
			}
			alerts = append(alerts, alert)
			s.metrics.RecordAlertDetected(ctx, severity)
		}
	}

	return alerts
}

// estimateDiscrepancy cross-checks the device-level monthly estimate against
// the metered total for the same window.
func (s *Service) estimateDiscrepancy(ctx context.Context, ownerID, propertyID string, propID snowflake.ID) (*analysisdomain.Discrepancy, error) {
	estimate, err := s.estimator.EstimateProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}
	if estimate.MeteredMonthlyKwh == nil || *estimate.MeteredMonthlyKwh <= 0 || estimate.TotalMonthlyKwh <= 0 {
		return nil, nil
	}

	metered := *estimate.MeteredMonthlyKwh
	deviation := (estimate.TotalMonthlyKwh - metered) / metered * 100
	if math.Abs(deviation) <= discrepancyTolerancePercent {
		return nil, nil
	}

	direction := analysisdomain.DirectionOverEstimated
	verb := "above"
	if deviation < 0 {
		direction = analysisdomain.DirectionUnderEstimated
		verb = "below"
	}

	return &analysisdomain.Discrepancy{
		PropertyID:          propID.String(),
		Direction:           direction,
		EstimatedMonthlyKwh: estimate.TotalMonthlyKwh,
		MeteredMonthlyKwh:   metered,
		DeviationPercent:    math.Abs(deviation),
		Title:               "Estimate does not match meter data",
		Message: fmt.Sprintf(
			"Your device estimates total %.1f kWh/month, %.0f%% %s the %.1f kWh your meter recorded.",
			estimate.TotalMonthlyKwh,
			math.Abs(deviation),
			verb,
			metered,
		),
	}, nil
}

func (s *Service) parseOwnerID(value string) (snowflake.ID, error) {
	ownerID, err := analysisdomain.ParseID(strings.TrimSpace(value))
	if err != nil || ownerID == 0 {
		return 0, analysisdomain.ErrInvalidOwner
	}
	return ownerID, nil
}

func (s *Service) resolveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := analysisdomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, analysisdomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil {
		return 0, analysisdomain.ErrPropertyNotFound
	}
	return propID, nil
}
