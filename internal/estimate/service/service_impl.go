package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
	"github.com/enervue/enervue/internal/config"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	"github.com/enervue/enervue/internal/observability/metrics"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	hoursPerDay   = 24.0
	hoursPerWeek  = 168.0
	daysPerWeek   = 7.0
	daysPerMonth  = 30.0
	lookbackDays  = 30
	wattsPerKilo  = 1000.0

	// Confidence heuristic: monotonic in "more real data => higher".
	confidenceBase           = 0.5
	confidenceTemplatePenalty = 0.15
	confidenceDayOfReadings  = 0.2
	confidenceWeekOfReadings = 0.1
	confidenceMin            = 0.1
	confidenceMax            = 0.95

	// Weekly runtime only overrides daily×7 when the two disagree by more
	// than this fraction.
	weeklyDivergenceThreshold = 0.25
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Cfg          config.Config
	DeviceRepo   devicedomain.Repository
	ReadingRepo  readingdomain.Repository
	PropertyRepo propertydomain.Repository
	Catalog      catalogdomain.Service
	Metrics      *metrics.Metrics
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	cfg          config.Config
	deviceRepo   devicedomain.Repository
	readingRepo  readingdomain.Repository
	propertyRepo propertydomain.Repository
	catalog      catalogdomain.Service
	metrics      *metrics.Metrics
}

func New(p Params) estimatedomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("estimate.service"),
		cfg:          p.Cfg,
		deviceRepo:   p.DeviceRepo,
		readingRepo:  p.ReadingRepo,
		propertyRepo: p.PropertyRepo,
		catalog:      p.Catalog,
		metrics:      p.Metrics,
	}
}

func (s *Service) EstimateDevice(ctx context.Context, ownerID, propertyID, deviceID string) (*estimatedomain.DeviceEstimate, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return nil, err
	}

	devID, err := estimatedomain.ParseID(strings.TrimSpace(deviceID))
	if err != nil {
		return nil, estimatedomain.ErrInvalidID
	}

	device, err := s.deviceRepo.FindByID(ctx, s.db, propID, devID)
	if err != nil {
		return nil, err
	}
	if device == nil || !device.Active {
		return nil, estimatedomain.ErrNotFound
	}

	readingCount, err := s.readingRepo.CountSince(ctx, s.db, propID, time.Now().UTC().AddDate(0, 0, -lookbackDays))
	if err != nil {
		return nil, err
	}

	estimate := s.estimateForDevice(ctx, device, readingCount)
	s.metrics.RecordEstimateBuilt(ctx)
	return &estimate, nil
}

func (s *Service) EstimateProperty(ctx context.Context, ownerID, propertyID string) (*estimatedomain.PropertyEstimate, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return nil, err
	}

	devices, err := s.deviceRepo.ListByProperty(ctx, s.db, propID, true)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -lookbackDays)
	readingCount, err := s.readingRepo.CountSince(ctx, s.db, propID, since)
	if err != nil {
		return nil, err
	}

	result := &estimatedomain.PropertyEstimate{
		PropertyID:           propID.String(),
		Devices:              make([]estimatedomain.DeviceEstimate, 0, len(devices)),
		MeterReadingsLast30d: readingCount,
		TariffRatePerKwh:     s.cfg.Tariff.RatePerKwh,
		Currency:             s.cfg.Tariff.Currency,
	}

	for _, device := range devices {
		estimate := s.estimateForDevice(ctx, device, readingCount)
		result.Devices = append(result.Devices, estimate)
		result.TotalDailyKwh += estimate.EstimatedDailyKwh
		result.TotalWeeklyKwh += estimate.EstimatedWeeklyKwh
		result.TotalMonthlyKwh += estimate.EstimatedMonthlyKwh
		result.TotalDailyCost += estimate.EstimatedDailyCost
		result.TotalWeeklyCost += estimate.EstimatedWeeklyCost
		result.TotalMonthlyCost += estimate.EstimatedMonthlyCost
	}

	if readingCount > 0 {
		metered, err := s.readingRepo.SumConsumption(ctx, s.db, propID, since, now)
		if err != nil {
			return nil, err
		}
		result.MeteredMonthlyKwh = &metered
	}

	s.metrics.RecordEstimateBuilt(ctx)
	return result, nil
}

// estimateForDevice derives an estimate from device attributes alone. Daily
// consumption combines active draw with standby draw for the rest of the day;
// weekly consumption prefers daily×7 and falls back to the stored weekly
// runtime only when the two materially disagree; monthly is always daily×30.
func (s *Service) estimateForDevice(ctx context.Context, device *devicedomain.Device, readingCount int64) estimatedomain.DeviceEstimate {
	dailyKwh := (device.EstimatedWattage*device.DailyRuntimeHours +
		device.StandbyWattage*(hoursPerDay-device.DailyRuntimeHours)) / wattsPerKilo

	weeklyKwh := dailyKwh * daysPerWeek
	if device.WeeklyRuntimeHours > 0 {
		fromWeekly := (device.EstimatedWattage*device.WeeklyRuntimeHours +
			device.StandbyWattage*(hoursPerWeek-device.WeeklyRuntimeHours)) / wattsPerKilo
		if weeklyKwh > 0 && math.Abs(fromWeekly-weeklyKwh)/weeklyKwh > weeklyDivergenceThreshold {
			weeklyKwh = fromWeekly
		}
	}

	monthlyKwh := dailyKwh * daysPerMonth

	rate := s.cfg.Tariff.RatePerKwh

	return estimatedomain.DeviceEstimate{
		DeviceID:             device.ID.String(),
		DeviceName:           device.Name,
		DeviceType:           device.DeviceType,
		EstimatedDailyKwh:    dailyKwh,
		EstimatedWeeklyKwh:   weeklyKwh,
		EstimatedMonthlyKwh:  monthlyKwh,
		EstimatedDailyCost:   dailyKwh * rate,
		EstimatedWeeklyCost:  weeklyKwh * rate,
		EstimatedMonthlyCost: monthlyKwh * rate,
		ConfidenceScore:      s.confidenceScore(ctx, device, readingCount),
	}
}

// confidenceScore starts from a baseline, penalizes devices that still carry
// untouched catalog defaults, and rewards properties with real meter history.
func (s *Service) confidenceScore(ctx context.Context, device *devicedomain.Device, readingCount int64) float64 {
	score := confidenceBase

	if s.matchesTemplateDefaults(ctx, device) {
		score -= confidenceTemplatePenalty
	}
	if readingCount >= hoursPerDay {
		score += confidenceDayOfReadings
	}
	if readingCount >= hoursPerWeek {
		score += confidenceWeekOfReadings
	}

	return math.Min(confidenceMax, math.Max(confidenceMin, score))
}

func (s *Service) matchesTemplateDefaults(ctx context.Context, device *devicedomain.Device) bool {
	if s.catalog == nil {
		return false
	}
	tmpl, err := s.catalog.GetDeviceTemplate(ctx, catalogdomain.DeviceType(device.DeviceType))
	if err != nil || tmpl == nil {
		return false
	}
	return device.EstimatedWattage == tmpl.TypicalWattage &&
		device.DailyRuntimeHours == tmpl.TypicalDailyHours &&
		device.StandbyWattage == tmpl.StandbyWattage
}

func (s *Service) parseOwnerID(value string) (snowflake.ID, error) {
	ownerID, err := estimatedomain.ParseID(strings.TrimSpace(value))
	if err != nil || ownerID == 0 {
		return 0, estimatedomain.ErrInvalidOwner
	}
	return ownerID, nil
}

func (s *Service) resolveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := estimatedomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, estimatedomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil {
		return 0, estimatedomain.ErrPropertyNotFound
	}
	return propID, nil
}
