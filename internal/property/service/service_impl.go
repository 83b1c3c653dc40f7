package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
	"github.com/enervue/enervue/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const recentReadingsLimit = 50

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Repo       propertydomain.Repository
	DeviceSvc  devicedomain.Service
	ReadingSvc readingdomain.Service
	Estimator  estimatedomain.Service
	Analyzer   analysisdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       propertydomain.Repository
	deviceSvc  devicedomain.Service
	readingSvc readingdomain.Service
	estimator  estimatedomain.Service
	analyzer   analysisdomain.Service
	genID      *snowflake.Node
}

func New(p Params) propertydomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("property.service"),
		repo:       p.Repo,
		deviceSvc:  p.DeviceSvc,
		readingSvc: p.ReadingSvc,
		estimator:  p.Estimator,
		analyzer:   p.Analyzer,
		genID:      p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req propertydomain.CreateRequest) (*propertydomain.Response, error) {
	ownerID, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, propertydomain.ErrInvalidName
	}

	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, propertydomain.ErrInvalidAddress
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		return nil, propertydomain.ErrInvalidCity
	}

	region := strings.ToLower(strings.TrimSpace(req.Region))
	if _, ok := propertydomain.Regions[region]; !ok {
		return nil, propertydomain.ErrInvalidRegion
	}

	propertyType := strings.TrimSpace(req.PropertyType)
	if propertyType == "" {
		propertyType = "home"
	}
	if _, ok := propertydomain.PropertyTypes[propertyType]; !ok {
		return nil, propertydomain.ErrInvalidPropertyType
	}

	if req.SquareMeters != nil && *req.SquareMeters <= 0 {
		return nil, propertydomain.ErrInvalidSquareMeters
	}
	if req.Occupants != nil && *req.Occupants <= 0 {
		return nil, propertydomain.ErrInvalidOccupants
	}

	now := time.Now().UTC()
	property := &propertydomain.Property{
		ID:           s.genID.Generate(),
		OwnerUserID:  ownerID,
		Name:         name,
		PropertyType: propertyType,
		Address:      address,
		City:         city,
		PostalCode:   strings.TrimSpace(req.PostalCode),
		Region:       region,
		SquareMeters: req.SquareMeters,
		Occupants:    req.Occupants,
		MeterID:      strings.TrimSpace(req.MeterID),
		Tariff:       datatypes.JSONMap(req.Tariff),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, property); err != nil {
		return nil, err
	}

	s.log.Info("property created",
		zap.String("property_id", property.ID.String()),
		zap.String("region", property.Region),
	)

	return toResponse(property), nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]propertydomain.Response, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	properties, err := s.repo.List(ctx, s.db, owner, propertydomain.ListPropertyFilter{}, pagination.Pagination{})
	if err != nil {
		return nil, err
	}

	resp := make([]propertydomain.Response, 0, len(properties))
	for _, property := range properties {
		resp = append(resp, *toResponse(property))
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, ownerID, id string) (*propertydomain.Response, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	property, err := s.findOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return toResponse(property), nil
}

// GetDetails assembles the full dashboard payload for a property: the devices,
// their derived estimates, recent readings, alert analysis and a roll-up
// summary comparing estimated against metered consumption.
func (s *Service) GetDetails(ctx context.Context, ownerID, id string) (*propertydomain.Details, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	property, err := s.findOwned(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, propertydomain.ErrNotFound
	}

	propertyID := property.ID.String()

	devices, err := s.deviceSvc.ListByProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	estimate, err := s.estimator.EstimateProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	readings, err := s.readingSvc.List(ctx, readingdomain.ListRequest{
		OwnerUserID: ownerID,
		PropertyID:  propertyID,
		Limit:       recentReadingsLimit,
	})
	if err != nil {
		return nil, err
	}

	analysis, err := s.analyzer.AnalyzeProperty(ctx, ownerID, propertyID)
	if err != nil {
		return nil, err
	}

	return &propertydomain.Details{
		Property:        *toResponse(property),
		Devices:         devices,
		DeviceEstimates: estimate.Devices,
		RecentReadings:  readings,
		Alerts:          analysis.Alerts,
		Discrepancies:   analysis.Discrepancies,
		Summary:         buildSummary(len(devices), estimate, analysis),
	}, nil
}

func (s *Service) Update(ctx context.Context, req propertydomain.UpdateRequest) (*propertydomain.Response, error) {
	owner, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	property, err := s.findOwned(ctx, owner, req.ID)
	if err != nil {
		return nil, err
	}
	if !property.Active {
		return nil, propertydomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, propertydomain.ErrInvalidName
		}
		property.Name = name
	}
	if req.PropertyType != nil {
		propertyType := strings.TrimSpace(*req.PropertyType)
		if _, ok := propertydomain.PropertyTypes[propertyType]; !ok {
			return nil, propertydomain.ErrInvalidPropertyType
		}
		property.PropertyType = propertyType
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			return nil, propertydomain.ErrInvalidAddress
		}
		property.Address = address
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return nil, propertydomain.ErrInvalidCity
		}
		property.City = city
	}
	if req.PostalCode != nil {
		property.PostalCode = strings.TrimSpace(*req.PostalCode)
	}
	if req.Region != nil {
		region := strings.ToLower(strings.TrimSpace(*req.Region))
		if _, ok := propertydomain.Regions[region]; !ok {
			return nil, propertydomain.ErrInvalidRegion
		}
		property.Region = region
	}
	if req.SquareMeters != nil {
		if *req.SquareMeters <= 0 {
			return nil, propertydomain.ErrInvalidSquareMeters
		}
		property.SquareMeters = req.SquareMeters
	}
	if req.Occupants != nil {
		if *req.Occupants <= 0 {
			return nil, propertydomain.ErrInvalidOccupants
		}
		property.Occupants = req.Occupants
	}
	if req.MeterID != nil {
		property.MeterID = strings.TrimSpace(*req.MeterID)
	}
	if req.Tariff != nil {
		property.Tariff = datatypes.JSONMap(req.Tariff)
	}

	property.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, property); err != nil {
		return nil, err
	}

	s.log.Info("property updated", zap.String("property_id", property.ID.String()))
	return toResponse(property), nil
}

// Delete soft-deletes the property. Deleting an already-inactive property is
// a no-op success.
func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return err
	}

	property, err := s.findOwned(ctx, owner, id)
	if err != nil {
		return err
	}
	if !property.Active {
		return nil
	}

	property.Active = false
	property.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, property); err != nil {
		return err
	}

	s.log.Info("property deleted", zap.String("property_id", property.ID.String()))
	return nil
}

func buildSummary(deviceCount int, estimate *estimatedomain.PropertyEstimate, analysis *analysisdomain.Result) propertydomain.Summary {
	summary := propertydomain.Summary{
		TotalDevices:       deviceCount,
		TotalEstimatedKwh:  estimate.TotalMonthlyKwh,
		TotalEstimatedCost: estimate.TotalMonthlyCost,
		ActiveAlerts:       len(analysis.Alerts),
		MeterReadingsCount: int(estimate.MeterReadingsLast30d),
	}

	if estimate.MeteredMonthlyKwh != nil {
		metered := *estimate.MeteredMonthlyKwh
		summary.TotalActualKwh = metered
		summary.TotalActualCost = metered * estimate.TariffRatePerKwh

		if metered > 0 && estimate.TotalMonthlyKwh > 0 {
			accuracy := 100 - math.Abs(estimate.TotalMonthlyKwh-metered)/metered*100
			summary.AccuracyPercentage = math.Max(0, accuracy)
		}
	}

	return summary
}

func (s *Service) findOwned(ctx context.Context, ownerID snowflake.ID, id string) (*propertydomain.Property, error) {
	propID, err := propertydomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return nil, propertydomain.ErrInvalidID
	}

	property, err := s.repo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, propertydomain.ErrNotFound
	}
	return property, nil
}

func (s *Service) parseOwnerID(value string) (snowflake.ID, error) {
	ownerID, err := propertydomain.ParseID(strings.TrimSpace(value))
	if err != nil || ownerID == 0 {
		return 0, propertydomain.ErrInvalidOwner
	}
	return ownerID, nil
}

func toResponse(property *propertydomain.Property) *propertydomain.Response {
	return &propertydomain.Response{
		ID:           property.ID.String(),
		OwnerUserID:  property.OwnerUserID.String(),
		Name:         property.Name,
		PropertyType: property.PropertyType,
		Address:      property.Address,
		City:         property.City,
		PostalCode:   property.PostalCode,
		Region:       property.Region,
		SquareMeters: property.SquareMeters,
		Occupants:    property.Occupants,
		MeterID:      property.MeterID,
		Tariff:       map[string]interface{}(property.Tariff),
		Active:       property.Active,
		CreatedAt:    property.CreatedAt,
		UpdatedAt:    property.UpdatedAt,
	}
}
