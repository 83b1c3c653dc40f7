package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	propertydomain "github.com/enervue/enervue/internal/property/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	GenID        *snowflake.Node
	Repo         devicedomain.Repository
	PropertyRepo propertydomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	repo         devicedomain.Repository
	propertyRepo propertydomain.Repository
	genID        *snowflake.Node
}

func New(p Params) devicedomain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("device.service"),
		repo:         p.Repo,
		propertyRepo: p.PropertyRepo,
		genID:        p.GenID,
	}
}

func (s *Service) Create(ctx context.Context, req devicedomain.CreateRequest) (*devicedomain.Response, error) {
	ownerID, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	propertyID, err := s.resolveActiveProperty(ctx, ownerID, req.PropertyID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, devicedomain.ErrInvalidName
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "other"
	}
	if _, ok := devicedomain.Categories[category]; !ok {
		return nil, devicedomain.ErrInvalidCategory
	}

	if req.EstimatedWattage < 0 {
		return nil, devicedomain.ErrInvalidWattage
	}
	if req.DailyRuntimeHours < 0 || req.DailyRuntimeHours > 24 {
		return nil, devicedomain.ErrInvalidDailyRuntime
	}
	if req.WeeklyRuntimeHours < 0 || req.WeeklyRuntimeHours > 168 {
		return nil, devicedomain.ErrInvalidWeeklyRuntime
	}
	if req.StandbyWattage < 0 {
		return nil, devicedomain.ErrInvalidStandby
	}

	now := time.Now().UTC()
	d := &devicedomain.Device{
		ID:                 s.genID.Generate(),
		PropertyID:         propertyID,
		Name:               name,
		DeviceType:         strings.TrimSpace(req.DeviceType),
		Category:           category,
		EstimatedWattage:   req.EstimatedWattage,
		DailyRuntimeHours:  req.DailyRuntimeHours,
		WeeklyRuntimeHours: req.WeeklyRuntimeHours,
		StandbyWattage:     req.StandbyWattage,
		Brand:              strings.TrimSpace(req.Brand),
		Model:              strings.TrimSpace(req.Model),
		EnergyRating:       strings.TrimSpace(req.EnergyRating),
		SmartIntegrationID: strings.TrimSpace(req.SmartIntegrationID),
		Notes:              strings.TrimSpace(req.Notes),
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Insert(ctx, s.db, d); err != nil {
		return nil, err
	}

	return s.toResponse(d), nil
}

func (s *Service) ListByProperty(ctx context.Context, ownerID, propertyID string) ([]devicedomain.Response, error) {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByProperty(ctx, s.db, propID, true)
	if err != nil {
		return nil, err
	}

	resp := make([]devicedomain.Response, 0, len(items))
	for _, item := range items {
		resp = append(resp, *s.toResponse(item))
	}
	return resp, nil
}

func (s *Service) Update(ctx context.Context, req devicedomain.UpdateRequest) (*devicedomain.Response, error) {
	owner, err := s.parseOwnerID(req.OwnerUserID)
	if err != nil {
		return nil, err
	}

	propID, err := s.resolveProperty(ctx, owner, req.PropertyID)
	if err != nil {
		return nil, err
	}

	deviceID, err := devicedomain.ParseID(strings.TrimSpace(req.ID))
	if err != nil {
		return nil, devicedomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, propID, deviceID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active {
		return nil, devicedomain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, devicedomain.ErrInvalidName
		}
		item.Name = name
	}
	if req.DeviceType != nil {
		item.DeviceType = strings.TrimSpace(*req.DeviceType)
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if _, ok := devicedomain.Categories[category]; !ok {
			return nil, devicedomain.ErrInvalidCategory
		}
		item.Category = category
	}
	if req.EstimatedWattage != nil {
		if *req.EstimatedWattage < 0 {
			return nil, devicedomain.ErrInvalidWattage
		}
		item.EstimatedWattage = *req.EstimatedWattage
	}
	if req.DailyRuntimeHours != nil {
		if *req.DailyRuntimeHours < 0 || *req.DailyRuntimeHours > 24 {
			return nil, devicedomain.ErrInvalidDailyRuntime
		}
		item.DailyRuntimeHours = *req.DailyRuntimeHours
	}
	if req.WeeklyRuntimeHours != nil {
		if *req.WeeklyRuntimeHours < 0 || *req.WeeklyRuntimeHours > 168 {
			return nil, devicedomain.ErrInvalidWeeklyRuntime
		}
		item.WeeklyRuntimeHours = *req.WeeklyRuntimeHours
	}
	if req.StandbyWattage != nil {
		if *req.StandbyWattage < 0 {
			return nil, devicedomain.ErrInvalidStandby
		}
		item.StandbyWattage = *req.StandbyWattage
	}
	if req.Brand != nil {
		item.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Model != nil {
		item.Model = strings.TrimSpace(*req.Model)
	}
	if req.EnergyRating != nil {
		item.EnergyRating = strings.TrimSpace(*req.EnergyRating)
	}
	if req.SmartIntegrationID != nil {
		item.SmartIntegrationID = strings.TrimSpace(*req.SmartIntegrationID)
	}
	if req.Notes != nil {
		item.Notes = strings.TrimSpace(*req.Notes)
	}

	item.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	return s.toResponse(item), nil
}

// Delete soft-deletes a device. Deleting an already-inactive device is a
// no-op success.
func (s *Service) Delete(ctx context.Context, ownerID, propertyID, id string) error {
	owner, err := s.parseOwnerID(ownerID)
	if err != nil {
		return err
	}

	propID, err := s.resolveProperty(ctx, owner, propertyID)
	if err != nil {
		return err
	}

	deviceID, err := devicedomain.ParseID(strings.TrimSpace(id))
	if err != nil {
		return devicedomain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, propID, deviceID)
	if err != nil {
		return err
	}
	if item == nil {
		return devicedomain.ErrNotFound
	}
	if !item.Active {
		return nil
	}

	item.Active = false
	item.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, s.db, item)
}

func (s *Service) parseOwnerID(value string) (snowflake.ID, error) {
	ownerID, err := devicedomain.ParseID(strings.TrimSpace(value))
	if err != nil || ownerID == 0 {
		return 0, devicedomain.ErrInvalidOwner
	}
	return ownerID, nil
}

func (s *Service) resolveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := devicedomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, devicedomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil {
		return 0, devicedomain.ErrPropertyNotFound
	}
	return propID, nil
}

func (s *Service) resolveActiveProperty(ctx context.Context, ownerID snowflake.ID, propertyID string) (snowflake.ID, error) {
	propID, err := devicedomain.ParseID(strings.TrimSpace(propertyID))
	if err != nil {
		return 0, devicedomain.ErrInvalidID
	}

	property, err := s.propertyRepo.FindByID(ctx, s.db, ownerID, propID)
	if err != nil {
		return 0, err
	}
	if property == nil || !property.Active {
		return 0, devicedomain.ErrPropertyNotFound
	}
	return propID, nil
}

func (s *Service) toResponse(d *devicedomain.Device) *devicedomain.Response {
	return &devicedomain.Response{
		ID:                 d.ID.String(),
		PropertyID:         d.PropertyID.String(),
		Name:               d.Name,
		DeviceType:         d.DeviceType,
		Category:           d.Category,
		EstimatedWattage:   d.EstimatedWattage,
		DailyRuntimeHours:  d.DailyRuntimeHours,
		WeeklyRuntimeHours: d.WeeklyRuntimeHours,
		StandbyWattage:     d.StandbyWattage,
		Brand:              d.Brand,
		Model:              d.Model,
		EnergyRating:       d.EnergyRating,
		SmartIntegrationID: d.SmartIntegrationID,
		Notes:              d.Notes,
		Active:             d.Active,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
