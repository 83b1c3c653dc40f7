package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/enervue/enervue/internal/device/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, device *domain.Device) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO devices (id, property_id, name, device_type, category, estimated_wattage,
		 daily_runtime_hours, weekly_runtime_hours, standby_wattage, brand, model, energy_rating,
		 smart_integration_id, notes, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		device.ID,
		device.PropertyID,
		device.Name,
		device.DeviceType,
		device.Category,
		device.EstimatedWattage,
		device.DailyRuntimeHours,
		device.WeeklyRuntimeHours,
		device.StandbyWattage,
		device.Brand,
		device.Model,
		device.EnergyRating,
		device.SmartIntegrationID,
		device.Notes,
		device.Active,
		device.CreatedAt,
		device.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, propertyID, id snowflake.ID) (*domain.Device, error) {
	var device domain.Device
	err := db.WithContext(ctx).
		Where("property_id = ? AND id = ?", propertyID, id).
		Limit(1).
		Find(&device).Error
	if err != nil {
		return nil, err
	}
	if device.ID == 0 {
		return nil, nil
	}
	return &device, nil
}

func (r *repo) ListByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, activeOnly bool) ([]*domain.Device, error) {
	var devices []*domain.Device
	stmt := db.WithContext(ctx).
		Model(&domain.Device{}).
		Where("property_id = ?", propertyID)
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}
	err := stmt.
		Order("created_at asc, id asc").
		Find(&devices).Error
	if err != nil {
		return nil, err
	}
	return devices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, device *domain.Device) error {
	return db.WithContext(ctx).Exec(
		`UPDATE devices
		 SET name = ?, device_type = ?, category = ?, estimated_wattage = ?, daily_runtime_hours = ?,
		     weekly_runtime_hours = ?, standby_wattage = ?, brand = ?, model = ?, energy_rating = ?,
		     smart_integration_id = ?, notes = ?, active = ?, updated_at = ?
		 WHERE property_id = ? AND id = ?`,
		device.Name,
		device.DeviceType,
		device.Category,
		device.EstimatedWattage,
		device.DailyRuntimeHours,
		device.WeeklyRuntimeHours,
		device.StandbyWattage,
		device.Brand,
		device.Model,
		device.EnergyRating,
		device.SmartIntegrationID,
		device.Notes,
		device.Active,
		device.UpdatedAt,
		device.PropertyID,
		device.ID,
	).Error
}
