package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/enervue/enervue/internal/property/domain"
	"github.com/enervue/enervue/pkg/db/option"
	"github.com/enervue/enervue/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, property *domain.Property) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO properties (id, owner_user_id, name, property_type, address, city, postal_code, region,
		 square_meters, occupants, meter_id, tariff, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		property.ID,
		property.OwnerUserID,
		property.Name,
		property.PropertyType,
		property.Address,
		property.City,
		property.PostalCode,
		property.Region,
		property.SquareMeters,
		property.Occupants,
		property.MeterID,
		property.Tariff,
		property.Active,
		property.CreatedAt,
		property.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*domain.Property, error) {
	var property domain.Property
	err := db.WithContext(ctx).
		Where("owner_user_id = ? AND id = ?", ownerID, id).
		Limit(1).
		Find(&property).Error
	if err != nil {
		return nil, err
	}
	if property.ID == 0 {
		return nil, nil
	}
	return &property, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListPropertyFilter, page pagination.Pagination) ([]*domain.Property, error) {
	var properties []*domain.Property
	stmt := db.WithContext(ctx).
		Model(&domain.Property{}).
		Where("owner_user_id = ? AND active = ?", ownerID, true)
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	if filter.PropertyType != "" {
		stmt = stmt.Where("property_type = ?", filter.PropertyType)
	}
	if filter.City != "" {
		stmt = stmt.Where("city = ?", filter.City)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	err := stmt.
		Order("created_at desc, id desc").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, property *domain.Property) error {
	return db.WithContext(ctx).Exec(
		`UPDATE properties
		 SET name = ?, property_type = ?, address = ?, city = ?, postal_code = ?, region = ?,
		     square_meters = ?, occupants = ?, meter_id = ?, tariff = ?, active = ?, updated_at = ?
		 WHERE owner_user_id = ? AND id = ?`,
		property.Name,
		property.PropertyType,
		property.Address,
		property.City,
		property.PostalCode,
		property.Region,
		property.SquareMeters,
		property.Occupants,
		property.MeterID,
		property.Tariff,
		property.Active,
		property.UpdatedAt,
		property.OwnerUserID,
		property.ID,
	).Error
}
