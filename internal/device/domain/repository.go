package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, device *Device) error
	FindByID(ctx context.Context, db *gorm.DB, propertyID, id snowflake.ID) (*Device, error)
	ListByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, activeOnly bool) ([]*Device, error)
	Update(ctx context.Context, db *gorm.DB, device *Device) error
}
