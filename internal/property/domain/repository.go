package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/enervue/enervue/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListPropertyFilter struct {
	Region       string
	PropertyType string
	City         string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, property *Property) error
	FindByID(ctx context.Context, db *gorm.DB, ownerID, id snowflake.ID) (*Property, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListPropertyFilter, page pagination.Pagination) ([]*Property, error)
	Update(ctx context.Context, db *gorm.DB, property *Property) error
}
