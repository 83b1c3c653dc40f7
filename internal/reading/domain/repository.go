package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListReadingFilter struct {
	From        *time.Time
	To          *time.Time
	Granularity string
	Limit       int
}

type Repository interface {
	InsertBatch(ctx context.Context, db *gorm.DB, readings []*MeterReading) error
	ListByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, filter ListReadingFilter) ([]*MeterReading, error)
	CountSince(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, since time.Time) (int64, error)
	SumConsumption(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, from, to time.Time) (float64, error)
	InsertImportJob(ctx context.Context, db *gorm.DB, job *ImportJob) error
	ListImportJobsByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID) ([]*ImportJob, error)
}
