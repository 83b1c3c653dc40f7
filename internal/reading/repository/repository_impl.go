package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/enervue/enervue/internal/reading/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, readings []*domain.MeterReading) error {
	if len(readings) == 0 {
		return nil
	}
	return db.WithContext(ctx).CreateInBatches(readings, insertBatchSize).Error
}

func (r *repo) ListByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, filter domain.ListReadingFilter) ([]*domain.MeterReading, error) {
	var readings []*domain.MeterReading
	stmt := db.WithContext(ctx).
		Model(&domain.MeterReading{}).
		Where("property_id = ?", propertyID)
	if filter.From != nil {
		stmt = stmt.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("timestamp <= ?", *filter.To)
	}
	if filter.Granularity != "" {
		stmt = stmt.Where("granularity = ?", filter.Granularity)
	}
	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}
	err := stmt.
		Order("timestamp desc, id desc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}

func (r *repo) CountSince(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, since time.Time) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.MeterReading{}).
		Where("property_id = ? AND timestamp >= ?", propertyID, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) SumConsumption(ctx context.Context, db *gorm.DB, propertyID snowflake.ID, from, to time.Time) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(consumption_kwh), 0)
		 FROM meter_readings
		 WHERE property_id = ? AND timestamp >= ? AND timestamp <= ?`,
		propertyID,
		from,
		to,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repo) InsertImportJob(ctx context.Context, db *gorm.DB, job *domain.ImportJob) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO import_jobs (id, property_id, filename, granularity, status, rows_total,
		 rows_imported, rows_failed, row_errors, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		job.PropertyID,
		job.Filename,
		job.Granularity,
		job.Status,
		job.RowsTotal,
		job.RowsImported,
		job.RowsFailed,
		job.RowErrors,
		job.CreatedAt,
	).Error
}

func (r *repo) ListImportJobsByProperty(ctx context.Context, db *gorm.DB, propertyID snowflake.ID) ([]*domain.ImportJob, error) {
	var jobs []*domain.ImportJob
	err := db.WithContext(ctx).
		Model(&domain.ImportJob{}).
		Where("property_id = ?", propertyID).
		Order("created_at desc, id desc").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
