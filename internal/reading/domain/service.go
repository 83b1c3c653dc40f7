package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	ImportCSV(ctx context.Context, req ImportCSVRequest) (*ImportResult, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	ListImports(ctx context.Context, ownerID, propertyID string) ([]ImportJobResponse, error)
}

type ImportCSVRequest struct {
	OwnerUserID string
	PropertyID  string
	Filename    string
	Granularity string
	Content     []byte
}

// RowError describes one skipped CSV row.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ImportResult struct {
	ImportID         string     `json:"import_id"`
	ReadingsImported int        `json:"readings_imported"`
	Errors           []RowError `json:"errors"`
}

type ListRequest struct {
	OwnerUserID string
	PropertyID  string
	From        *time.Time
	To          *time.Time
	Granularity string
	Limit       int
}

type Response struct {
	ID             string    `json:"id"`
	PropertyID     string    `json:"property_id"`
	Timestamp      time.Time `json:"timestamp"`
	ConsumptionKwh float64   `json:"consumption_kwh"`
	ProductionKwh  float64   `json:"production_kwh"`
	Granularity    string    `json:"granularity"`
	Source         string    `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

type ImportJobResponse struct {
	ID           string     `json:"id"`
	PropertyID   string     `json:"property_id"`
	Filename     string     `json:"filename"`
	Granularity  string     `json:"granularity"`
	Status       string     `json:"status"`
	RowsTotal    int        `json:"rows_total"`
	RowsImported int        `json:"rows_imported"`
	RowsFailed   int        `json:"rows_failed"`
	RowErrors    []RowError `json:"row_errors"`
	CreatedAt    time.Time  `json:"created_at"`
}

var (
	ErrInvalidOwner       = errors.New("invalid_owner")
	ErrInvalidGranularity = errors.New("invalid_granularity")
	ErrEmptyContent       = errors.New("empty_content")
	ErrNoValidRows        = errors.New("no_valid_rows")
	ErrTooManyRows        = errors.New("too_many_rows")
	ErrPropertyNotFound   = errors.New("property_not_found")
	ErrInvalidID          = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
