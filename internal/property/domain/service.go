package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	analysisdomain "github.com/enervue/enervue/internal/analysis/domain"
	devicedomain "github.com/enervue/enervue/internal/device/domain"
	estimatedomain "github.com/enervue/enervue/internal/estimate/domain"
	readingdomain "github.com/enervue/enervue/internal/reading/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context, ownerID string) ([]Response, error)
	GetByID(ctx context.Context, ownerID, id string) (*Response, error)
	GetDetails(ctx context.Context, ownerID, id string) (*Details, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type CreateRequest struct {
	OwnerUserID  string                 `json:"-"`
	Name         string                 `json:"name"`
	PropertyType string                 `json:"property_type"`
	Address      string                 `json:"address"`
	City         string                 `json:"city"`
	PostalCode   string                 `json:"postal_code"`
	Region       string                 `json:"region"`
	SquareMeters *float64               `json:"square_meters,omitempty"`
	Occupants    *int                   `json:"occupants,omitempty"`
	MeterID      string                 `json:"meter_id,omitempty"`
	Tariff       map[string]interface{} `json:"tariff,omitempty"`
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	OwnerUserID  string                 `json:"-"`
	ID           string                 `json:"-"`
	Name         *string                `json:"name,omitempty"`
	PropertyType *string                `json:"property_type,omitempty"`
	Address      *string                `json:"address,omitempty"`
	City         *string                `json:"city,omitempty"`
	PostalCode   *string                `json:"postal_code,omitempty"`
	Region       *string                `json:"region,omitempty"`
	SquareMeters *float64               `json:"square_meters,omitempty"`
	Occupants    *int                   `json:"occupants,omitempty"`
	MeterID      *string                `json:"meter_id,omitempty"`
	Tariff       map[string]interface{} `json:"tariff,omitempty"`
}

type Response struct {
	ID           string                 `json:"id"`
	OwnerUserID  string                 `json:"owner_user_id"`
	Name         string                 `json:"name"`
	PropertyType string                 `json:"property_type"`
	Address      string                 `json:"address"`
	City         string                 `json:"city"`
	PostalCode   string                 `json:"postal_code"`
	Region       string                 `json:"region"`
	SquareMeters *float64               `json:"square_meters,omitempty"`
	Occupants    *int                   `json:"occupants,omitempty"`
	MeterID      string                 `json:"meter_id,omitempty"`
	Tariff       map[string]interface{} `json:"tariff,omitempty"`
	Active       bool                   `json:"active"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Details aggregates everything a client needs to render one property.
type Details struct {
	Property        Response                       `json:"property"`
	Devices         []devicedomain.Response        `json:"devices"`
	DeviceEstimates []estimatedomain.DeviceEstimate `json:"device_estimates"`
	RecentReadings  []readingdomain.Response       `json:"recent_readings"`
	Alerts          []analysisdomain.Alert         `json:"alerts"`
	Discrepancies   []analysisdomain.Discrepancy   `json:"discrepancies"`
	Summary         Summary                        `json:"summary"`
}

type Summary struct {
	TotalDevices       int     `json:"total_devices"`
	TotalEstimatedKwh  float64 `json:"total_estimated_kwh"`
	TotalActualKwh     float64 `json:"total_actual_kwh"`
	TotalEstimatedCost float64 `json:"total_estimated_cost"`
	TotalActualCost    float64 `json:"total_actual_cost"`
	AccuracyPercentage float64 `json:"accuracy_percentage"`
	ActiveAlerts       int     `json:"active_alerts"`
	MeterReadingsCount int     `json:"meter_readings_count"`
}

var (
	ErrInvalidOwner        = errors.New("invalid_owner")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidAddress      = errors.New("invalid_address")
	ErrInvalidCity         = errors.New("invalid_city")
	ErrInvalidRegion       = errors.New("invalid_region")
	ErrInvalidPropertyType = errors.New("invalid_property_type")
	ErrInvalidSquareMeters = errors.New("invalid_square_meters")
	ErrInvalidOccupants    = errors.New("invalid_occupants")
	ErrNotFound            = errors.New("not_found")
	ErrInvalidID           = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
