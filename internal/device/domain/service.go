package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	ListByProperty(ctx context.Context, ownerID, propertyID string) ([]Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, ownerID, propertyID, id string) error
}

type CreateRequest struct {
	OwnerUserID        string  `json:"-"`
	PropertyID         string  `json:"-"`
	Name               string  `json:"name"`
	DeviceType         string  `json:"device_type"`
	Category           string  `json:"category"`
	EstimatedWattage   float64 `json:"estimated_wattage"`
	DailyRuntimeHours  float64 `json:"daily_runtime_hours"`
	WeeklyRuntimeHours float64 `json:"weekly_runtime_hours"`
	StandbyWattage     float64 `json:"standby_wattage"`
	Brand              string  `json:"brand,omitempty"`
	Model              string  `json:"model,omitempty"`
	EnergyRating       string  `json:"energy_rating,omitempty"`
	SmartIntegrationID string  `json:"smart_integration_id,omitempty"`
	Notes              string  `json:"notes,omitempty"`
}

type UpdateRequest struct {
	OwnerUserID        string   `json:"-"`
	PropertyID         string   `json:"-"`
	ID                 string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	DeviceType         *string  `json:"device_type,omitempty"`
	Category           *string  `json:"category,omitempty"`
	EstimatedWattage   *float64 `json:"estimated_wattage,omitempty"`
	DailyRuntimeHours  *float64 `json:"daily_runtime_hours,omitempty"`
	WeeklyRuntimeHours *float64 `json:"weekly_runtime_hours,omitempty"`
	StandbyWattage     *float64 `json:"standby_wattage,omitempty"`
	Brand              *string  `json:"brand,omitempty"`
	Model              *string  `json:"model,omitempty"`
	EnergyRating       *string  `json:"energy_rating,omitempty"`
	SmartIntegrationID *string  `json:"smart_integration_id,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
}

type Response struct {
	ID                 string    `json:"id"`
	PropertyID         string    `json:"property_id"`
	Name               string    `json:"name"`
	DeviceType         string    `json:"device_type"`
	Category           string    `json:"category"`
	EstimatedWattage   float64   `json:"estimated_wattage"`
	DailyRuntimeHours  float64   `json:"daily_runtime_hours"`
	WeeklyRuntimeHours float64   `json:"weekly_runtime_hours"`
	StandbyWattage     float64   `json:"standby_wattage"`
	Brand              string    `json:"brand,omitempty"`
	Model              string    `json:"model,omitempty"`
	EnergyRating       string    `json:"energy_rating,omitempty"`
	SmartIntegrationID string    `json:"smart_integration_id,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

var (
	ErrInvalidOwner         = errors.New("invalid_owner")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidCategory      = errors.New("invalid_category")
	ErrInvalidWattage       = errors.New("invalid_wattage")
	ErrInvalidDailyRuntime  = errors.New("invalid_daily_runtime_hours")
	ErrInvalidWeeklyRuntime = errors.New("invalid_weekly_runtime_hours")
	ErrInvalidStandby       = errors.New("invalid_standby_wattage")
	ErrPropertyNotFound     = errors.New("property_not_found")
	ErrNotFound             = errors.New("not_found")
	ErrInvalidID            = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
