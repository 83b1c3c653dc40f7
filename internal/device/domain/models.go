package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Device is an appliance attached to a property, either seeded from the
// catalog or entered free-form.
type Device struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	PropertyID         snowflake.ID `json:"property_id" gorm:"column:property_id;not null;index:ix_devices_property"`
	Name               string       `json:"name" gorm:"type:text;not null"`
	DeviceType         string       `json:"device_type" gorm:"type:text;not null"`
	Category           string       `json:"category" gorm:"type:text;not null"`
	EstimatedWattage   float64      `json:"estimated_wattage" gorm:"not null"`
	DailyRuntimeHours  float64      `json:"daily_runtime_hours" gorm:"not null"`
	WeeklyRuntimeHours float64      `json:"weekly_runtime_hours" gorm:"not null"`
	StandbyWattage     float64      `json:"standby_wattage" gorm:"not null;default:0"`
	Brand              string       `json:"brand,omitempty" gorm:"type:text"`
	Model              string       `json:"model,omitempty" gorm:"type:text"`
	EnergyRating       string       `json:"energy_rating,omitempty" gorm:"type:text"`
	SmartIntegrationID string       `json:"smart_integration_id,omitempty" gorm:"type:text"`
	Notes              string       `json:"notes,omitempty" gorm:"type:text"`
	Active             bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt          time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Device) TableName() string { return "devices" }

// Categories enumerates accepted device categories.
var Categories = map[string]struct{}{
	"major_appliances": {},
	"electronics":      {},
	"lighting":         {},
	"heating_cooling":  {},
	"water_heating":    {},
	"ev_charging":      {},
	"other":            {},
}
