package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Property is a user-owned building with an electricity meter.
type Property struct {
	ID           snowflake.ID      `json:"id" gorm:"primaryKey"`
	OwnerUserID  snowflake.ID      `json:"owner_user_id" gorm:"column:owner_user_id;not null;index:ix_properties_owner"`
	Name         string            `json:"name" gorm:"type:text;not null"`
	PropertyType string            `json:"property_type" gorm:"type:text;not null"`
	Address      string            `json:"address" gorm:"type:text;not null"`
	City         string            `json:"city" gorm:"type:text;not null"`
	PostalCode   string            `json:"postal_code" gorm:"type:text"`
	Region       string            `json:"region" gorm:"type:text;not null"`
	SquareMeters *float64          `json:"square_meters,omitempty"`
	Occupants    *int              `json:"occupants,omitempty"`
	MeterID      string            `json:"meter_id" gorm:"type:text"`
	Tariff       datatypes.JSONMap `json:"tariff" gorm:"type:jsonb"`
	Active       bool              `json:"active" gorm:"not null;default:true"`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Property) TableName() string { return "properties" }

// PropertyTypes enumerates accepted property_type values.
var PropertyTypes = map[string]struct{}{
	"home":     {},
	"office":   {},
	"rental":   {},
	"vacation": {},
	"other":    {},
}

// Regions enumerates the Belgian regions a property can belong to.
var Regions = map[string]struct{}{
	"brussels": {},
	"flanders": {},
	"wallonia": {},
}
