package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Granularity values a reading can be tagged with. The tag comes from the
// import request, never from timestamp spacing.
const (
	GranularityHourly  = "hourly"
	GranularityDaily   = "daily"
	GranularityMonthly = "monthly"
)

// Granularities enumerates accepted granularity tags.
var Granularities = map[string]struct{}{
	GranularityHourly:  {},
	GranularityDaily:   {},
	GranularityMonthly: {},
}

// Reading sources.
const (
	SourceCSVImport    = "csv_import"
	SourceScenarioMock = "scenario_mock"
)

// MeterReading is one normalized consumption sample. Immutable once created.
type MeterReading struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	PropertyID     snowflake.ID `json:"property_id" gorm:"column:property_id;not null;index:ix_meter_readings_property_ts,priority:1"`
	Timestamp      time.Time    `json:"timestamp" gorm:"not null;index:ix_meter_readings_property_ts,priority:2"`
	ConsumptionKwh float64      `json:"consumption_kwh" gorm:"not null"`
	ProductionKwh  float64      `json:"production_kwh" gorm:"not null;default:0"`
	Granularity    string       `json:"granularity" gorm:"type:text;not null"`
	Source         string       `json:"source" gorm:"type:text;not null"`
	ImportID       snowflake.ID `json:"import_id,omitempty" gorm:"column:import_id"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MeterReading) TableName() string { return "meter_readings" }

// Import job statuses.
const (
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// ImportJob records the outcome of one CSV upload, including row-level
// failures, so clients can audit partial imports.
type ImportJob struct {
	ID           snowflake.ID   `json:"id" gorm:"primaryKey"`
	PropertyID   snowflake.ID   `json:"property_id" gorm:"column:property_id;not null;index:ix_import_jobs_property"`
	Filename     string         `json:"filename" gorm:"type:text"`
	Granularity  string         `json:"granularity" gorm:"type:text;not null"`
	Status       string         `json:"status" gorm:"type:text;not null"`
	RowsTotal    int            `json:"rows_total" gorm:"not null"`
	RowsImported int            `json:"rows_imported" gorm:"not null"`
	RowsFailed   int            `json:"rows_failed" gorm:"not null"`
	RowErrors    datatypes.JSON `json:"row_errors" gorm:"type:jsonb"`
	CreatedAt    time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ImportJob) TableName() string { return "import_jobs" }
