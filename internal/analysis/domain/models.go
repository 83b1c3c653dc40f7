package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Alert types and severities.
const (
	AlertTypeHighUsage = "high_usage"

	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Discrepancy directions.
const (
	DirectionOverEstimated  = "over_estimated"
	DirectionUnderEstimated = "under_estimated"
)

// Alert flags a single reading that materially exceeds the property's
// trailing average. Alerts are derived data, not notifications.
type Alert struct {
	PropertyID       string    `json:"property_id"`
	Type             string    `json:"type"`
	Severity         string    `json:"severity"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	ReadingTimestamp time.Time `json:"reading_timestamp"`
	ObservedKwh      float64   `json:"observed_kwh"`
	BaselineKwh      float64   `json:"baseline_kwh"`
}

// Discrepancy flags a property whose device-level estimate diverges from the
// metered total beyond the tolerance band.
type Discrepancy struct {
	PropertyID          string  `json:"property_id"`
	Direction           string  `json:"direction"`
	EstimatedMonthlyKwh float64 `json:"estimated_monthly_kwh"`
	MeteredMonthlyKwh   float64 `json:"metered_monthly_kwh"`
	DeviationPercent    float64 `json:"deviation_percent"`
	Title               string  `json:"title"`
	Message             string  `json:"message"`
}

type Result struct {
	PropertyID    string        `json:"property_id"`
	Alerts        []Alert       `json:"alerts"`
	Discrepancies []Discrepancy `json:"discrepancies"`
}

type Service interface {
	AnalyzeProperty(ctx context.Context, ownerID, propertyID string) (*Result, error)
}

var (
	ErrInvalidOwner     = errors.New("invalid_owner")
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrInvalidID        = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
