package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// DeviceEstimate is derived on read from device attributes and available
// meter data. It is never persisted as authoritative.
type DeviceEstimate struct {
	DeviceID             string  `json:"device_id"`
	DeviceName           string  `json:"device_name"`
	DeviceType           string  `json:"device_type"`
	EstimatedDailyKwh    float64 `json:"estimated_daily_kwh"`
	EstimatedWeeklyKwh   float64 `json:"estimated_weekly_kwh"`
	EstimatedMonthlyKwh  float64 `json:"estimated_monthly_kwh"`
	EstimatedDailyCost   float64 `json:"estimated_daily_cost"`
	EstimatedWeeklyCost  float64 `json:"estimated_weekly_cost"`
	EstimatedMonthlyCost float64 `json:"estimated_monthly_cost"`
	ConfidenceScore      float64 `json:"confidence_score"`
}

// PropertyEstimate aggregates device estimates and, when meter data exists,
// the observed consumption for the same window.
type PropertyEstimate struct {
	PropertyID           string           `json:"property_id"`
	Devices              []DeviceEstimate `json:"devices"`
	TotalDailyKwh        float64          `json:"total_daily_kwh"`
	TotalWeeklyKwh       float64          `json:"total_weekly_kwh"`
	TotalMonthlyKwh      float64          `json:"total_monthly_kwh"`
	TotalDailyCost       float64          `json:"total_daily_cost"`
	TotalWeeklyCost      float64          `json:"total_weekly_cost"`
	TotalMonthlyCost     float64          `json:"total_monthly_cost"`
	MeteredMonthlyKwh    *float64         `json:"metered_monthly_kwh,omitempty"`
	MeterReadingsLast30d int64            `json:"meter_readings_last_30d"`
	TariffRatePerKwh     float64          `json:"tariff_rate_per_kwh"`
	Currency             string           `json:"currency"`
}

type Service interface {
	EstimateDevice(ctx context.Context, ownerID, propertyID, deviceID string) (*DeviceEstimate, error)
	EstimateProperty(ctx context.Context, ownerID, propertyID string) (*PropertyEstimate, error)
}

var (
	ErrInvalidOwner     = errors.New("invalid_owner")
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrNotFound         = errors.New("not_found")
	ErrInvalidID        = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
