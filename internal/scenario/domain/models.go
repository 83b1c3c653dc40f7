package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Setup(ctx context.Context, req SetupRequest) (*SetupResult, error)
}

type SetupRequest struct {
	OwnerUserID      string `json:"-"`
	PropertyID       string `json:"-"`
	ScenarioKey      string `json:"scenario"`
	GenerateMockData bool   `json:"generate_mock_data"`
}

type SetupResult struct {
	Message              string `json:"message"`
	PropertyID           string `json:"property_id"`
	DevicesCreated       int    `json:"devices_created"`
	MeterReadingsCreated int    `json:"meter_readings_created"`
}

var (
	ErrInvalidOwner     = errors.New("invalid_owner")
	ErrScenarioNotFound = errors.New("scenario_not_found")
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrInvalidID        = errors.New("invalid_id")
)

func ParseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(value)
}
