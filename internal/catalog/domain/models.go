package domain

import (
	"context"
	"errors"
)

// DeviceType identifies a catalog device template.
type DeviceType string

const (
	DeviceTypeRefrigerator    DeviceType = "refrigerator"
	DeviceTypeWashingMachine  DeviceType = "washing_machine"
	DeviceTypeDishwasher      DeviceType = "dishwasher"
	DeviceTypeDryer           DeviceType = "dryer"
	DeviceTypeOven            DeviceType = "oven"
	DeviceTypeMicrowave       DeviceType = "microwave"
	DeviceTypeTV              DeviceType = "tv"
	DeviceTypePC              DeviceType = "pc"
	DeviceTypeLaptop          DeviceType = "laptop"
	DeviceTypeGamingConsole   DeviceType = "gaming_console"
	DeviceTypeRouter          DeviceType = "router"
	DeviceTypeLEDLights       DeviceType = "led_lights"
	DeviceTypeSmartBulbs      DeviceType = "smart_bulbs"
	DeviceTypeOutdoorLighting DeviceType = "outdoor_lighting"
	DeviceTypeHeatPump        DeviceType = "heat_pump"
	DeviceTypeACUnit          DeviceType = "ac_unit"
	DeviceTypeElectricHeater  DeviceType = "electric_heater"
	DeviceTypeWaterHeater     DeviceType = "water_heater"
	DeviceTypeBoiler          DeviceType = "boiler"
	DeviceTypeEVCharger       DeviceType = "ev_charger"
)

// Category groups device templates by household concern.
type Category string

const (
	CategoryMajorAppliances Category = "major_appliances"
	CategoryElectronics     Category = "electronics"
	CategoryLighting        Category = "lighting"
	CategoryHeatingCooling  Category = "heating_cooling"
	CategoryWaterHeating    Category = "water_heating"
	CategoryEVCharging      Category = "ev_charging"
	CategoryOther           Category = "other"
)

// ScenarioKey identifies a usage scenario bundle.
type ScenarioKey string

const (
	ScenarioFamilyHome      ScenarioKey = "family_home"
	ScenarioEVOwner         ScenarioKey = "ev_owner"
	ScenarioSmallBusiness   ScenarioKey = "small_business"
	ScenarioStudioApartment ScenarioKey = "studio_apartment"
	ScenarioSmartHome       ScenarioKey = "smart_home"
)

// DeviceTemplate is a static, read-only catalog entry used to seed devices.
type DeviceTemplate struct {
	DeviceType         DeviceType `json:"device_type"`
	Category           Category   `json:"category"`
	Name               string     `json:"name"`
	TypicalWattage     float64    `json:"typical_wattage"`
	TypicalDailyHours  float64    `json:"typical_daily_hours"`
	TypicalWeeklyHours float64    `json:"typical_weekly_hours"`
	StandbyWattage     float64    `json:"standby_wattage"`
}

// TariffType distinguishes flat, day/night and dynamic pricing.
type TariffType string

const (
	TariffSingle  TariffType = "single"
	TariffDual    TariffType = "dual"
	TariffDynamic TariffType = "dynamic"
)

// Tariff describes the electricity pricing attached to a scenario property.
type Tariff struct {
	TariffType       TariffType `json:"tariff_type"`
	SingleRate       float64    `json:"single_rate,omitempty"`
	DayRate          float64    `json:"day_rate,omitempty"`
	NightRate        float64    `json:"night_rate,omitempty"`
	FixedMonthlyCost float64    `json:"fixed_monthly_cost"`
	GridCost         float64    `json:"grid_cost"`
	TaxesPercentage  float64    `json:"taxes_percentage"`
}

// PropertySeed describes the property a scenario would provision.
type PropertySeed struct {
	Name         string `json:"name"`
	PropertyType string `json:"property_type"`
	Address      string `json:"address"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Region       string `json:"region"`
	SquareMeters int    `json:"square_meters"`
	Occupants    int    `json:"occupants"`
	MeterID      string `json:"meter_id"`
	Tariff       Tariff `json:"tariff"`
}

// DeviceSeed describes one device a scenario instantiates on a property.
type DeviceSeed struct {
	Name               string     `json:"name"`
	DeviceType         DeviceType `json:"device_type"`
	Category           Category   `json:"category"`
	EstimatedWattage   float64    `json:"estimated_wattage"`
	DailyRuntimeHours  float64    `json:"daily_runtime_hours"`
	WeeklyRuntimeHours float64    `json:"weekly_runtime_hours"`
	SmartIntegrationID string     `json:"smart_integration_id,omitempty"`
}

// Scenario bundles a property archetype with its device set.
type Scenario struct {
	Key                ScenarioKey  `json:"scenario_key"`
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	Property           PropertySeed `json:"property_template"`
	Devices            []DeviceSeed `json:"devices"`
	TypicalMonthlyKwh  float64      `json:"typical_monthly_kwh"`
	TypicalMonthlyCost float64      `json:"typical_monthly_cost"`
}

// DeviceCount returns the number of devices the scenario provisions.
func (s Scenario) DeviceCount() int { return len(s.Devices) }

type Service interface {
	ListDeviceTemplates(ctx context.Context) []DeviceTemplate
	GetDeviceTemplate(ctx context.Context, deviceType DeviceType) (*DeviceTemplate, error)
	ListDeviceTemplatesByCategory(ctx context.Context, category Category) []DeviceTemplate
	ListScenarios(ctx context.Context) []Scenario
	GetScenario(ctx context.Context, key ScenarioKey) (*Scenario, error)
}

var (
	ErrTemplateNotFound = errors.New("not_found")
	ErrScenarioNotFound = errors.New("not_found")
)
