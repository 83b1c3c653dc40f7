package service

import (
	"github.com/enervue/enervue/internal/catalog/domain"
)

// deviceTemplates is the process-wide read-only catalog, ordered by category
// then typical placement in a household.
var deviceTemplates = []domain.DeviceTemplate{
	{DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, Name: "Refrigerator", TypicalWattage: 150, TypicalDailyHours: 24, TypicalWeeklyHours: 168, StandbyWattage: 120},
	{DeviceType: domain.DeviceTypeWashingMachine, Category: domain.CategoryMajorAppliances, Name: "Washing Machine", TypicalWattage: 2000, TypicalDailyHours: 1, TypicalWeeklyHours: 4, StandbyWattage: 5},
	{DeviceType: domain.DeviceTypeDishwasher, Category: domain.CategoryMajorAppliances, Name: "Dishwasher", TypicalWattage: 1800, TypicalDailyHours: 1.5, TypicalWeeklyHours: 7, StandbyWattage: 3},
	{DeviceType: domain.DeviceTypeDryer, Category: domain.CategoryMajorAppliances, Name: "Clothes Dryer", TypicalWattage: 3000, TypicalDailyHours: 0.5, TypicalWeeklyHours: 3, StandbyWattage: 2},
	{DeviceType: domain.DeviceTypeOven, Category: domain.CategoryMajorAppliances, Name: "Electric Oven", TypicalWattage: 2500, TypicalDailyHours: 1, TypicalWeeklyHours: 5, StandbyWattage: 10},
	{DeviceType: domain.DeviceTypeMicrowave, Category: domain.CategoryMajorAppliances, Name: "Microwave", TypicalWattage: 1200, TypicalDailyHours: 0.5, TypicalWeeklyHours: 3, StandbyWattage: 8},

	{DeviceType: domain.DeviceTypeTV, Category: domain.CategoryElectronics, Name: "LED TV", TypicalWattage: 120, TypicalDailyHours: 6, TypicalWeeklyHours: 35, StandbyWattage: 15},
	{DeviceType: domain.DeviceTypePC, Category: domain.CategoryElectronics, Name: "Desktop PC", TypicalWattage: 300, TypicalDailyHours: 8, TypicalWeeklyHours: 50, StandbyWattage: 20},
	{DeviceType: domain.DeviceTypeLaptop, Category: domain.CategoryElectronics, Name: "Laptop", TypicalWattage: 65, TypicalDailyHours: 6, TypicalWeeklyHours: 35, StandbyWattage: 5},
	{DeviceType: domain.DeviceTypeGamingConsole, Category: domain.CategoryElectronics, Name: "Gaming Console", TypicalWattage: 150, TypicalDailyHours: 3, TypicalWeeklyHours: 15, StandbyWattage: 25},
	{DeviceType: domain.DeviceTypeRouter, Category: domain.CategoryElectronics, Name: "WiFi Router", TypicalWattage: 12, TypicalDailyHours: 24, TypicalWeeklyHours: 168, StandbyWattage: 12},

	{DeviceType: domain.DeviceTypeLEDLights, Category: domain.CategoryLighting, Name: "LED Light Zone", TypicalWattage: 60, TypicalDailyHours: 8, TypicalWeeklyHours: 50, StandbyWattage: 0},
	{DeviceType: domain.DeviceTypeSmartBulbs, Category: domain.CategoryLighting, Name: "Smart Bulbs", TypicalWattage: 45, TypicalDailyHours: 6, TypicalWeeklyHours: 35, StandbyWattage: 2},
	{DeviceType: domain.DeviceTypeOutdoorLighting, Category: domain.CategoryLighting, Name: "Outdoor Lighting", TypicalWattage: 100, TypicalDailyHours: 12, TypicalWeeklyHours: 84, StandbyWattage: 0},

	{DeviceType: domain.DeviceTypeHeatPump, Category: domain.CategoryHeatingCooling, Name: "Heat Pump", TypicalWattage: 3500, TypicalDailyHours: 8, TypicalWeeklyHours: 40, StandbyWattage: 50},
	{DeviceType: domain.DeviceTypeACUnit, Category: domain.CategoryHeatingCooling, Name: "Air Conditioning", TypicalWattage: 2500, TypicalDailyHours: 6, TypicalWeeklyHours: 30, StandbyWattage: 20},
	{DeviceType: domain.DeviceTypeElectricHeater, Category: domain.CategoryHeatingCooling, Name: "Electric Heater", TypicalWattage: 1500, TypicalDailyHours: 4, TypicalWeeklyHours: 20, StandbyWattage: 0},

	{DeviceType: domain.DeviceTypeWaterHeater, Category: domain.CategoryWaterHeating, Name: "Electric Water Heater", TypicalWattage: 4000, TypicalDailyHours: 3, TypicalWeeklyHours: 15, StandbyWattage: 100},
	{DeviceType: domain.DeviceTypeBoiler, Category: domain.CategoryWaterHeating, Name: "Electric Boiler", TypicalWattage: 3000, TypicalDailyHours: 4, TypicalWeeklyHours: 25, StandbyWattage: 80},

	// 7.4kW home charger
	{DeviceType: domain.DeviceTypeEVCharger, Category: domain.CategoryEVCharging, Name: "EV Charger", TypicalWattage: 7400, TypicalDailyHours: 2, TypicalWeeklyHours: 10, StandbyWattage: 15},
}

var templatesByType = func() map[domain.DeviceType]domain.DeviceTemplate {
	byType := make(map[domain.DeviceType]domain.DeviceTemplate, len(deviceTemplates))
	for _, tmpl := range deviceTemplates {
		byType[tmpl.DeviceType] = tmpl
	}
	return byType
}()
