package service

import (
	"github.com/enervue/enervue/internal/catalog/domain"
)

// scenarios are household archetypes used by the setup orchestrator. Device
// wattage and runtime values intentionally diverge from the raw templates
// where the archetype calls for it (e.g. an energy efficient fridge).
var scenarios = []domain.Scenario{
	{
		Key:         domain.ScenarioFamilyHome,
		Name:        "Family Home (4 people)",
		Description: "Typical Belgian family with 4 people, standard appliances and electronics",
		Property: domain.PropertySeed{
			Name:         "Family Home",
			PropertyType: "home",
			Address:      "123 Residential Street",
			City:         "Brussels",
			PostalCode:   "1000",
			Region:       "brussels",
			SquareMeters: 150,
			Occupants:    4,
			MeterID:      "BE_FAM_001234",
			Tariff: domain.Tariff{
				TariffType:       domain.TariffDual,
				DayRate:          0.28,
				NightRate:        0.20,
				FixedMonthlyCost: 45.0,
				GridCost:         0.05,
				TaxesPercentage:  21.0,
			},
		},
		Devices: []domain.DeviceSeed{
			{Name: "Kitchen Fridge", DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, EstimatedWattage: 150, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168},
			{Name: "Washing Machine", DeviceType: domain.DeviceTypeWashingMachine, Category: domain.CategoryMajorAppliances, EstimatedWattage: 2000, DailyRuntimeHours: 1, WeeklyRuntimeHours: 5},
			{Name: "Dishwasher", DeviceType: domain.DeviceTypeDishwasher, Category: domain.CategoryMajorAppliances, EstimatedWattage: 1800, DailyRuntimeHours: 1.5, WeeklyRuntimeHours: 7},
			{Name: "Living Room TV", DeviceType: domain.DeviceTypeTV, Category: domain.CategoryElectronics, EstimatedWattage: 120, DailyRuntimeHours: 6, WeeklyRuntimeHours: 35},
			{Name: "Home PC", DeviceType: domain.DeviceTypePC, Category: domain.CategoryElectronics, EstimatedWattage: 300, DailyRuntimeHours: 4, WeeklyRuntimeHours: 25},
			{Name: "Gaming Console", DeviceType: domain.DeviceTypeGamingConsole, Category: domain.CategoryElectronics, EstimatedWattage: 150, DailyRuntimeHours: 3, WeeklyRuntimeHours: 15},
			{Name: "Living Areas Lighting", DeviceType: domain.DeviceTypeLEDLights, Category: domain.CategoryLighting, EstimatedWattage: 200, DailyRuntimeHours: 8, WeeklyRuntimeHours: 50},
			{Name: "Water Heater", DeviceType: domain.DeviceTypeWaterHeater, Category: domain.CategoryWaterHeating, EstimatedWattage: 4000, DailyRuntimeHours: 3, WeeklyRuntimeHours: 15},
		},
		TypicalMonthlyKwh:  450,
		TypicalMonthlyCost: 120.0,
	},
	{
		Key:         domain.ScenarioEVOwner,
		Name:        "EV Owner Home",
		Description: "Modern home with electric vehicle charging and energy-efficient appliances",
		Property: domain.PropertySeed{
			Name:         "EV Owner Home",
			PropertyType: "home",
			Address:      "456 Green Energy Lane",
			City:         "Ghent",
			PostalCode:   "9000",
			Region:       "flanders",
			SquareMeters: 180,
			Occupants:    2,
			MeterID:      "BE_EV_005678",
			Tariff: domain.Tariff{
				TariffType:       domain.TariffDynamic,
				SingleRate:       0.25,
				FixedMonthlyCost: 50.0,
				GridCost:         0.06,
				TaxesPercentage:  21.0,
			},
		},
		Devices: []domain.DeviceSeed{
			{Name: "Energy Efficient Fridge", DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, EstimatedWattage: 120, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168},
			{Name: "Heat Pump", DeviceType: domain.DeviceTypeHeatPump, Category: domain.CategoryHeatingCooling, EstimatedWattage: 3500, DailyRuntimeHours: 6, WeeklyRuntimeHours: 35},
			{Name: "EV Home Charger", DeviceType: domain.DeviceTypeEVCharger, Category: domain.CategoryEVCharging, EstimatedWattage: 7400, DailyRuntimeHours: 3, WeeklyRuntimeHours: 15},
			{Name: "Smart TV", DeviceType: domain.DeviceTypeTV, Category: domain.CategoryElectronics, EstimatedWattage: 100, DailyRuntimeHours: 5, WeeklyRuntimeHours: 30},
			{Name: "Home Office Setup", DeviceType: domain.DeviceTypePC, Category: domain.CategoryElectronics, EstimatedWattage: 250, DailyRuntimeHours: 8, WeeklyRuntimeHours: 40},
			{Name: "Smart LED Lighting", DeviceType: domain.DeviceTypeSmartBulbs, Category: domain.CategoryLighting, EstimatedWattage: 150, DailyRuntimeHours: 7, WeeklyRuntimeHours: 45},
			{Name: "Efficient Dishwasher", DeviceType: domain.DeviceTypeDishwasher, Category: domain.CategoryMajorAppliances, EstimatedWattage: 1500, DailyRuntimeHours: 1, WeeklyRuntimeHours: 6},
		},
		TypicalMonthlyKwh:  720,
		TypicalMonthlyCost: 185.0,
	},
	{
		Key:         domain.ScenarioSmallBusiness,
		Name:        "Small Office",
		Description: "Small business office with computers, lighting, and basic amenities",
		Property: domain.PropertySeed{
			Name:         "Small Business Office",
			PropertyType: "office",
			Address:      "789 Business Park",
			City:         "Antwerp",
			PostalCode:   "2000",
			Region:       "flanders",
			SquareMeters: 120,
			Occupants:    8,
			MeterID:      "BE_BIZ_009012",
			Tariff: domain.Tariff{
				TariffType:       domain.TariffSingle,
				SingleRate:       0.22,
				FixedMonthlyCost: 75.0,
				GridCost:         0.04,
				TaxesPercentage:  21.0,
			},
		},
		Devices: []domain.DeviceSeed{
			{Name: "Office Computers (8x)", DeviceType: domain.DeviceTypePC, Category: domain.CategoryElectronics, EstimatedWattage: 2400, DailyRuntimeHours: 9, WeeklyRuntimeHours: 45},
			{Name: "LED Office Lighting", DeviceType: domain.DeviceTypeLEDLights, Category: domain.CategoryLighting, EstimatedWattage: 300, DailyRuntimeHours: 10, WeeklyRuntimeHours: 50},
			{Name: "Office Fridge", DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, EstimatedWattage: 200, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168},
			{Name: "Microwave", DeviceType: domain.DeviceTypeMicrowave, Category: domain.CategoryMajorAppliances, EstimatedWattage: 1200, DailyRuntimeHours: 0.5, WeeklyRuntimeHours: 2.5},
			{Name: "Network Equipment", DeviceType: domain.DeviceTypeRouter, Category: domain.CategoryElectronics, EstimatedWattage: 50, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168},
			{Name: "AC System", DeviceType: domain.DeviceTypeACUnit, Category: domain.CategoryHeatingCooling, EstimatedWattage: 3000, DailyRuntimeHours: 6, WeeklyRuntimeHours: 30},
		},
		TypicalMonthlyKwh:  380,
		TypicalMonthlyCost: 95.0,
	},
	{
		Key:         domain.ScenarioStudioApartment,
		Name:        "Studio Apartment",
		Description: "Compact living space with essential appliances for 1-2 people",
		Property: domain.PropertySeed{
			Name:         "Studio Apartment",
			PropertyType: "home",
			Address:      "321 Student Quarter",
			City:         "Leuven",
			PostalCode:   "3000",
			Region:       "flanders",
			SquareMeters: 45,
			Occupants:    1,
			MeterID:      "BE_STU_003456",
			Tariff: domain.Tariff{
				TariffType:       domain.TariffSingle,
				SingleRate:       0.30,
				FixedMonthlyCost: 35.0,
				GridCost:         0.05,
				TaxesPercentage:  21.0,
			},
		},
		Devices: []domain.DeviceSeed{
			{Name: "Compact Fridge", DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, EstimatedWattage: 100, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168},
			{Name: "Laptop", DeviceType: domain.DeviceTypeLaptop, Category: domain.CategoryElectronics, EstimatedWattage: 65, DailyRuntimeHours: 8, WeeklyRuntimeHours: 50},
			{Name: "Small TV", DeviceType: domain.DeviceTypeTV, Category: domain.CategoryElectronics, EstimatedWattage: 80, DailyRuntimeHours: 4, WeeklyRuntimeHours: 25},
			{Name: "Studio Lighting", DeviceType: domain.DeviceTypeLEDLights, Category: domain.CategoryLighting, EstimatedWattage: 50, DailyRuntimeHours: 6, WeeklyRuntimeHours: 35},
			{Name: "Microwave", DeviceType: domain.DeviceTypeMicrowave, Category: domain.CategoryMajorAppliances, EstimatedWattage: 900, DailyRuntimeHours: 0.5, WeeklyRuntimeHours: 3},
			{Name: "Electric Heater", DeviceType: domain.DeviceTypeElectricHeater, Category: domain.CategoryHeatingCooling, EstimatedWattage: 1500, DailyRuntimeHours: 4, WeeklyRuntimeHours: 25},
		},
		TypicalMonthlyKwh:  180,
		TypicalMonthlyCost: 65.0,
	},
	{
		Key:         domain.ScenarioSmartHome,
		Name:        "Smart Home",
		Description: "Technology-forward home with smart devices and energy monitoring",
		Property: domain.PropertySeed{
			Name:         "Smart Home",
			PropertyType: "home",
			Address:      "555 Tech Valley",
			City:         "Bruges",
			PostalCode:   "8000",
			Region:       "flanders",
			SquareMeters: 200,
			Occupants:    3,
			MeterID:      "BE_SMT_007890",
			Tariff: domain.Tariff{
				TariffType:       domain.TariffDynamic,
				SingleRate:       0.24,
				FixedMonthlyCost: 55.0,
				GridCost:         0.06,
				TaxesPercentage:  21.0,
			},
		},
		Devices: []domain.DeviceSeed{
			{Name: "Smart Fridge", DeviceType: domain.DeviceTypeRefrigerator, Category: domain.CategoryMajorAppliances, EstimatedWattage: 140, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168, SmartIntegrationID: "smart_plug_01"},
			{Name: "Smart Heat Pump", DeviceType: domain.DeviceTypeHeatPump, Category: domain.CategoryHeatingCooling, EstimatedWattage: 3200, DailyRuntimeHours: 7, WeeklyRuntimeHours: 40, SmartIntegrationID: "smart_plug_02"},
			{Name: "Home Server", DeviceType: domain.DeviceTypePC, Category: domain.CategoryElectronics, EstimatedWattage: 200, DailyRuntimeHours: 24, WeeklyRuntimeHours: 168, SmartIntegrationID: "smart_plug_03"},
			{Name: "Smart Lighting System", DeviceType: domain.DeviceTypeSmartBulbs, Category: domain.CategoryLighting, EstimatedWattage: 180, DailyRuntimeHours: 8, WeeklyRuntimeHours: 50, SmartIntegrationID: "smart_switch_01"},
			{Name: "Gaming Setup", DeviceType: domain.DeviceTypeGamingConsole, Category: domain.CategoryElectronics, EstimatedWattage: 180, DailyRuntimeHours: 4, WeeklyRuntimeHours: 20, SmartIntegrationID: "smart_plug_04"},
			{Name: "Smart Dishwasher", DeviceType: domain.DeviceTypeDishwasher, Category: domain.CategoryMajorAppliances, EstimatedWattage: 1600, DailyRuntimeHours: 1.5, WeeklyRuntimeHours: 8, SmartIntegrationID: "smart_plug_05"},
		},
		TypicalMonthlyKwh:  520,
		TypicalMonthlyCost: 140.0,
	},
}

var scenariosByKey = func() map[domain.ScenarioKey]domain.Scenario {
	byKey := make(map[domain.ScenarioKey]domain.Scenario, len(scenarios))
	for _, sc := range scenarios {
		byKey[sc.Key] = sc
	}
	return byKey
}()
