package service

import (
	"math/rand"
	"time"

	catalogdomain "github.com/enervue/enervue/internal/catalog/domain"
)

const (
	mockHours    = 168
	mockDays     = 7
	daysPerMonth = 30.0

	// Fraction of hourly load that is always present (fridges, routers,
	// standby draw).
	baseLoadShare = 0.15

	jitterFraction = 0.10
)

// hourWeight shapes the synthetic curve: evenings peak, nights trough, and
// weekends sit slightly higher than weekdays.
func hourWeight(ts time.Time) float64 {
	weight := baseLoadShare

	switch hour := ts.Hour(); {
	case hour >= 17 && hour <= 22:
		weight += 1.0
	case hour >= 7 && hour <= 16:
		weight += 0.6
	case hour == 23 || hour == 6:
		weight += 0.35
	default:
		weight += 0.1
	}

	if weekday := ts.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
		weight *= 1.2
	}

	return weight
}

// generateMockReadings synthesizes one week of hourly consumption ending at
// end, scaled so the weekly total approximates the scenario's typical monthly
// consumption prorated to seven days. Jitter keeps the series non-constant
// without drifting the aggregate far from the target.
func generateMockReadings(scenario *catalogdomain.Scenario, end time.Time, rng *rand.Rand) []mockReading {
	weeklyTarget := scenario.TypicalMonthlyKwh * mockDays / daysPerMonth
	start := end.Add(-mockHours * time.Hour)

	timestamps := make([]time.Time, 0, mockHours)
	weights := make([]float64, 0, mockHours)
	var weightSum float64
	for i := 0; i < mockHours; i++ {
		ts := start.Add(time.Duration(i+1) * time.Hour)
		weight := hourWeight(ts)
		timestamps = append(timestamps, ts)
		weights = append(weights, weight)
		weightSum += weight
	}

	readings := make([]mockReading, 0, mockHours)
	for i, ts := range timestamps {
		kwh := weeklyTarget * weights[i] / weightSum
		jitter := 1 + (rng.Float64()*2-1)*jitterFraction
		readings = append(readings, mockReading{
			timestamp:      ts,
			consumptionKwh: kwh * jitter,
		})
	}

	return readings
}

type mockReading struct {
	timestamp      time.Time
	consumptionKwh float64
}
