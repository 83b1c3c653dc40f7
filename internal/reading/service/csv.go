package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	readingdomain "github.com/enervue/enervue/internal/reading/domain"
)

// Timestamp layouts accepted in uploaded CSVs, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type parsedRow struct {
	timestamp      time.Time
	consumptionKwh float64
	productionKwh  float64
}

type parseResult struct {
	rows        []parsedRow
	errors      []readingdomain.RowError
	tooManyRows bool
}

// parseCSV splits content line by line so that row errors carry the original
// 1-based line number. The first line is skipped when it looks like the
// expected header.
func parseCSV(content string, maxRows int) parseResult {
	var result parseResult

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	startAt := 0
	if len(lines) > 0 && isHeader(lines[0]) {
		startAt = 1
	}

	for i := startAt; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if maxRows > 0 && len(result.rows) >= maxRows {
			result.tooManyRows = true
			return result
		}

		lineNo := i + 1
		row, err := parseLine(line)
		if err != nil {
			result.errors = append(result.errors, readingdomain.RowError{
				Line:    lineNo,
				Message: err.Error(),
			})
			continue
		}
		result.rows = append(result.rows, row)
	}

	return result
}

func isHeader(line string) bool {
	fields := splitFields(line)
	if len(fields) < 2 {
		return false
	}
	return strings.EqualFold(fields[0], "timestamp") &&
		strings.EqualFold(fields[1], "consumption_kwh")
}

func parseLine(line string) (parsedRow, error) {
	fields := splitFields(line)
	if len(fields) < 2 {
		return parsedRow{}, fmt.Errorf("expected at least 2 columns, got %d", len(fields))
	}

	ts, err := parseTimestamp(fields[0])
	if err != nil {
		return parsedRow{}, err
	}

	consumption, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || math.IsNaN(consumption) || math.IsInf(consumption, 0) {
		return parsedRow{}, fmt.Errorf("invalid consumption_kwh %q", fields[1])
	}
	if consumption < 0 {
		return parsedRow{}, fmt.Errorf("consumption_kwh must be >= 0, got %s", fields[1])
	}

	production := 0.0
	if len(fields) >= 3 && fields[2] != "" {
		production, err = strconv.ParseFloat(fields[2], 64)
		if err != nil || math.IsNaN(production) || math.IsInf(production, 0) {
			return parsedRow{}, fmt.Errorf("invalid production_kwh %q", fields[2])
		}
		if production < 0 {
			return parsedRow{}, fmt.Errorf("production_kwh must be >= 0, got %s", fields[2])
		}
	}

	return parsedRow{
		timestamp:      ts,
		consumptionKwh: consumption,
		productionKwh:  production,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		fields = append(fields, strings.TrimSpace(part))
	}
	return fields
}
