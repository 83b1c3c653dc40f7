package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apikeydomain "github.com/enervue/enervue/internal/apikey/domain"
)

func TestImportReadingsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	propertyID := createTestProperty(t, ts)

	csv := "timestamp,consumption_kwh,production_kwh\n" +
		"2026-03-01T00:00:00Z,0.42,0.0\n" +
		"not-a-date,0.5\n" +
		"2026-03-01T02:00:00Z,0.38,0.0\n"

	rec := ts.request(t, http.MethodPost,
		"/api/properties/"+propertyID+"/readings/import?granularity=hourly",
		testAPIKey, strings.NewReader(csv))
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		ImportID         string `json:"import_id"`
		ReadingsImported int    `json:"readings_imported"`
		Errors           []struct {
			Line    int    `json:"line"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.NotEmpty(t, result.ImportID)
	require.Equal(t, 2, result.ReadingsImported)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 3, result.Errors[0].Line)

	rec = ts.request(t, http.MethodGet, "/api/properties/"+propertyID+"/readings", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed struct {
		Readings []map[string]any `json:"readings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Readings, 2)

	rec = ts.request(t, http.MethodGet, "/api/properties/"+propertyID+"/imports", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var imports struct {
		Imports []struct {
			Status       string `json:"status"`
			RowsImported int    `json:"rows_imported"`
			RowsFailed   int    `json:"rows_failed"`
		} `json:"imports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imports))
	require.Len(t, imports.Imports, 1)
	require.Equal(t, 2, imports.Imports[0].RowsImported)
	require.Equal(t, 1, imports.Imports[0].RowsFailed)
}

func TestImportReadingsScopeEnforcement(t *testing.T) {
	ts := newTestServer(t)
	propertyID := createTestProperty(t, ts)

	// A key without the write scope cannot import.
	readOnlyKey := "ev_live_key_READONLY_secret"
	ts.seedAPIKey(t, readOnlyKey, []string{"catalog:read"})

	rec := ts.request(t, http.MethodPost,
		"/api/properties/"+propertyID+"/readings/import?granularity=hourly",
		readOnlyKey, strings.NewReader("timestamp,consumption_kwh\n2026-03-01T00:00:00Z,0.5\n"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The dedicated write scope is enough.
	writerKey := "ev_live_key_WRITER_secret"
	ts.seedAPIKey(t, writerKey, []string{apikeydomain.ScopeReadingsWrite})

	// The writer key belongs to a different user, so the property is not theirs.
	rec = ts.request(t, http.MethodPost,
		"/api/properties/"+propertyID+"/readings/import?granularity=hourly",
		writerKey, strings.NewReader("timestamp,consumption_kwh\n2026-03-01T00:00:00Z,0.5\n"))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImportReadingsValidation(t *testing.T) {
	ts := newTestServer(t)
	propertyID := createTestProperty(t, ts)

	rec := ts.request(t, http.MethodPost,
		"/api/properties/"+propertyID+"/readings/import?granularity=fortnightly",
		testAPIKey, strings.NewReader("timestamp,consumption_kwh\n2026-03-01T00:00:00Z,0.5\n"))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.request(t, http.MethodPost,
		"/api/properties/"+propertyID+"/readings/import?granularity=hourly",
		testAPIKey, strings.NewReader(""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
