package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const createPropertyBody = `{
	"name": "Canal House",
	"property_type": "home",
	"address": "Graslei 7",
	"city": "Ghent",
	"postal_code": "9000",
	"region": "flanders"
}`

func createTestProperty(t *testing.T, ts *testServer) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/properties", testAPIKey, strings.NewReader(createPropertyBody))
	require.Equal(t, http.StatusCreated, rec.Code)

	var property map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &property))
	id, _ := property["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestPropertyEndpointsRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/properties", "ev_live_key_BOGUS_nope", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAndListProperties(t *testing.T) {
	ts := newTestServer(t)

	propertyID := createTestProperty(t, ts)

	rec := ts.request(t, http.MethodGet, "/api/properties", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Properties []map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 1)
	require.Equal(t, propertyID, body.Properties[0]["id"])

	// A different key sees only its own properties.
	otherKey := "ev_live_key_OTHER_secret"
	ts.seedAPIKey(t, otherKey, []string{"api:full"})

	rec = ts.request(t, http.MethodGet, "/api/properties", otherKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Empty(t, body.Properties)
}

func TestCreatePropertyValidationEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/properties", testAPIKey,
		strings.NewReader(`{"name": "No Address"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error struct {
			Type string `json:"type"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "validation_error", body.Error.Type)
}

func TestPropertyDetailsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	propertyID := createTestProperty(t, ts)

	deviceBody := `{
		"name": "Heat Pump",
		"device_type": "heat_pump",
		"category": "heating_cooling",
		"estimated_wattage": 1000,
		"daily_runtime_hours": 2,
		"weekly_runtime_hours": 14
	}`
	rec := ts.request(t, http.MethodPost, "/api/properties/"+propertyID+"/devices", testAPIKey, strings.NewReader(deviceBody))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/properties/"+propertyID+"/details", testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var details struct {
		Property map[string]any   `json:"property"`
		Devices  []map[string]any `json:"devices"`
		Summary  struct {
			TotalDevices      int     `json:"total_devices"`
			TotalEstimatedKwh float64 `json:"total_estimated_kwh"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(t, propertyID, details.Property["id"])
	require.Len(t, details.Devices, 1)
	require.Equal(t, 1, details.Summary.TotalDevices)
	require.InDelta(t, 60.0, details.Summary.TotalEstimatedKwh, 0.001)
}

func TestUpdatePropertyEndpoint(t *testing.T) {
	ts := newTestServer(t)

	propertyID := createTestProperty(t, ts)

	rec := ts.request(t, http.MethodPatch, "/api/properties/"+propertyID, testAPIKey,
		strings.NewReader(`{"name": "Canal House South", "occupants": 3}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, "Canal House South", updated["name"])
	require.EqualValues(t, 3, updated["occupants"])
	require.Equal(t, "Graslei 7", updated["address"])

	rec = ts.request(t, http.MethodPatch, "/api/properties/"+propertyID, testAPIKey,
		strings.NewReader(`{"region": "luxembourg"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A different key cannot touch the property.
	otherKey := "ev_live_key_PATCHER_secret"
	ts.seedAPIKey(t, otherKey, []string{"api:full"})
	rec = ts.request(t, http.MethodPatch, "/api/properties/"+propertyID, otherKey,
		strings.NewReader(`{"name": "Hijacked"}`))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePropertyRejectsUnknownFields(t *testing.T) {
	ts := newTestServer(t)

	body := strings.Replace(createPropertyBody, `"name"`, `"surprise": true, "name"`, 1)
	rec := ts.request(t, http.MethodPost, "/api/properties", testAPIKey, strings.NewReader(body))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePropertyEndpoint(t *testing.T) {
	ts := newTestServer(t)

	propertyID := createTestProperty(t, ts)

	rec := ts.request(t, http.MethodDelete, "/api/properties/"+propertyID, testAPIKey, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/properties/"+propertyID+"/details", testAPIKey, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
