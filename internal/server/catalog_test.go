package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListDeviceTemplatesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/catalog/device-templates", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		DeviceTemplates []map[string]any `json:"device_templates"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.DeviceTemplates, 20)

	rec = ts.request(t, http.MethodGet, "/api/catalog/device-templates?category=lighting", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.DeviceTemplates)
	for _, template := range body.DeviceTemplates {
		require.Equal(t, "lighting", template["category"])
	}
}

func TestGetDeviceTemplateEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/catalog/device-templates/ev_charger", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var template map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &template))
	require.Equal(t, "ev_charger", template["device_type"])

	rec = ts.request(t, http.MethodGet, "/api/catalog/device-templates/flux_capacitor", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUsageScenarioEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, "/api/catalog/usage-scenarios", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UsageScenarios []map[string]any `json:"usage_scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.UsageScenarios, 5)

	rec = ts.request(t, http.MethodGet, "/api/catalog/usage-scenarios/family_home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var scenario map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scenario))
	require.Equal(t, "family_home", scenario["scenario_key"])

	rec = ts.request(t, http.MethodGet, "/api/catalog/usage-scenarios/mansion", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
