package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/app"
	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/gtfs/gtfstest"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/metrics"
	"github.com/sudface/frequency/internal/models"
	"github.com/sudface/frequency/internal/schedule"
)

// createTestApi creates a new RestAPI over the sample feed.
func createTestApi(t *testing.T, configure ...func(*appconf.Config)) *RestAPI {
	t.Helper()

	var logs bytes.Buffer
	logger := logging.NewStructuredLogger(&logs, slog.LevelInfo)

	gtfsConfig := gtfs.Config{Source: gtfstest.WriteDir(t, gtfstest.Sample())}
	gtfsManager, err := gtfs.InitGTFSManager(context.Background(), gtfsConfig, nil, logger)
	require.NoError(t, err)
	t.Cleanup(gtfsManager.Shutdown)

	config := appconf.Config{
		Env:        appconf.Test,
		RouteTypes: []int{schedule.BusRouteType},
		RateLimit:  100,
	}
	for _, fn := range configure {
		fn(&config)
	}

	api := NewRestAPI(&app.Application{
		Config:      config,
		GtfsConfig:  gtfsConfig,
		Logger:      logger,
		GtfsManager: gtfsManager,
		Metrics:     metrics.NewCollector(),
		Profiles:    schedule.DefaultProfiles(),
	})
	t.Cleanup(api.Close)
	return api
}

// serveApiAndRetrieveBody makes a GET request against the full handler
// chain and returns the response with its body read.
func serveApiAndRetrieveBody(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(api.Routes())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// serveApiAndRetrieveEndpoint decodes the response envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	resp, body := serveApiAndRetrieveBody(t, api, endpoint)
	var response models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &response), string(body))
	return resp, response
}

func entryOf(t *testing.T, response models.ResponseModel) map[string]interface{} {
	t.Helper()

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)
	return entry
}
