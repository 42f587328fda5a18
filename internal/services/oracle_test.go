package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetActualDirections_NoFeedUsesStaticTable(t *testing.T) {
	service := &ServiceOracle{}

	directions := service.GetActualDirections(context.Background())
	require.Len(t, directions, 10)
	assert.Equal(t, "up", directions["BTC"])
	assert.Equal(t, "down", directions["ETH"])
	for symbol, direction := range directions {
		assert.Contains(t, []string{"up", "down"}, direction, symbol)
	}
}

func TestGetActualDirections_FeedSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck
		w.Write([]byte(`{"BTC":"Down","ETH":"UP","SOL":"sideways"}`))
	}))
	defer srv.Close()

	service := &ServiceOracle{feedURL: srv.URL, client: httpclient.NewClient()}

	directions := service.GetActualDirections(context.Background())
	assert.Equal(t, map[string]string{
		"BTC": "down",
		"ETH": "up",
	}, directions)
}

func TestGetActualDirections_FeedFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close()

	service := &ServiceOracle{feedURL: srv.URL, client: httpclient.NewClient()}

	directions := service.GetActualDirections(context.Background())
	assert.Equal(t, staticDirections(), directions)
}
