package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/samber/do"
)

const (
	ORACLE_FEED_TIMEOUT       = 5 * time.Second
	ORACLE_FEED_RETRIES       = 2
	ORACLE_FEED_RETRY_BACKOFF = 500 * time.Millisecond
)

// ServiceOracle supplies the actual price direction per asset symbol at
// scoring time. Without a configured feed it serves a fixed table; with one
// it fetches a snapshot over HTTP and soft-fails back to the table.
type ServiceOracle struct {
	feedURL string
	client  *httpclient.Client
}

func NewServiceOracle(container *do.Injector) (*ServiceOracle, error) {
	vs, err := do.InvokeNamed[map[string]string](container, "envs")
	if err != nil {
		return nil, err
	}

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(ORACLE_FEED_TIMEOUT),
		httpclient.WithRetryCount(ORACLE_FEED_RETRIES),
		httpclient.WithRetrier(heimdall.NewRetrier(heimdall.NewConstantBackoff(ORACLE_FEED_RETRY_BACKOFF, 100*time.Millisecond))),
	)

	return &ServiceOracle{
		feedURL: vs[ENV_ORACLE_FEED_URL],
		client:  client,
	}, nil
}

// GetActualDirections returns the direction verdict per asset symbol,
// normalized to lowercase "up"/"down".
func (service *ServiceOracle) GetActualDirections(ctx context.Context) map[string]string {
	if service.feedURL == "" {
		return staticDirections()
	}

	directions, err := service.fetchFeedSnapshot(ctx)
	if err != nil {
		log.Println("oracle feed unavailable, falling back to static table:", err)
		return staticDirections()
	}

	return directions
}

func (service *ServiceOracle) fetchFeedSnapshot(ctx context.Context) (map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, service.feedURL, nil)
	if err != nil {
		return nil, err
	}

	res, err := service.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle feed status %d", res.StatusCode)
	}

	var raw map[string]string
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, err
	}

	directions := make(map[string]string, len(raw))
	for symbol, direction := range raw {
		direction = strings.ToLower(direction)
		if direction != "up" && direction != "down" {
			continue
		}
		directions[symbol] = direction
	}

	return directions, nil
}

// Placeholder oracle table, replaced by the live feed snapshot when
// ORACLE_FEED_URL is configured.
func staticDirections() map[string]string {
	return map[string]string{
		"BTC":   "up",
		"ETH":   "down",
		"SUI":   "up",
		"SOL":   "down",
		"BNB":   "up",
		"XRP":   "down",
		"ADA":   "up",
		"DOGE":  "down",
		"AVAX":  "up",
		"MATIC": "down",
	}
}
