// Package openweather implements the weather provider port against the
// OpenWeatherMap current-weather API.
package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Client fetches current weather observations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        zerolog.Logger
}

// compile-time interface assertion
var _ ports.WeatherProvider = (*Client)(nil)

// NewClient constructs an OpenWeatherMap client. The circuit breaker opens
// after repeated consecutive failures so a dead upstream fails fast instead
// of tying up request handlers.
func NewClient(httpClient *http.Client, baseURL, apiKey string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "openweather",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// An unknown location is a caller problem, not upstream trouble.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		breaker:    breaker,
		log:        log,
	}
}

// Fetch retrieves the current observation for a location query (city name or
// "lat,lon") and validates it into a domain snapshot. Unknown locations
// return an error wrapping domain.ErrNotFound.
func (c *Client) Fetch(ctx context.Context, location string) (domain.WeatherSnapshot, error) {
	query := url.Values{}
	query.Set("q", location)
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	endpoint := fmt.Sprintf("%s/data/2.5/weather?%s", c.baseURL, query.Encode())

	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.get(ctx, endpoint)
	})
	if err != nil {
		return domain.WeatherSnapshot{}, err
	}

	var raw currentWeather
	if err := json.Unmarshal(body, &raw); err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("openweather adapter: decode response: %w", err)
	}

	return mapToSnapshot(raw)
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("openweather adapter: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather adapter: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("openweather adapter: %w", domain.ErrNotFound)
	default:
		return nil, fmt.Errorf("openweather adapter: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openweather adapter: read response: %w", err)
	}
	return body, nil
}
