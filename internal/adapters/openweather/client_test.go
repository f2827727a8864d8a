package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

const validBody = `{
	"weather": [{"main": "Clear", "description": "clear sky"}],
	"main": {"temp": 35.2, "humidity": 60},
	"wind": {"speed": 3.4},
	"sys": {"sunrise": 1630569600, "sunset": 1630612800},
	"visibility": 8000,
	"dt": 1630590000
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "test-key", zerolog.Nop())
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Boston", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(validBody))
	})

	s, err := client.Fetch(context.Background(), "Boston")
	require.NoError(t, err)
	assert.InDelta(t, 35.2, s.TemperatureC, 1e-9)
	assert.Equal(t, "Clear", s.Condition)
	assert.InDelta(t, 3.4, s.WindSpeed, 1e-9)
	assert.InDelta(t, 60, s.Humidity, 1e-9)
	assert.InDelta(t, 8.0, s.VisibilityKm, 1e-9)
	assert.Equal(t, int64(1630590000), s.ObservationEpoch)
}

func TestFetch_VisibilityDefaultsWhenAbsent(t *testing.T) {
	body := `{
		"weather": [{"main": "Clouds"}],
		"main": {"temp": 18, "humidity": 70},
		"wind": {"speed": 2},
		"sys": {"sunrise": 1630569600, "sunset": 1630612800},
		"dt": 1630590000
	}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	s, err := client.Fetch(context.Background(), "Boston")
	require.NoError(t, err)
	assert.InDelta(t, domain.DefaultVisibilityKm, s.VisibilityKm, 1e-9)
}

func TestFetch_UnknownLocation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Fetch(context.Background(), "Nowhere")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch_IncompleteObservation(t *testing.T) {
	// Temperature missing entirely: surfaced as an invalid snapshot, never
	// silently defaulted.
	body := `{
		"weather": [{"main": "Clear"}],
		"main": {"humidity": 60},
		"wind": {"speed": 3},
		"sys": {"sunrise": 1630569600, "sunset": 1630612800},
		"dt": 1630590000
	}`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	_, err := client.Fetch(context.Background(), "Boston")
	require.ErrorIs(t, err, domain.ErrInvalidSnapshot)
	assert.Contains(t, err.Error(), "temperature")
}

func TestFetch_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	for i := 0; i < 5; i++ {
		_, err := client.Fetch(context.Background(), "Boston")
		require.Error(t, err)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}

	_, err := client.Fetch(context.Background(), "Boston")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestFetch_NotFoundDoesNotTripBreaker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 10; i++ {
		_, err := client.Fetch(context.Background(), "Nowhere")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NotErrorIs(t, err, gobreaker.ErrOpenState)
	}
}
