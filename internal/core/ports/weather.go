package ports

import (
	"context"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

// WeatherProvider fetches one validated weather observation for a location.
// Implementations return an error wrapping domain.ErrNotFound when the
// location is unknown to the provider.
type WeatherProvider interface {
	Fetch(ctx context.Context, location string) (domain.WeatherSnapshot, error)
}
