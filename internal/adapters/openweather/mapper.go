package openweather

import "github.com/whitmore-labs/skylark/internal/core/domain"

// mapToSnapshot converts a raw API response into a validated domain snapshot.
// Validation of required fields happens in the domain constructor; this only
// reshapes the wire format.
func mapToSnapshot(raw currentWeather) (domain.WeatherSnapshot, error) {
	condition := ""
	if len(raw.Weather) > 0 {
		condition = raw.Weather[0].Main
	}

	return domain.NewWeatherSnapshot(domain.SnapshotInput{
		TemperatureC:     raw.Main.Temp,
		Condition:        condition,
		WindSpeed:        raw.Wind.Speed,
		Humidity:         raw.Main.Humidity,
		VisibilityMeters: raw.Visibility,
		SunriseEpoch:     raw.Sys.Sunrise,
		SunsetEpoch:      raw.Sys.Sunset,
		ObservationEpoch: raw.Dt,
	})
}
