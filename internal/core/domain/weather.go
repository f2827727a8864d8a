package domain

import (
	"fmt"
	"strings"
)

// DefaultVisibilityKm is assumed when the observation carries no visibility reading.
const DefaultVisibilityKm = 10.0

// DayPeriod is the coarse time-of-day bucket derived from an observation.
type DayPeriod string

const (
	PeriodDay   DayPeriod = "day"
	PeriodNight DayPeriod = "night"
)

// WeatherSnapshot is a single validated weather observation. Build it with
// NewWeatherSnapshot; it is never mutated after construction.
type WeatherSnapshot struct {
	TemperatureC     float64
	Condition        string
	WindSpeed        float64
	Humidity         float64
	VisibilityKm     float64
	SunriseEpoch     int64
	SunsetEpoch      int64
	ObservationEpoch int64
}

// SnapshotInput carries raw observation values before validation. Required
// fields are pointers so that an absent reading is distinguishable from a
// zero one; VisibilityMeters alone is optional.
type SnapshotInput struct {
	TemperatureC     *float64
	Condition        string
	WindSpeed        *float64
	Humidity         *float64
	VisibilityMeters *float64
	SunriseEpoch     *int64
	SunsetEpoch      *int64
	ObservationEpoch *int64
}

// NewWeatherSnapshot validates the input and builds an immutable snapshot.
// A missing required field is a caller contract violation and returns an
// error wrapping ErrInvalidSnapshot naming every absent field; values are
// never guessed.
func NewWeatherSnapshot(in SnapshotInput) (WeatherSnapshot, error) {
	var missing []string
	if in.TemperatureC == nil {
		missing = append(missing, "temperature")
	}
	if strings.TrimSpace(in.Condition) == "" {
		missing = append(missing, "condition")
	}
	if in.WindSpeed == nil {
		missing = append(missing, "windSpeed")
	}
	if in.Humidity == nil {
		missing = append(missing, "humidity")
	}
	if in.SunriseEpoch == nil {
		missing = append(missing, "sunrise")
	}
	if in.SunsetEpoch == nil {
		missing = append(missing, "sunset")
	}
	if in.ObservationEpoch == nil {
		missing = append(missing, "observation")
	}
	if len(missing) > 0 {
		return WeatherSnapshot{}, fmt.Errorf("%w: missing %s", ErrInvalidSnapshot, strings.Join(missing, ", "))
	}

	visibility := DefaultVisibilityKm
	if in.VisibilityMeters != nil {
		visibility = *in.VisibilityMeters / 1000.0
	}

	return WeatherSnapshot{
		TemperatureC:     *in.TemperatureC,
		Condition:        in.Condition,
		WindSpeed:        *in.WindSpeed,
		Humidity:         *in.Humidity,
		VisibilityKm:     visibility,
		SunriseEpoch:     *in.SunriseEpoch,
		SunsetEpoch:      *in.SunsetEpoch,
		ObservationEpoch: *in.ObservationEpoch,
	}, nil
}

// Period reports whether the observation happened during daylight.
// The bounds are inclusive: an observation exactly at sunrise or sunset
// counts as day.
func (s WeatherSnapshot) Period() DayPeriod {
	if s.SunriseEpoch <= s.ObservationEpoch && s.ObservationEpoch <= s.SunsetEpoch {
		return PeriodDay
	}
	return PeriodNight
}

func (s WeatherSnapshot) conditionContains(needle string) bool {
	return strings.Contains(strings.ToLower(s.Condition), needle)
}
