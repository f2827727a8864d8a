package openweather

// currentWeather represents the OpenWeatherMap current-weather response.
// Pointer fields distinguish an absent reading from a zero one so the domain
// can reject incomplete observations instead of guessing.
type currentWeather struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Visibility *float64 `json:"visibility"` // meters, may be absent
	Dt         *int64   `json:"dt"`
}
