package models

import (
	"errors"
	"strconv"
)

// WeatherSample is an illustrative weather reading with a planting recommendation
type WeatherSample struct {
	Temperature    string `json:"temperature"`
	Humidity       string `json:"humidity"`
	Recommendation string `json:"recommendation"`
}

// LocalWeather is the weather summary returned for a coordinate pair
type LocalWeather struct {
	Temperature   float64 `json:"temperature"`   // °C
	Humidity      float64 `json:"humidity"`      // percent
	Precipitation float64 `json:"precipitation"` // mm
	WeatherType   string  `json:"weatherType"`
}

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// String renders the pair as "lat,lon" in shortest decimal form
func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Latitude, 'g', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'g', -1, 64)
}

// ParseCoordinates converts route variables into Coordinates. Values too
// large for a float64 saturate to ±Inf instead of failing.
func ParseCoordinates(latitude, longitude string) (Coordinates, error) {
	lat, err := parseDegrees(latitude)
	if err != nil {
		return Coordinates{}, &ValidationError{
			Field:   "latitude",
			Value:   latitude,
			Message: "invalid latitude, expected decimal degrees",
		}
	}

	lon, err := parseDegrees(longitude)
	if err != nil {
		return Coordinates{}, &ValidationError{
			Field:   "longitude",
			Value:   longitude,
			Message: "invalid longitude, expected decimal degrees",
		}
	}

	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

func parseDegrees(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if errors.Is(err, strconv.ErrRange) {
		return v, nil
	}
	return v, err
}

// ValidationError represents a data validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
