package models

import "sort"

// CropInfo describes one crop's growing requirements
type CropInfo struct {
	Cycle       int    `json:"cycle"`       // days to maturity
	Temperature string `json:"temperature"` // preferred range, e.g. "15-25°C"
	Water       string `json:"water"`       // qualitative requirement, e.g. "moderate"
}

// CropTable maps a crop name to its CropInfo.
// Serialized as a plain JSON object keyed by crop name.
type CropTable map[string]CropInfo

// Clone returns an independent copy of the table
func (t CropTable) Clone() CropTable {
	out := make(CropTable, len(t))
	for name, info := range t {
		out[name] = info
	}
	return out
}

// Names returns the crop names in lexical order
func (t CropTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecommendedCrop is one entry of a crop advisory
type RecommendedCrop struct {
	Name             string `json:"name"`
	Season           string `json:"season"`
	WaterRequirement string `json:"waterRequirement"`
}

// WeatherAlert is an advisory notice about upcoming weather
type WeatherAlert struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
}

// CropAdvisory bundles seasonal crop recommendations, soil types and alerts
type CropAdvisory struct {
	RecommendedCrops []RecommendedCrop `json:"recommendedCrops"`
	SoilTypes        []string          `json:"soilTypes"`
	WeatherAlerts    []WeatherAlert    `json:"weatherAlerts"`
}

// Clone returns a deep copy of the advisory
func (a CropAdvisory) Clone() CropAdvisory {
	return CropAdvisory{
		RecommendedCrops: append([]RecommendedCrop(nil), a.RecommendedCrops...),
		SoilTypes:        append([]string(nil), a.SoilTypes...),
		WeatherAlerts:    append([]WeatherAlert(nil), a.WeatherAlerts...),
	}
}
