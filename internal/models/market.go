package models

import "time"

// TimestampLayout is ISO-8601 in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CropPrice is the current market price of one crop
type CropPrice struct {
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"currentPrice"`
	Unit         string  `json:"unit"`
	Trend        string  `json:"trend"` // "up", "down" or "stable"
}

// MarketPrices is a price board stamped with the time it was produced
type MarketPrices struct {
	Crops       []CropPrice `json:"crops"`
	LastUpdated string      `json:"lastUpdated"`
}

// FormatTimestamp renders t in UTC using TimestampLayout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
