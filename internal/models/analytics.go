package models

import "time"

type DeviceBreakdown struct {
	Desktop int64 `json:"desktop"`
	Mobile  int64 `json:"mobile"`
	Tablet  int64 `json:"tablet"`
}

type PlatformBreakdown struct {
	Facebook  int64 `json:"facebook"`
	Google    int64 `json:"google"`
	Instagram int64 `json:"instagram"`
	Other     int64 `json:"other"`
}

// Analytics is a per-campaign time-series record keyed by date. Rows are
// immutable once written.
type Analytics struct {
	ID                string            `json:"id"`
	CampaignID        string            `json:"campaign"`
	Date              time.Time         `json:"date"`
	Impressions       int64             `json:"impressions"`
	Clicks            int64             `json:"clicks"`
	Conversions       int64             `json:"conversions"`
	Spend             float64           `json:"spend"`
	DeviceBreakdown   DeviceBreakdown   `json:"deviceBreakdown"`
	PlatformBreakdown PlatformBreakdown `json:"platformBreakdown"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// AggregatedStats is the result of the analytics rollup query.
type AggregatedStats struct {
	TotalImpressions  int64   `json:"totalImpressions"`
	TotalClicks       int64   `json:"totalClicks"`
	TotalConversions  int64   `json:"totalConversions"`
	TotalSpend        float64 `json:"totalSpend"`
	AvgCTR            float64 `json:"avgCTR"`
	AvgConversionRate float64 `json:"avgConversionRate"`
}
