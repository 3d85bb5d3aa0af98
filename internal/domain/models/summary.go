package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// Summary holds every statistic computed over one dataset for one year.
//
// Fields:
//   - Dataset: the "DATABASE/DATASET" code (e.g. "HKEX/58538").
//   - Records: number of daily records reduced.
//   - FirstDate, LastDate: dates of the first and last record in source order.
//   - HighestOpen, LowestOpen: extremes of the opening price; null when the
//     dataset has no open column.
//   - HighestHigh, LowestLow: extremes of the intraday prices.
//   - MaxIntradayRange: largest high minus low within one day.
//   - MaxInterdayCloseChange: largest rise between consecutive non-null closes.
//   - AverageVolume, MedianVolume: daily traded volume.
//
// swagger:model Summary
type Summary struct {
	Dataset                string     `json:"dataset" example:"HKEX/58538"`
	Year                   int        `json:"year" example:"2020"`
	Records                int        `json:"records" example:"248"`
	FirstDate              time.Time  `json:"first_date"`
	LastDate               time.Time  `json:"last_date"`
	HighestOpen            null.Float `json:"highest_open" swaggertype:"number" example:"53.5"`
	LowestOpen             null.Float `json:"lowest_open" swaggertype:"number" example:"31.2"`
	HighestHigh            float64    `json:"highest_high" example:"54.0"`
	LowestLow              float64    `json:"lowest_low" example:"30.85"`
	MaxIntradayRange       float64    `json:"max_intraday_range" example:"3.4"`
	MaxInterdayCloseChange float64    `json:"max_interday_close_change" example:"2.75"`
	AverageVolume          float64    `json:"average_volume" example:"1234.56"`
	MedianVolume           float64    `json:"median_volume" example:"1020"`
}
