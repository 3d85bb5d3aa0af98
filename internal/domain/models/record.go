package models

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"
)

// Field names one numeric column of a DailyRecord.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// Fields lists every numeric field in column order.
var Fields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// ParseField maps a user supplied name (e.g. a query parameter) to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q", s)
}

// DailyRecord represents one trading day of a price dataset.
//
// Fields:
//   - Date: trading day, unique within a Dataset.
//   - Open, High, Low, Close: prices; any of them may be null in the source.
//   - Volume: shares traded that day; null only when the source omits it.
type DailyRecord struct {
	Date   time.Time  `json:"date"`
	Open   null.Float `json:"open"`
	High   null.Float `json:"high"`
	Low    null.Float `json:"low"`
	Close  null.Float `json:"close"`
	Volume null.Float `json:"volume"`
}

// Value returns the record's value for f.
func (r DailyRecord) Value(f Field) (null.Float, error) {
	switch f {
	case FieldOpen:
		return r.Open, nil
	case FieldHigh:
		return r.High, nil
	case FieldLow:
		return r.Low, nil
	case FieldClose:
		return r.Close, nil
	case FieldVolume:
		return r.Volume, nil
	default:
		return null.Float{}, fmt.Errorf("unknown field %q", f)
	}
}

// Dataset is the ordered sequence of daily records returned for one ticker
// over one date range, together with the source metadata.
//
// Records keep the order in which the source returned them. A Dataset is
// never mutated after it has been decoded.
type Dataset struct {
	DatabaseCode string        `json:"database_code"`
	DatasetCode  string        `json:"dataset_code"`
	Name         string        `json:"name"`
	ColumnNames  []string      `json:"column_names"`
	Records      []DailyRecord `json:"records"`
}

// Code returns the "DATABASE/DATASET" identifier.
func (d Dataset) Code() string {
	return d.DatabaseCode + "/" + d.DatasetCode
}

// Span returns the first and last record dates in source order.
// Both are zero for an empty dataset.
func (d Dataset) Span() (first, last time.Time) {
	if len(d.Records) == 0 {
		return time.Time{}, time.Time{}
	}
	return d.Records[0].Date, d.Records[len(d.Records)-1].Date
}
