package quandl

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/guregu/null/v6"

	"github.com/guttosm/pricestats/internal/domain/models"
)

const dateLayout = "2006-01-02"

// ColumnAliases maps each record field to the column headers that may carry
// it, in order of preference. Databases name their columns differently
// (FSE uses "Open"/"Close", HKEX "Nominal Price"/"Previous Close").
type ColumnAliases map[models.Field][]string

// DefaultColumnAliases covers the free Quandl equity databases.
var DefaultColumnAliases = ColumnAliases{
	models.FieldOpen:   {"Open", "Nominal Price"},
	models.FieldHigh:   {"High"},
	models.FieldLow:    {"Low"},
	models.FieldClose:  {"Close", "Last", "Previous Close"},
	models.FieldVolume: {"Volume", "Traded Volume", "Share Volume (000)"},
}

// optionalFields may be absent from a dataset; their values are then null.
var optionalFields = map[models.Field]bool{
	models.FieldOpen: true,
}

// columnIndex holds the resolved position of each column in a data row.
// A negative index means the column is absent.
type columnIndex struct {
	date   int
	fields map[models.Field]int
}

// DecodeDataset turns a time-series response body into a Dataset.
//
// Columns are located by header name, never by position. It fails on:
//   - a quandl_error payload
//   - a missing Date column or a missing required field column
//   - a row whose length differs from the header
//   - a non-numeric price/volume cell, a malformed date, or a negative volume
//   - a date that appears in more than one row
//
// Null cells are kept as null values.
func DecodeDataset(body []byte, aliases ColumnAliases) (*models.Dataset, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	if apiErr := errorFromDoc(doc); apiErr != nil {
		return nil, apiErr
	}

	rawNames, err := jsonpath.Get("$.dataset.column_names", doc)
	if err != nil {
		return nil, fmt.Errorf("read column_names: %w", err)
	}
	names, err := toStrings(rawNames)
	if err != nil {
		return nil, fmt.Errorf("read column_names: %w", err)
	}

	idx, err := resolveColumns(names, aliases)
	if err != nil {
		return nil, err
	}

	rawRows, err := jsonpath.Get("$.dataset.data", doc)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	rows, ok := rawRows.([]any)
	if !ok {
		return nil, fmt.Errorf("read data: expected array, got %T", rawRows)
	}

	ds := &models.Dataset{
		DatabaseCode: stringAt(doc, "$.dataset.database_code"),
		DatasetCode:  stringAt(doc, "$.dataset.dataset_code"),
		Name:         stringAt(doc, "$.dataset.name"),
		ColumnNames:  names,
		Records:      make([]models.DailyRecord, 0, len(rows)),
	}

	seen := make(map[time.Time]int, len(rows))
	for i, raw := range rows {
		row, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("row %d: expected array, got %T", i+1, raw)
		}
		if len(row) != len(names) {
			return nil, fmt.Errorf("row %d: invalid column count: expected %d got %d", i+1, len(names), len(row))
		}
		rec, err := rowToRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if first, dup := seen[rec.Date]; dup {
			return nil, fmt.Errorf("row %d: duplicate Date %s (first in row %d)", i+1, rec.Date.Format(dateLayout), first)
		}
		seen[rec.Date] = i + 1
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

func resolveColumns(names []string, aliases ColumnAliases) (columnIndex, error) {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[strings.TrimSpace(n)] = i
	}

	idx := columnIndex{date: -1, fields: make(map[models.Field]int, len(models.Fields))}
	if i, ok := pos["Date"]; ok {
		idx.date = i
	} else {
		return idx, fmt.Errorf("missing column Date in %v", names)
	}

	var missing []string
	for _, f := range models.Fields {
		idx.fields[f] = -1
		for _, alias := range aliases[f] {
			if i, ok := pos[alias]; ok {
				idx.fields[f] = i
				break
			}
		}
		if idx.fields[f] < 0 && !optionalFields[f] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("no column for fields %s in %v", strings.Join(missing, ", "), names)
	}
	return idx, nil
}

func rowToRecord(row []any, idx columnIndex) (models.DailyRecord, error) {
	var r models.DailyRecord

	s, ok := row[idx.date].(string)
	if !ok {
		return r, fmt.Errorf("invalid Date: %v", row[idx.date])
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return r, fmt.Errorf("invalid Date: %v", err)
	}
	r.Date = d

	targets := map[models.Field]*null.Float{
		models.FieldOpen:   &r.Open,
		models.FieldHigh:   &r.High,
		models.FieldLow:    &r.Low,
		models.FieldClose:  &r.Close,
		models.FieldVolume: &r.Volume,
	}
	for f, dst := range targets {
		i := idx.fields[f]
		if i < 0 {
			continue
		}
		v, err := toNullFloat(row[i])
		if err != nil {
			return r, fmt.Errorf("invalid %s: %w", f, err)
		}
		*dst = v
	}

	if r.Volume.Valid && r.Volume.Float64 < 0 {
		return r, fmt.Errorf("invalid volume: negative value %v", r.Volume.Float64)
	}
	return r, nil
}

func toNullFloat(v any) (null.Float, error) {
	switch n := v.(type) {
	case nil:
		return null.Float{}, nil
	case float64:
		return null.FloatFrom(n), nil
	default:
		return null.Float{}, fmt.Errorf("expected number or null, got %T", v)
	}
}

func toStrings(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

// stringAt returns the string at path or "" when absent.
func stringAt(doc any, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func errorFromDoc(doc any) *APIError {
	if _, err := jsonpath.Get("$.quandl_error", doc); err != nil {
		return nil
	}
	return &APIError{
		Code:    stringAt(doc, "$.quandl_error.code"),
		Message: stringAt(doc, "$.quandl_error.message"),
	}
}
