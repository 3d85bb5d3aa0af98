// Package stats reduces a price dataset to scalar summary statistics.
//
// Every query is a pure function of the dataset: the reducer never sorts,
// filters or otherwise mutates the records it was built with.
package stats

import (
	"fmt"
	"slices"

	"github.com/guregu/null/v6"

	"github.com/guttosm/pricestats/internal/domain/models"
)

// Reducer answers statistic queries over one Dataset.
type Reducer struct {
	records []models.DailyRecord
}

// NewReducer builds a Reducer over the dataset's records in source order.
func NewReducer(ds models.Dataset) *Reducer {
	return &Reducer{records: ds.Records}
}

// HighestValue returns the maximum non-null value of f.
func (r *Reducer) HighestValue(f models.Field) (float64, error) {
	return r.extreme(f, func(candidate, best float64) bool { return candidate > best })
}

// LowestValue returns the minimum non-null value of f.
func (r *Reducer) LowestValue(f models.Field) (float64, error) {
	return r.extreme(f, func(candidate, best float64) bool { return candidate < best })
}

func (r *Reducer) extreme(f models.Field, better func(candidate, best float64) bool) (float64, error) {
	if len(r.records) == 0 {
		return 0, ErrEmptyDataset
	}
	var (
		best  float64
		found bool
	)
	for _, rec := range r.records {
		v, err := rec.Value(f)
		if err != nil {
			return 0, err
		}
		if !v.Valid {
			continue
		}
		if !found || better(v.Float64, best) {
			best = v.Float64
			found = true
		}
	}
	if !found {
		return 0, &MissingFieldError{Field: f}
	}
	return best, nil
}

// MaxIntradayRange returns the largest high minus low of any single day.
// A null high or low on any day is a *MissingFieldError.
func (r *Reducer) MaxIntradayRange() (float64, error) {
	if len(r.records) == 0 {
		return 0, ErrEmptyDataset
	}
	var best float64
	for i, rec := range r.records {
		if !rec.High.Valid {
			return 0, &MissingFieldError{Field: models.FieldHigh, Date: rec.Date}
		}
		if !rec.Low.Valid {
			return 0, &MissingFieldError{Field: models.FieldLow, Date: rec.Date}
		}
		span := rec.High.Float64 - rec.Low.Float64
		if i == 0 || span > best {
			best = span
		}
	}
	return best, nil
}

// MaxInterdayCloseChange returns the largest difference between consecutive
// closing prices. Null closes are dropped first, so the day after a gap is
// compared with the last day that had a close.
func (r *Reducer) MaxInterdayCloseChange() (float64, error) {
	closes := make([]float64, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Close.Valid {
			closes = append(closes, rec.Close.Float64)
		}
	}
	if len(closes) < 2 {
		return 0, fmt.Errorf("%w: %d non-null closes, need 2", ErrInsufficientData, len(closes))
	}
	best := closes[1] - closes[0]
	for i := 2; i < len(closes); i++ {
		if d := closes[i] - closes[i-1]; d > best {
			best = d
		}
	}
	return best, nil
}

// AverageVolume returns the arithmetic mean of the daily volumes.
func (r *Reducer) AverageVolume() (float64, error) {
	vols, err := r.volumes()
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, v := range vols {
		sum += v
	}
	return sum / float64(len(vols)), nil
}

// MedianVolume returns the median daily volume, averaging the two middle
// values when the count is even.
func (r *Reducer) MedianVolume() (float64, error) {
	vols, err := r.volumes()
	if err != nil {
		return 0, err
	}
	slices.Sort(vols)
	mid := len(vols) / 2
	if len(vols)%2 == 1 {
		return vols[mid], nil
	}
	return (vols[mid-1] + vols[mid]) / 2, nil
}

// volumes returns a fresh slice so callers may sort it.
func (r *Reducer) volumes() ([]float64, error) {
	if len(r.records) == 0 {
		return nil, ErrEmptyDataset
	}
	out := make([]float64, 0, len(r.records))
	for _, rec := range r.records {
		if !rec.Volume.Valid {
			return nil, &MissingFieldError{Field: models.FieldVolume, Date: rec.Date}
		}
		out = append(out, rec.Volume.Float64)
	}
	return out, nil
}

// Summarize computes every statistic into a Summary. The first failing
// statistic aborts the run and is named in the returned error. Open is
// optional: when no record carries one, HighestOpen and LowestOpen stay null.
func (r *Reducer) Summarize() (*models.Summary, error) {
	s := &models.Summary{Records: len(r.records)}
	if len(r.records) == 0 {
		return nil, fmt.Errorf("summary: %w", ErrEmptyDataset)
	}
	s.FirstDate = r.records[0].Date
	s.LastDate = r.records[len(r.records)-1].Date

	if r.hasAny(models.FieldOpen) {
		hi, err := r.HighestValue(models.FieldOpen)
		if err != nil {
			return nil, fmt.Errorf("highest open: %w", err)
		}
		lo, err := r.LowestValue(models.FieldOpen)
		if err != nil {
			return nil, fmt.Errorf("lowest open: %w", err)
		}
		s.HighestOpen, s.LowestOpen = null.FloatFrom(hi), null.FloatFrom(lo)
	}

	steps := []struct {
		name string
		dst  *float64
		fn   func() (float64, error)
	}{
		{"highest high", &s.HighestHigh, func() (float64, error) { return r.HighestValue(models.FieldHigh) }},
		{"lowest low", &s.LowestLow, func() (float64, error) { return r.LowestValue(models.FieldLow) }},
		{"max intraday range", &s.MaxIntradayRange, r.MaxIntradayRange},
		{"max interday close change", &s.MaxInterdayCloseChange, r.MaxInterdayCloseChange},
		{"average volume", &s.AverageVolume, r.AverageVolume},
		{"median volume", &s.MedianVolume, r.MedianVolume},
	}
	for _, st := range steps {
		v, err := st.fn()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
		*st.dst = v
	}
	return s, nil
}

// hasAny reports whether at least one record has a non-null f.
func (r *Reducer) hasAny(f models.Field) bool {
	for _, rec := range r.records {
		if v, err := rec.Value(f); err == nil && v.Valid {
			return true
		}
	}
	return false
}
