package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/guregu/null/v6"

	"github.com/guttosm/pricestats/internal/domain/models"
	"github.com/guttosm/pricestats/internal/quandl"
	"github.com/guttosm/pricestats/internal/stats"
)

type stubFetcher struct {
	ds    *models.Dataset
	err   error
	calls int
	last  quandl.Request
}

func (s *stubFetcher) FetchDataset(_ context.Context, req quandl.Request) (*models.Dataset, error) {
	s.calls++
	s.last = req
	return s.ds, s.err
}

var _ Fetcher = (*stubFetcher)(nil)

func dataset() *models.Dataset {
	d := func(day int) time.Time { return time.Date(2020, 1, day, 0, 0, 0, 0, time.UTC) }
	return &models.Dataset{
		DatabaseCode: "HKEX",
		DatasetCode:  "58538",
		Records: []models.DailyRecord{
			{Date: d(2), Open: null.FloatFrom(10), High: null.FloatFrom(12), Low: null.FloatFrom(9), Close: null.FloatFrom(11), Volume: null.FloatFrom(100)},
			{Date: d(3), Open: null.FloatFrom(11), High: null.FloatFrom(15), Low: null.FloatFrom(10), Close: null.Float{}, Volume: null.FloatFrom(300)},
			{Date: d(6), Open: null.FloatFrom(14), High: null.FloatFrom(16), Low: null.FloatFrom(13), Close: null.FloatFrom(15), Volume: null.FloatFrom(200)},
		},
	}
}

func TestSummaryService_GetSummary(t *testing.T) {
	f := &stubFetcher{ds: dataset()}
	svc := NewSummaryService(f, "key-1")

	out, err := svc.GetSummary(context.Background(), Query{Dataset: "hkex/58538", Year: 2020})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.Dataset != "HKEX/58538" || out.Year != 2020 || out.Records != 3 {
		t.Fatalf("unexpected header: %+v", out)
	}
	if out.HighestOpen.Float64 != 14 || out.LowestOpen.Float64 != 10 || out.MaxIntradayRange != 5 || out.MaxInterdayCloseChange != 4 {
		t.Fatalf("unexpected prices: %+v", out)
	}
	if out.AverageVolume != 200 || out.MedianVolume != 200 {
		t.Fatalf("unexpected volumes: %+v", out)
	}

	// the request covers exactly one year and carries the key
	if f.last.Database != "HKEX" || f.last.Dataset != "58538" || f.last.APIKey != "key-1" {
		t.Fatalf("unexpected request: %+v", f.last)
	}
	if !f.last.StartDate.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) || !f.last.EndDate.Equal(time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range: %v..%v", f.last.StartDate, f.last.EndDate)
	}
}

func TestSummaryService_GetSummary_WithoutOpenColumn(t *testing.T) {
	ds := dataset()
	for i := range ds.Records {
		ds.Records[i].Open = null.Float{}
	}
	svc := NewSummaryService(&stubFetcher{ds: ds}, "")

	out, err := svc.GetSummary(context.Background(), Query{Dataset: "HKEX/58538", Year: 2020})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.HighestOpen.Valid || out.LowestOpen.Valid {
		t.Fatalf("open extremes should be null: %+v", out)
	}
	if out.MaxIntradayRange != 5 || out.MedianVolume != 200 {
		t.Fatalf("unexpected summary: %+v", out)
	}
}

func TestSummaryService_TableDriven(t *testing.T) {
	cases := []struct {
		name      string
		fetcher   *stubFetcher
		query     Query
		wantErr   error
		wantCalls int
	}{
		{name: "fetch error", fetcher: &stubFetcher{err: errors.New("boom")}, query: Query{Dataset: "HKEX/1", Year: 2020}, wantCalls: 1},
		{name: "empty dataset", fetcher: &stubFetcher{ds: &models.Dataset{DatabaseCode: "HKEX", DatasetCode: "1"}}, query: Query{Dataset: "HKEX/1", Year: 2020}, wantErr: stats.ErrEmptyDataset, wantCalls: 1},
		{name: "bad code", fetcher: &stubFetcher{}, query: Query{Dataset: "HKEX", Year: 2020}, wantCalls: 0},
		{name: "bad year", fetcher: &stubFetcher{}, query: Query{Dataset: "HKEX/1", Year: 20}, wantCalls: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewSummaryService(tc.fetcher, "")
			out, err := svc.GetSummary(context.Background(), tc.query)
			if err == nil || out != nil {
				t.Fatalf("expected error, got out=%+v err=%v", out, err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if tc.fetcher.calls != tc.wantCalls {
				t.Fatalf("fetch calls: want %d got %d", tc.wantCalls, tc.fetcher.calls)
			}
		})
	}
}

func TestSummaryService_GetStatistic(t *testing.T) {
	cases := []struct {
		stat  Statistic
		field models.Field
		want  float64
	}{
		{StatHighest, models.FieldHigh, 16},
		{StatLowest, models.FieldLow, 9},
		{StatHighest, models.FieldVolume, 300},
		{StatMaxIntradayRange, "", 5},
		{StatMaxInterdayCloseChange, "", 4},
		{StatAverageVolume, "", 200},
		{StatMedianVolume, "", 200},
	}
	for _, tc := range cases {
		t.Run(string(tc.stat)+"/"+string(tc.field), func(t *testing.T) {
			svc := NewSummaryService(&stubFetcher{ds: dataset()}, "")
			got, err := svc.GetStatistic(context.Background(), Query{Dataset: "HKEX/58538", Year: 2020}, tc.stat, tc.field)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestSummaryService_GetStatistic_Errors(t *testing.T) {
	f := &stubFetcher{ds: dataset()}
	svc := NewSummaryService(f, "")
	q := Query{Dataset: "HKEX/58538", Year: 2020}

	if _, err := svc.GetStatistic(context.Background(), q, StatHighest, ""); err == nil {
		t.Fatalf("expected error for missing field")
	}
	if _, err := svc.GetStatistic(context.Background(), q, "mode", ""); err == nil {
		t.Fatalf("expected error for unknown statistic")
	}
	if f.calls != 0 {
		t.Fatalf("argument validation should not fetch, calls=%d", f.calls)
	}
}

func TestParseStatistic(t *testing.T) {
	for _, s := range Statistics {
		got, err := ParseStatistic(string(s))
		if err != nil || got != s {
			t.Fatalf("ParseStatistic(%q)=%q,%v", s, got, err)
		}
	}
	if _, err := ParseStatistic("max"); err == nil {
		t.Fatalf("expected error")
	}
	if !StatLowest.NeedsField() || StatMedianVolume.NeedsField() {
		t.Fatalf("NeedsField mismatch")
	}
}
