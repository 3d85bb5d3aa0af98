// Package report renders a Summary for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/guregu/null/v6"

	"github.com/guttosm/pricestats/internal/domain/models"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want text or json)", s)
	}
}

// Options tune the text output.
type Options struct {
	Format  Format
	NoColor bool
}

// Write renders s to w.
func Write(w io.Writer, s *models.Summary, opts Options) error {
	if opts.Format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return writeText(w, s, opts.NoColor)
}

type line struct {
	label string
	value null.Float
}

func writeText(w io.Writer, s *models.Summary, noColor bool) error {
	title := color.New(color.Bold, color.FgCyan)
	label := color.New(color.FgWhite)
	value := color.New(color.Bold, color.FgGreen)
	if noColor {
		for _, c := range []*color.Color{title, label, value} {
			c.DisableColor()
		}
	}

	header := fmt.Sprintf("%s %d (%d trading days", s.Dataset, s.Year, s.Records)
	if !s.FirstDate.IsZero() {
		header += fmt.Sprintf(", %s to %s", s.FirstDate.Format("2006-01-02"), s.LastDate.Format("2006-01-02"))
	}
	header += ")"
	if _, err := title.Fprintln(w, header); err != nil {
		return err
	}

	lines := []line{
		{"Highest opening price", s.HighestOpen},
		{"Lowest opening price", s.LowestOpen},
		{"Highest intraday price", null.FloatFrom(s.HighestHigh)},
		{"Lowest intraday price", null.FloatFrom(s.LowestLow)},
		{"Largest change in any one day", null.FloatFrom(s.MaxIntradayRange)},
		{"Largest change between any two days", null.FloatFrom(s.MaxInterdayCloseChange)},
		{"Average daily trading volume", null.FloatFrom(s.AverageVolume)},
		{"Median daily trading volume", null.FloatFrom(s.MedianVolume)},
	}
	for _, l := range lines {
		if _, err := label.Fprintf(w, "  %-38s", l.label+":"); err != nil {
			return err
		}
		text := "n/a"
		if l.value.Valid {
			text = formatNumber(l.value.Float64)
		}
		if _, err := value.Fprintln(w, text); err != nil {
			return err
		}
	}
	return nil
}

// formatNumber prints the shortest representation, dropping float noise
// such as 2.3000000000000007.
func formatNumber(v float64) string {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 6, 64), 64)
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
