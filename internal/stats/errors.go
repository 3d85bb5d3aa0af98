package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/pricestats/internal/domain/models"
)

var (
	// ErrEmptyDataset is returned when a reduction has no records to work on.
	ErrEmptyDataset = errors.New("empty dataset")

	// ErrInsufficientData is returned when a pairwise comparison has fewer
	// than two usable values.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingField matches every *MissingFieldError via errors.Is.
	ErrMissingField = errors.New("missing field")
)

// MissingFieldError reports a null value where the statistic has no
// null-handling policy. Date is zero when no single record is to blame
// (every value of the field was null).
type MissingFieldError struct {
	Field models.Field
	Date  time.Time
}

func (e *MissingFieldError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("missing field %s: no non-null values", e.Field)
	}
	return fmt.Sprintf("missing field %s on %s", e.Field, e.Date.Format("2006-01-02"))
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
