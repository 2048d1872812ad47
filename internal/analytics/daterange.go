package analytics

import (
	"fmt"
	"time"

	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/models"
)

// DateRange represents a date range with start and end dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD to YYYY-MM-DD"
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s to %s",
		dateutils.ToISODate(dr.Start),
		dateutils.ToISODate(dr.End))
}

// Merge combines this date range with another, returning the overall range
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// DateRangeOf spans the earliest and latest transaction dates. Dates that
// do not parse are ignored.
func DateRangeOf(txs []models.Transaction) DateRange {
	var dr DateRange
	for _, tx := range txs {
		t, err := time.Parse(dateutils.DateLayoutISO, tx.Date)
		if err != nil {
			continue
		}
		dr = dr.Merge(DateRange{Start: t, End: t})
	}
	return dr
}
