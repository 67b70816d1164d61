package domain

import (
	"fmt"
	"time"
)

// Period is a closed date range [Start, End] used by flow reports.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod creates a Period, rejecting ranges where start is after end.
func NewPeriod(start, end time.Time) (Period, error) {
	if start.After(end) {
		return Period{}, fmt.Errorf("period start %s is after end %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return Period{Start: start, End: end}, nil
}

// Contains reports whether the date falls within the period, inclusive on
// both ends.
func (p Period) Contains(date time.Time) bool {
	return !date.Before(p.Start) && !date.After(p.End)
}
