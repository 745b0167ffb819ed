package analytics

import (
	"time"

	"review_insights/internal/domain"
)

type Period string

const (
	Last30Days  Period = "30days"
	Last90Days  Period = "90days"
	Last6Months Period = "6months"
	LastYear    Period = "1year"
	AllTime     Period = "all"

	DefaultPeriod = Last6Months
)

var periodLabels = map[Period]string{
	Last30Days:  "Last 30 days",
	Last90Days:  "Last 90 days",
	Last6Months: "Last 6 months",
	LastYear:    "Last year",
	AllTime:     "All time",
}

// ParsePeriod accepts the query values above; empty means DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if _, ok := periodLabels[p]; !ok {
		return "", domain.ErrInvalidPeriod
	}
	return p, nil
}

func (p Period) Label() string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return periodLabels[DefaultPeriod]
}

// Window resolves p to the half-open range [from, until) ending at now.
// Month and year windows are calendar based.
func (p Period) Window(now time.Time) (from, until time.Time) {
	until = now
	switch p {
	case Last30Days:
		from = now.AddDate(0, 0, -30)
	case Last90Days:
		from = now.AddDate(0, 0, -90)
	case LastYear:
		from = now.AddDate(-1, 0, 0)
	case AllTime:
		from = time.Unix(0, 0).UTC()
	default:
		from = now.AddDate(0, -6, 0)
	}
	return from, until
}
