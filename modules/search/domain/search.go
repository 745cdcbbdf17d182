package domain

import (
	"context"

	"github.com/go-faster/errors"
)

var ErrInvalidGroup = errors.New("invalid group")

// Group is the time bucket of a spending-over-time aggregation.
type Group string

const (
	GroupFiscalYear Group = "fiscal_year"
	GroupQuarter    Group = "quarter"
	GroupMonth      Group = "month"
)

// ParseGroup accepts the short and long aliases of each bucket. An empty
// value defaults to fiscal year.
func ParseGroup(raw string) (Group, error) {
	switch raw {
	case "", "fy", "fiscal_year":
		return GroupFiscalYear, nil
	case "q", "quarter":
		return GroupQuarter, nil
	case "m", "month":
		return GroupMonth, nil
	default:
		return "", errors.Wrapf(ErrInvalidGroup, "%q", raw)
	}
}

// TimePeriod is one action-date window filter, inclusive on both ends.
type TimePeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Filters narrows the transactions feeding the aggregation.
type Filters struct {
	AwardTypeCodes []string     `json:"award_type_codes,omitempty"`
	TimePeriod     []TimePeriod `json:"time_period,omitempty"`
}

// Bucket is one aggregated time bucket. The period keys present depend on
// the group: fiscal_year always, plus quarter or month when requested.
type Bucket struct {
	TimePeriod       map[string]string `json:"time_period"`
	AggregatedAmount float64           `json:"aggregated_amount"`
}

type Repository interface {
	// SpendingOverTime sums obligations per fiscal bucket, ordered
	// chronologically.
	SpendingOverTime(ctx context.Context, group Group, filters Filters) ([]Bucket, error)
}
