package persistence

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/go-faster/errors"

	"github.com/fedspend/awards-api/modules/search/domain"
	"github.com/fedspend/awards-api/pkg/composables"
	"github.com/fedspend/awards-api/pkg/fiscal"
)

// The store groups by calendar year and month; the fiscal mapping happens in
// Go through pkg/fiscal so the fiscal calendar lives in exactly one place.
// Each monthly subtotal is summed in numeric and cast once on the way out.
const spendingQuery = `
	SELECT
		EXTRACT(YEAR FROM action_date)::int,
		EXTRACT(MONTH FROM action_date)::int,
		COALESCE(SUM(federal_action_obligation), 0)::float8
	FROM transaction_normalized
	%s
	GROUP BY 1, 2
	ORDER BY 1, 2`

type SpendingRepository struct{}

func NewSpendingRepository() domain.Repository {
	return &SpendingRepository{}
}

func (r *SpendingRepository) SpendingOverTime(ctx context.Context, group domain.Group, filters domain.Filters) ([]domain.Bucket, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	where, args := buildFilters(filters)
	rows, err := tx.Query(ctx, fmt.Sprintf(spendingQuery, where), args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate spending over time")
	}
	defer rows.Close()

	totals := []monthTotal{}
	for rows.Next() {
		var mt monthTotal
		if err := rows.Scan(&mt.year, &mt.month, &mt.amount); err != nil {
			return nil, errors.Wrap(err, "failed to scan spending subtotal")
		}
		totals = append(totals, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bucketize(group, totals), nil
}

// monthTotal is one calendar-month obligation subtotal as read from the store.
type monthTotal struct {
	year   int
	month  int
	amount float64
}

// bucketize folds calendar-month subtotals into fiscal buckets. The input is
// in calendar order, which is also fiscal-chronological order, so months of
// the same bucket are contiguous and a single merge pass suffices.
func bucketize(group domain.Group, totals []monthTotal) []domain.Bucket {
	buckets := []domain.Bucket{}
	for _, mt := range totals {
		d := time.Date(mt.year, time.Month(mt.month), 1, 0, 0, 0, 0, time.UTC)
		period := map[string]string{"fiscal_year": strconv.Itoa(fiscal.Year(d))}
		switch group {
		case domain.GroupQuarter:
			period["quarter"] = strconv.Itoa(fiscal.Quarter(d))
		case domain.GroupMonth:
			period["month"] = strconv.Itoa(fiscal.Month(d))
		}

		if n := len(buckets); n > 0 && maps.Equal(buckets[n-1].TimePeriod, period) {
			buckets[n-1].AggregatedAmount += mt.amount
			continue
		}
		buckets = append(buckets, domain.Bucket{
			TimePeriod:       period,
			AggregatedAmount: mt.amount,
		})
	}
	return buckets
}

func buildFilters(filters domain.Filters) (string, []any) {
	clauses := []string{}
	args := []any{}

	if len(filters.AwardTypeCodes) > 0 {
		args = append(args, filters.AwardTypeCodes)
		clauses = append(clauses, fmt.Sprintf("type = ANY($%d)", len(args)))
	}

	if len(filters.TimePeriod) > 0 {
		windows := make([]string, 0, len(filters.TimePeriod))
		for _, period := range filters.TimePeriod {
			args = append(args, period.StartDate)
			start := len(args)
			args = append(args, period.EndDate)
			windows = append(windows, fmt.Sprintf("action_date BETWEEN $%d AND $%d", start, start+1))
		}
		clauses = append(clauses, "("+strings.Join(windows, " OR ")+")")
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}
