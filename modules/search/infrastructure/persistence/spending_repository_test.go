package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedspend/awards-api/modules/search/domain"
)

func TestBucketize_FiscalYear(t *testing.T) {
	t.Parallel()

	// September 2018 closes fiscal 2018; October 2018 opens fiscal 2019.
	totals := []monthTotal{
		{year: 2018, month: 8, amount: 10},
		{year: 2018, month: 9, amount: 20},
		{year: 2018, month: 10, amount: 40},
		{year: 2019, month: 1, amount: 80},
	}

	buckets := bucketize(domain.GroupFiscalYear, totals)
	require.Len(t, buckets, 2)
	assert.Equal(t, map[string]string{"fiscal_year": "2018"}, buckets[0].TimePeriod)
	assert.Equal(t, 30.0, buckets[0].AggregatedAmount)
	assert.Equal(t, map[string]string{"fiscal_year": "2019"}, buckets[1].TimePeriod)
	assert.Equal(t, 120.0, buckets[1].AggregatedAmount)
}

func TestBucketize_QuarterMerge(t *testing.T) {
	t.Parallel()

	// October through December collapse into fiscal 2019 Q1; January opens Q2.
	totals := []monthTotal{
		{year: 2018, month: 10, amount: 1},
		{year: 2018, month: 11, amount: 2},
		{year: 2018, month: 12, amount: 4},
		{year: 2019, month: 1, amount: 8},
	}

	buckets := bucketize(domain.GroupQuarter, totals)
	require.Len(t, buckets, 2)
	assert.Equal(t, map[string]string{"fiscal_year": "2019", "quarter": "1"}, buckets[0].TimePeriod)
	assert.Equal(t, 7.0, buckets[0].AggregatedAmount)
	assert.Equal(t, map[string]string{"fiscal_year": "2019", "quarter": "2"}, buckets[1].TimePeriod)
	assert.Equal(t, 8.0, buckets[1].AggregatedAmount)
}

func TestBucketize_MonthMapping(t *testing.T) {
	t.Parallel()

	totals := []monthTotal{
		{year: 2018, month: 10, amount: 5},
		{year: 2019, month: 1, amount: 6},
		{year: 2019, month: 9, amount: 7},
	}

	buckets := bucketize(domain.GroupMonth, totals)
	require.Len(t, buckets, 3)
	assert.Equal(t, map[string]string{"fiscal_year": "2019", "month": "1"}, buckets[0].TimePeriod)
	assert.Equal(t, map[string]string{"fiscal_year": "2019", "month": "4"}, buckets[1].TimePeriod)
	assert.Equal(t, map[string]string{"fiscal_year": "2019", "month": "12"}, buckets[2].TimePeriod)
}

func TestBucketize_Empty(t *testing.T) {
	t.Parallel()

	buckets := bucketize(domain.GroupFiscalYear, nil)
	assert.NotNil(t, buckets)
	assert.Empty(t, buckets)
}

func TestBuildFilters(t *testing.T) {
	t.Parallel()

	t.Run("no filters", func(t *testing.T) {
		t.Parallel()

		where, args := buildFilters(domain.Filters{})
		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("type codes and windows", func(t *testing.T) {
		t.Parallel()

		where, args := buildFilters(domain.Filters{
			AwardTypeCodes: []string{"A", "B"},
			TimePeriod: []domain.TimePeriod{
				{StartDate: "2017-10-01", EndDate: "2018-09-30"},
				{StartDate: "2019-10-01", EndDate: "2020-09-30"},
			},
		})
		assert.Equal(t,
			"WHERE type = ANY($1) AND (action_date BETWEEN $2 AND $3 OR action_date BETWEEN $4 AND $5)",
			where,
		)
		require.Len(t, args, 5)
		assert.Equal(t, []string{"A", "B"}, args[0])
		assert.Equal(t, "2019-10-01", args[3])
	})
}
