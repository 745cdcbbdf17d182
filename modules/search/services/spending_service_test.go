package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedspend/awards-api/modules/search/domain"
	"github.com/fedspend/awards-api/modules/search/services"
)

type fakeSpendingRepo struct {
	group   domain.Group
	filters domain.Filters
	buckets []domain.Bucket
}

func (f *fakeSpendingRepo) SpendingOverTime(_ context.Context, group domain.Group, filters domain.Filters) ([]domain.Bucket, error) {
	f.group = group
	f.filters = filters
	return f.buckets, nil
}

func TestSpendingOverTime_GroupAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want domain.Group
	}{
		{"fy", domain.GroupFiscalYear},
		{"fiscal_year", domain.GroupFiscalYear},
		{"", domain.GroupFiscalYear},
		{"q", domain.GroupQuarter},
		{"quarter", domain.GroupQuarter},
		{"m", domain.GroupMonth},
		{"month", domain.GroupMonth},
	}

	for _, tt := range tests {
		t.Run("alias "+tt.raw, func(t *testing.T) {
			t.Parallel()

			repo := &fakeSpendingRepo{}
			svc := services.NewSpendingService(repo)

			result, err := svc.SpendingOverTime(context.Background(), tt.raw, &domain.Filters{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Group)
			assert.Equal(t, tt.want, repo.group)
		})
	}
}

func TestSpendingOverTime_InvalidGroup(t *testing.T) {
	t.Parallel()

	svc := services.NewSpendingService(&fakeSpendingRepo{})
	_, err := svc.SpendingOverTime(context.Background(), "decade", &domain.Filters{})
	require.ErrorIs(t, err, domain.ErrInvalidGroup)
}

func TestSpendingOverTime_MissingFilters(t *testing.T) {
	t.Parallel()

	svc := services.NewSpendingService(&fakeSpendingRepo{})
	_, err := svc.SpendingOverTime(context.Background(), "fy", nil)
	require.ErrorIs(t, err, services.ErrMissingFilters)
}

func TestSpendingOverTime_DefaultWindow(t *testing.T) {
	t.Parallel()

	repo := &fakeSpendingRepo{}
	svc := services.NewSpendingService(repo)
	services.SetNow(svc, func() time.Time {
		return time.Date(2019, time.November, 15, 0, 0, 0, 0, time.UTC)
	})

	_, err := svc.SpendingOverTime(context.Background(), "fy", &domain.Filters{})
	require.NoError(t, err)

	// November 2019 is already fiscal year 2020, so the default window runs
	// through 2020-09-30.
	require.Len(t, repo.filters.TimePeriod, 1)
	assert.Equal(t, services.APISearchMinDate, repo.filters.TimePeriod[0].StartDate)
	assert.Equal(t, "2020-09-30", repo.filters.TimePeriod[0].EndDate)
}

func TestSpendingOverTime_ExplicitWindowKept(t *testing.T) {
	t.Parallel()

	repo := &fakeSpendingRepo{buckets: []domain.Bucket{
		{TimePeriod: map[string]string{"fiscal_year": "2018"}, AggregatedAmount: 100},
	}}
	svc := services.NewSpendingService(repo)

	window := domain.TimePeriod{StartDate: "2017-10-01", EndDate: "2018-09-30"}
	result, err := svc.SpendingOverTime(context.Background(), "fy", &domain.Filters{
		TimePeriod: []domain.TimePeriod{window},
	})
	require.NoError(t, err)

	assert.Equal(t, []domain.TimePeriod{window}, repo.filters.TimePeriod)
	require.Len(t, result.Results, 1)
	assert.Equal(t, 100.0, result.Results[0].AggregatedAmount)
}
