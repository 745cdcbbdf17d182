package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/fedspend/awards-api/modules/search/domain"
	"github.com/fedspend/awards-api/pkg/fiscal"
)

// APISearchMinDate is the earliest action date the search surface covers;
// transactions before it are not loaded.
const APISearchMinDate = "2007-10-01"

var ErrMissingFilters = errors.New("missing request parameters: filters")

// SpendingResult is the spending_over_time response body.
type SpendingResult struct {
	Group   domain.Group    `json:"group"`
	Results []domain.Bucket `json:"results"`
}

type SpendingService struct {
	repo domain.Repository
	now  func() time.Time
}

func NewSpendingService(repo domain.Repository) *SpendingService {
	return &SpendingService{repo: repo, now: time.Now}
}

// SpendingOverTime aggregates obligations into fiscal buckets. The group
// accepts short and long aliases and defaults to fiscal year; filters are
// required but the time-period window is not. Without a window the query
// spans APISearchMinDate through the end of the current fiscal year, so
// callers do not see truncated histories.
func (s *SpendingService) SpendingOverTime(ctx context.Context, groupRaw string, filters *domain.Filters) (*SpendingResult, error) {
	group, err := domain.ParseGroup(groupRaw)
	if err != nil {
		return nil, err
	}
	if filters == nil {
		return nil, ErrMissingFilters
	}

	effective := *filters
	if len(effective.TimePeriod) == 0 {
		effective.TimePeriod = []domain.TimePeriod{{
			StartDate: APISearchMinDate,
			EndDate:   fiscal.YearEnd(fiscal.Year(s.now().UTC())).Format("2006-01-02"),
		}}
	}

	buckets, err := s.repo.SpendingOverTime(ctx, group, effective)
	if err != nil {
		return nil, err
	}
	return &SpendingResult{Group: group, Results: buckets}, nil
}
