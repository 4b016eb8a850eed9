package services

import (
	"context"
	"time"

	repo "github.com/tutorialhub/backend/internal/repository"
)

type AnalyticsService struct {
	analytics repo.Analytics
}

func NewAnalyticsService(a repo.Analytics) *AnalyticsService {
	return &AnalyticsService{analytics: a}
}

// RangeReport is the admin analytics payload over a date range.
type RangeReport struct {
	From         time.Time        `json:"from"`
	To           time.Time        `json:"to"`
	NewUsers     []repo.DayCount  `json:"new_users"`
	NewTutorials []repo.DayCount  `json:"new_tutorials"`
	TotalViews   int64            `json:"total_views"`
}

// Report aggregates per-day creation counts between from and to (exclusive).
// A zero "to" means now; a zero "from" means 30 days before "to".
func (s *AnalyticsService) Report(ctx context.Context, from, to time.Time) (RangeReport, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if !from.Before(to) {
		return RangeReport{}, invalid("from must be before to")
	}

	users, err := s.analytics.NewUsersByDay(ctx, from, to)
	if err != nil {
		return RangeReport{}, err
	}
	tutorials, err := s.analytics.NewTutorialsByDay(ctx, from, to)
	if err != nil {
		return RangeReport{}, err
	}
	views, err := s.analytics.TotalViews(ctx)
	if err != nil {
		return RangeReport{}, err
	}
	return RangeReport{From: from, To: to, NewUsers: users, NewTutorials: tutorials, TotalViews: views}, nil
}
