package logic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/betgenius/predictions-api/internal/models"
)

// DefaultPastLimit caps the past predictions used for display and stats
const DefaultPastLimit = 10

type dashboardService struct {
	store     PredictionStore
	pastLimit int
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewDashboardService(store PredictionStore, pastLimit int, now func() time.Time, logger *zap.Logger) DashboardService {
	if pastLimit <= 0 {
		pastLimit = DefaultPastLimit
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		store:     store,
		pastLimit: pastLimit,
		now:       now,
		logger:    logger.Sugar(),
	}
}

// Load fetches today's predictions and the most recent past ones
// concurrently. Both fetches always run to completion; a failed fetch leaves
// its list empty and its error is returned with the partial dashboard.
func (s *dashboardService) Load(ctx context.Context) (*models.Dashboard, error) {
	dayStart, dayEnd := CalendarDay(s.now())
	dash := models.EmptyDashboard()

	var todayErr, pastErr error
	var g errgroup.Group

	g.Go(func() error {
		rows, err := s.store.Query(ctx, PredictionFilter{
			EventDateFrom: dayStart,
			EventDateTo:   dayEnd,
			OrderBy:       "event_date",
		})
		if err != nil {
			dashboardFetchErrors.WithLabelValues("today").Inc()
			todayErr = fmt.Errorf("fetch today's predictions: %w", err)
			return nil
		}
		dash.Today = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.store.Query(ctx, PredictionFilter{
			EventDateBefore: dayStart,
			OrderBy:         "event_date",
			Descending:      true,
			Limit:           s.pastLimit,
		})
		if err != nil {
			dashboardFetchErrors.WithLabelValues("past").Inc()
			pastErr = fmt.Errorf("fetch past predictions: %w", err)
			return nil
		}
		dash.Past = rows
		return nil
	})

	// Neither fetch cancels the other; failures are collected above
	g.Wait()

	dash.Stats = ComputeStats(dash.Past)
	if err := errors.Join(todayErr, pastErr); err != nil {
		s.logger.Warnw("Dashboard loaded with errors", "error", err, "today", len(dash.Today), "past", len(dash.Past))
		return dash, err
	}
	return dash, nil
}

// CalendarDay returns the inclusive bounds of t's UTC calendar day,
// 00:00:00 through 23:59:59.
func CalendarDay(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24*time.Hour - time.Second)
}

// ComputeStats aggregates the given past predictions. Rates are zero, not
// NaN, when there is nothing to aggregate.
func ComputeStats(past []models.Prediction) models.DashboardStats {
	total := len(past)
	if total == 0 {
		return models.DashboardStats{}
	}

	var won int
	var oddsSum float64
	for _, p := range past {
		if p.Status == models.StatusWon {
			won++
		}
		oddsSum += p.Odds
	}

	return models.DashboardStats{
		TotalPredictions: total,
		SuccessRate:      float64(won) / float64(total) * 100,
		AverageOdds:      oddsSum / float64(total),
	}
}
