package logic

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/betgenius/predictions-api/internal/models"
)

// SettleAfter is how far in the past a pending prediction must be dated
// before a rollover settles it.
const SettleAfter = 24 * time.Hour

type rolloverService struct {
	store     PredictionStore
	generator *Generator
	rand      RandSource
	now       func() time.Time
	logger    *zap.SugaredLogger
}

// NewRolloverService creates the rollover service. The generator and the
// outcome draw share src so a seeded source makes a run reproducible.
func NewRolloverService(store PredictionStore, src RandSource, now func() time.Time, logger *zap.Logger) RolloverService {
	if now == nil {
		now = time.Now
	}
	return &rolloverService{
		store:     store,
		generator: NewGenerator(src, now),
		rand:      src,
		now:       now,
		logger:    logger.Sugar(),
	}
}

// Run inserts a fresh batch of next-day predictions, then settles every
// pending prediction dated more than SettleAfter ago with a single outcome
// drawn once for the whole invocation. Any store error fails the run.
func (s *rolloverService) Run(ctx context.Context) (*models.RolloverResult, error) {
	start := time.Now()
	defer func() {
		rolloverDuration.Observe(time.Since(start).Seconds())
	}()

	batch := s.generator.Generate()

	inserted, err := s.store.Insert(ctx, batch)
	if err != nil {
		rolloverFailures.WithLabelValues("insert").Inc()
		s.logger.Errorw("Failed to insert predictions", "error", err, "batchSize", len(batch))
		return nil, err
	}
	predictionsGenerated.Add(float64(len(inserted)))

	cutoff := s.now().UTC().Add(-SettleAfter)
	outcome := models.StatusLost
	if s.rand.IntN(2) == 0 {
		outcome = models.StatusWon
	}

	settled, err := s.store.SettleExpired(ctx, cutoff, outcome, models.ResultMatchCompleted)
	if err != nil {
		rolloverFailures.WithLabelValues("settle").Inc()
		s.logger.Errorw("Failed to settle expired predictions", "error", err, "cutoff", cutoff, "outcome", outcome)
		return nil, err
	}
	predictionsSettled.WithLabelValues(string(outcome)).Add(float64(settled))

	s.logger.Infow("Rollover completed",
		"generated", len(batch),
		"inserted", len(inserted),
		"settled", settled,
		"outcome", outcome,
		"duration", time.Since(start),
	)

	return &models.RolloverResult{
		Generated: len(batch),
		Inserted:  inserted,
		Settled:   settled,
		Outcome:   outcome,
	}, nil
}
