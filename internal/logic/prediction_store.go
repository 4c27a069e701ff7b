package logic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/betgenius/predictions-api/internal/models"
)

const insertColumnCount = 12

type pgPredictionStore struct {
	pg PgPool
}

// NewPredictionStore returns the PostgreSQL-backed prediction store
func NewPredictionStore(pg PgPool) PredictionStore {
	return &pgPredictionStore{pg: pg}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Insert writes the whole batch with a single multi-row INSERT so the store
// either accepts or rejects it as a unit. Driver errors are returned as is;
// the rollover reports them to its caller verbatim.
func (s *pgPredictionStore) Insert(ctx context.Context, batch []models.Prediction) ([]models.Prediction, error) {
	if len(batch) == 0 {
		return []models.Prediction{}, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO predictions (
		sport, event_date, home_team, away_team, prediction,
		confidence_score, odds, status, league_id, analysis, home_stats, away_stats
	) VALUES `)

	args := make([]any, 0, len(batch)*insertColumnCount)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for c := 0; c < insertColumnCount; c++ {
			if c > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "$%d", i*insertColumnCount+c+1)
		}
		sb.WriteString(")")

		args = append(args,
			string(p.Sport),
			p.EventDate,
			p.HomeTeam,
			p.AwayTeam,
			p.Prediction,
			p.ConfidenceScore,
			p.Odds,
			string(p.Status),
			p.LeagueID,
			p.Analysis,
			p.HomeStats,
			p.AwayStats,
		)
	}
	sb.WriteString(" RETURNING ")
	sb.WriteString(predictionColumns)

	rows, err := s.pg.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inserted := make([]models.Prediction, 0, len(batch))
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inserted prediction: %w", err)
		}
		inserted = append(inserted, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return inserted, nil
}

// SettleExpired applies one terminal status to every pending prediction whose
// event date is strictly before cutoff.
func (s *pgPredictionStore) SettleExpired(ctx context.Context, cutoff time.Time, status models.Status, result string) (int64, error) {
	if !status.IsTerminal() {
		return 0, fmt.Errorf("settle predictions: %q is not a terminal status", status)
	}

	tag, err := s.pg.Exec(ctx, `
		UPDATE predictions
		SET status = $1, result = $2
		WHERE status = $3 AND event_date < $4
	`, string(status), result, string(models.StatusPending), cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgPredictionStore) Query(ctx context.Context, filter PredictionFilter) ([]models.Prediction, error) {
	query, args, err := BuildPredictionQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	result := []models.Prediction{}
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	return result, nil
}

// scanPrediction reads one row in predictionColumns order
func scanPrediction(row rowScanner) (models.Prediction, error) {
	var (
		p      models.Prediction
		sport  string
		status string
	)
	err := row.Scan(
		&p.ID,
		&sport,
		&p.EventDate,
		&p.HomeTeam,
		&p.AwayTeam,
		&p.Prediction,
		&p.ConfidenceScore,
		&p.Odds,
		&status,
		&p.LeagueID,
		&p.Analysis,
		&p.HomeStats,
		&p.AwayStats,
		&p.Result,
		&p.CreatedAt,
	)
	if err != nil {
		return models.Prediction{}, err
	}
	p.Sport = models.Sport(sport)
	p.Status = models.Status(status)
	return p, nil
}
