package logic

import (
	"fmt"
	"strings"
	"time"

	"github.com/betgenius/predictions-api/internal/models"
)

const maxQueryLimit = 1000

// predictionColumns is the column list shared by SELECT and RETURNING clauses.
// scanPrediction depends on this order.
const predictionColumns = `id, sport, event_date, home_team, away_team, prediction,
	confidence_score, odds, status, league_id, analysis, home_stats, away_stats,
	result, created_at`

// PredictionFilter holds parameters for constructing a predictions query
type PredictionFilter struct {
	Status          models.Status // WHERE status = ?
	EventDateFrom   time.Time     // WHERE event_date >= ?
	EventDateTo     time.Time     // WHERE event_date <= ?
	EventDateBefore time.Time     // WHERE event_date < ?
	OrderBy         string        // one of allowedOrderColumns
	Descending      bool
	Limit           int // 0 means unlimited
}

// allowedOrderColumns maps safe API values to SQL columns
var allowedOrderColumns = map[string]string{
	"event_date":       "event_date",
	"created_at":       "created_at",
	"confidence_score": "confidence_score",
	"odds":             "odds",
}

// BuildPredictionQuery constructs a safe parameterised PostgreSQL query
func BuildPredictionQuery(f PredictionFilter) (string, []any, error) {
	var orderCol string
	if f.OrderBy != "" {
		col, ok := allowedOrderColumns[f.OrderBy]
		if !ok {
			return "", nil, fmt.Errorf("invalid order column: %s", f.OrderBy)
		}
		orderCol = col
	}
	if f.Limit < 0 {
		return "", nil, fmt.Errorf("invalid limit: %d", f.Limit)
	}

	var sb strings.Builder
	var args []any
	sb.WriteString("SELECT ")
	sb.WriteString(predictionColumns)
	sb.WriteString(" FROM predictions WHERE 1=1")

	where := func(clause string, arg any) {
		args = append(args, arg)
		fmt.Fprintf(&sb, " AND %s $%d", clause, len(args))
	}

	if f.Status != "" {
		where("status =", string(f.Status))
	}
	if !f.EventDateFrom.IsZero() {
		where("event_date >=", f.EventDateFrom)
	}
	if !f.EventDateTo.IsZero() {
		where("event_date <=", f.EventDateTo)
	}
	if !f.EventDateBefore.IsZero() {
		where("event_date <", f.EventDateBefore)
	}

	if orderCol != "" {
		dir := "ASC"
		if f.Descending {
			dir = "DESC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", orderCol, dir)
	}

	if f.Limit > 0 {
		limit := f.Limit
		if limit > maxQueryLimit {
			limit = maxQueryLimit
		}
		fmt.Fprintf(&sb, " LIMIT %d", limit)
	}

	return sb.String(), args, nil
}
