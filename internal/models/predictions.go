package models

import (
	"time"

	"github.com/google/uuid"
)

// Sport is one of the fixed set of sports predictions are generated for
type Sport string

const (
	SportSoccer     Sport = "soccer"
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportHockey     Sport = "hockey"
)

// Sports lists the sports in generation order
var Sports = []Sport{SportSoccer, SportBasketball, SportBaseball, SportHockey}

// Status is the lifecycle state of a prediction
type Status string

const (
	StatusPending Status = "pending"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// IsTerminal reports whether the status is a settled outcome
func (s Status) IsTerminal() bool {
	return s == StatusWon || s == StatusLost
}

const (
	PredictionHomeWin = "Home team to win"
	PredictionAwayWin = "Away team to win"

	// ResultMatchCompleted is written to settled predictions
	ResultMatchCompleted = "Match completed"
)

// TeamForm is the randomly drawn recent form attached to each side
type TeamForm struct {
	WinsLast5  int `json:"wins_last_5"`
	FormRating int `json:"form_rating"`
}

// Prediction is one synthetic betting-outcome record
type Prediction struct {
	ID              uuid.UUID `json:"id"`
	Sport           Sport     `json:"sport"`
	EventDate       time.Time `json:"event_date"`
	HomeTeam        string    `json:"home_team"`
	AwayTeam        string    `json:"away_team"`
	Prediction      string    `json:"prediction"`
	ConfidenceScore int       `json:"confidence_score"`
	Odds            float64   `json:"odds"`
	Status          Status    `json:"status"`
	LeagueID        int       `json:"league_id"`
	Analysis        string    `json:"analysis"`
	HomeStats       TeamForm  `json:"home_stats"`
	AwayStats       TeamForm  `json:"away_stats"`
	Result          *string   `json:"result,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// RolloverResult summarises a single rollover invocation
type RolloverResult struct {
	Generated int          `json:"generated"`
	Inserted  []Prediction `json:"inserted"`
	Settled   int64        `json:"settled"`
	Outcome   Status       `json:"outcome"`
}

// RolloverResponse is the success payload of the rollover function
type RolloverResponse struct {
	Message     string       `json:"message"`
	Predictions []Prediction `json:"predictions"`
}

// RolloverErrorResponse is the failure payload of the rollover function
type RolloverErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}
