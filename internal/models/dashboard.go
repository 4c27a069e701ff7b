package models

// DashboardStats are computed over the limited set of past predictions
type DashboardStats struct {
	TotalPredictions int     `json:"total_predictions"`
	SuccessRate      float64 `json:"success_rate"`
	AverageOdds      float64 `json:"average_odds"`
}

// Dashboard is the payload rendered for an authenticated user
type Dashboard struct {
	Today []Prediction   `json:"today"`
	Past  []Prediction   `json:"past"`
	Stats DashboardStats `json:"stats"`
}

// EmptyDashboard is the empty-state dashboard shown when nothing could be loaded
func EmptyDashboard() *Dashboard {
	return &Dashboard{
		Today: []Prediction{},
		Past:  []Prediction{},
	}
}

// LandingFeature is one of the marketing cards on the landing page
type LandingFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// LandingPage is the marketing content served at the root route
type LandingPage struct {
	Headline     string           `json:"headline"`
	Subheadline  string           `json:"subheadline"`
	Description  string           `json:"description"`
	CallToAction string           `json:"call_to_action"`
	Features     []LandingFeature `json:"features"`
}
