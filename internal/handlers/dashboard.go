package handlers

import (
	"net/http"

	"github.com/betgenius/predictions-api/internal/models"
)

var landing = models.LandingPage{
	Headline:     "Transform Your Betting with",
	Subheadline:  "AI-Powered Predictions",
	Description:  "Get ahead of the game with our advanced AI predictions. Backed by data analysis and machine learning, we provide accurate sports betting insights for informed decisions.",
	CallToAction: "/register",
	Features: []models.LandingFeature{
		{Title: "90% Accuracy Rate", Description: "Our AI models consistently deliver highly accurate predictions"},
		{Title: "Expert Analysis", Description: "Combining AI with expert sports analysis for better results"},
		{Title: "Real-time Updates", Description: "Get instant predictions and updates for all major sports"},
	},
}

// Landing serves the marketing content for the root route
func (h *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, http.StatusOK, landing)
}

// GetDashboard returns today's predictions, recent results and stats
// @Summary Predictions Dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.Dashboard
// @Failure 302 "Redirect to /login when signed out"
// @Router /dashboard [get]
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.dashboard.Load(r.Context())
	if err != nil {
		// Failed fetches render as empty sections, never as an error page
		h.logger.Errorw("Error fetching dashboard data", "error", err)
	}
	if dash == nil {
		dash = models.EmptyDashboard()
	}

	h.jsonResponse(w, http.StatusOK, dash)
}
