package handlers

import (
	"fmt"
	"net/http"

	"github.com/betgenius/predictions-api/internal/logic"
	"github.com/betgenius/predictions-api/internal/models"
)

// GeneratePredictions runs one prediction rollover
// @Summary Generate Predictions
// @Description Inserts a batch of next-day predictions and settles expired pending ones
// @Tags Predictions
// @Produce json
// @Success 200 {object} models.RolloverResponse
// @Failure 405 {object} map[string]string "Method Not Allowed"
// @Failure 500 {object} models.RolloverErrorResponse
// @Router /functions/v1/generate-predictions [post]
func (h *Handler) GeneratePredictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.errorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	result, err := h.rollover.Run(r.Context())
	if err != nil {
		h.logger.Errorw("Rollover failed", "error", err)
		h.jsonResponse(w, http.StatusInternalServerError, models.RolloverErrorResponse{
			Error: err.Error(),
			Type:  logic.ErrorType(err),
		})
		return
	}

	h.jsonResponse(w, http.StatusOK, models.RolloverResponse{
		Message:     fmt.Sprintf("Successfully generated %d predictions", result.Generated),
		Predictions: result.Inserted,
	})
}
