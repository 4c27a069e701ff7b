package handlers

import (
	"net/http"
	"os"
	"path/filepath"
)

// InstallDatabase applies the Postgres schema
// @Summary Install Database Schema
// @Description Executes the predictions and users schema against PostgreSQL
// @Tags System
// @Produce json
// @Security ServiceRoleKey
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /system/install [post]
func (h *Handler) InstallDatabase(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.migrationsDir, "postgres", "001_initial_schema.sql")

	schema, err := os.ReadFile(path)
	if err != nil {
		h.logger.Errorw("Failed to read schema", "path", path, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "read schema: "+err.Error())
		return
	}

	if _, err := h.pg.Exec(r.Context(), string(schema)); err != nil {
		h.logger.Errorw("Failed to apply schema", "path", path, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "apply schema: "+err.Error())
		return
	}

	h.logger.Infow("Schema installed", "path", path)
	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "installed", "schema": path})
}
