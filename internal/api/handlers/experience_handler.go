package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// ExperienceHandler handles HTTP requests for experience records.
type ExperienceHandler struct {
	service services.ExperienceServiceProvider
}

// NewExperienceHandler creates a new ExperienceHandler.
func NewExperienceHandler(service services.ExperienceServiceProvider) *ExperienceHandler {
	return &ExperienceHandler{service: service}
}

// GetAll returns all experience records in display order.
func (h *ExperienceHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllExperience()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve experience records")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve experience records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new experience record.
func (h *ExperienceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Experience
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreateExperience(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create experience record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create experience record")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites an experience record.
func (h *ExperienceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	var record models.Experience
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateExperience(id, record)
	if err != nil {
		log.Error().Err(err).Int64("experience_id", id).Msg("Failed to update experience record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update experience record")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes an experience record.
func (h *ExperienceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeleteExperience(id); err != nil {
		log.Error().Err(err).Int64("experience_id", id).Msg("Failed to delete experience record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete experience record")
		return
	}
	respondMessage(w, http.StatusOK, "Experience deleted successfully")
}
