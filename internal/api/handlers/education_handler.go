package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// EducationHandler handles HTTP requests for education records.
type EducationHandler struct {
	service services.EducationServiceProvider
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(service services.EducationServiceProvider) *EducationHandler {
	return &EducationHandler{service: service}
}

// GetAll returns all education records in display order.
func (h *EducationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllEducation()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve education records")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve education records")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new education record.
func (h *EducationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Education
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreateEducation(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create education record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create education record")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites an education record.
func (h *EducationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	var record models.Education
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateEducation(id, record)
	if err != nil {
		log.Error().Err(err).Int64("education_id", id).Msg("Failed to update education record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update education record")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes an education record.
func (h *EducationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeleteEducation(id); err != nil {
		log.Error().Err(err).Int64("education_id", id).Msg("Failed to delete education record")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete education record")
		return
	}
	respondMessage(w, http.StatusOK, "Education record deleted successfully")
}
