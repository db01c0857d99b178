package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// AwardHandler handles HTTP requests for award records.
type AwardHandler struct {
	service services.AwardServiceProvider
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(service services.AwardServiceProvider) *AwardHandler {
	return &AwardHandler{service: service}
}

// GetAll returns all awards in display order.
func (h *AwardHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllAwards()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve awards")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve awards")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new award.
func (h *AwardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Award
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreateAward(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create award")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create award")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites an award.
func (h *AwardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	var record models.Award
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateAward(id, record)
	if err != nil {
		log.Error().Err(err).Int64("award_id", id).Msg("Failed to update award")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update award")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes an award.
func (h *AwardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeleteAward(id); err != nil {
		log.Error().Err(err).Int64("award_id", id).Msg("Failed to delete award")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete award")
		return
	}
	respondMessage(w, http.StatusOK, "Award deleted successfully")
}
