package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// PublicationHandler handles HTTP requests for publication records.
type PublicationHandler struct {
	service services.PublicationServiceProvider
}

// NewPublicationHandler creates a new PublicationHandler.
func NewPublicationHandler(service services.PublicationServiceProvider) *PublicationHandler {
	return &PublicationHandler{service: service}
}

// GetAll returns all publications in display order.
func (h *PublicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllPublications()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve publications")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve publications")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new publication.
func (h *PublicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Publication
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreatePublication(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create publication")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create publication")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites a publication.
func (h *PublicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	var record models.Publication
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdatePublication(id, record)
	if err != nil {
		log.Error().Err(err).Int64("publication_id", id).Msg("Failed to update publication")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update publication")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a publication.
func (h *PublicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeletePublication(id); err != nil {
		log.Error().Err(err).Int64("publication_id", id).Msg("Failed to delete publication")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete publication")
		return
	}
	respondMessage(w, http.StatusOK, "Publication deleted successfully")
}
