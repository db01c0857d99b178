package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/services"
)

// ProfileHandler handles HTTP requests for the profile and settings
// singletons.
type ProfileHandler struct {
	service services.ProfileServiceProvider
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileServiceProvider) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// GetProfile returns the public profile.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve profile")
		respondError(w, http.StatusNotFound, "not_found", "Profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile applies a partial update: fields absent from the body keep
// their stored values.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.service.GetProfile()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load profile for update")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update profile")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	if _, err := h.service.UpdateProfile(profile); err != nil {
		log.Error().Err(err).Msg("Failed to update profile")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update profile")
		return
	}
	respondMessage(w, http.StatusOK, "Profile updated successfully")
}

// GetSettings returns the site settings.
func (h *ProfileHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve settings")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve settings")
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts the editable settings fields.
func (h *ProfileHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load settings for update")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update settings")
		return
	}

	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	if _, err := h.service.UpdateSettings(settings); err != nil {
		log.Error().Err(err).Msg("Failed to update settings")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update settings")
		return
	}
	respondMessage(w, http.StatusOK, "Settings updated successfully")
}
