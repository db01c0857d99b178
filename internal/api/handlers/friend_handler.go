package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// FriendHandler handles HTTP requests for friend link records.
type FriendHandler struct {
	service services.FriendServiceProvider
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(service services.FriendServiceProvider) *FriendHandler {
	return &FriendHandler{service: service}
}

// GetAll returns the active friend links in display order.
func (h *FriendHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetActiveFriends()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve friend links")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve friend links")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new friend link. Links are active unless the body says
// otherwise.
func (h *FriendHandler) Create(w http.ResponseWriter, r *http.Request) {
	record := models.Friend{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreateFriend(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create friend link")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create friend link")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites a friend link.
func (h *FriendHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	record := models.Friend{IsActive: true}
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateFriend(id, record)
	if err != nil {
		log.Error().Err(err).Int64("friend_id", id).Msg("Failed to update friend link")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update friend link")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a friend link.
func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeleteFriend(id); err != nil {
		log.Error().Err(err).Int64("friend_id", id).Msg("Failed to delete friend link")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete friend link")
		return
	}
	respondMessage(w, http.StatusOK, "Friend link deleted successfully")
}
