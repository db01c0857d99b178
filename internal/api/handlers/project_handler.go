package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/acadpages/homepage-be/internal/models"
	"github.com/acadpages/homepage-be/internal/services"
)

// ProjectHandler handles HTTP requests for project records.
type ProjectHandler struct {
	service services.ProjectServiceProvider
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(service services.ProjectServiceProvider) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// GetAll returns all projects in display order.
func (h *ProjectHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.GetAllProjects()
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve projects")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve projects")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Create inserts a new project.
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var record models.Project
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	created, err := h.service.CreateProject(record)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create project")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update overwrites a project.
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	var record models.Project
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return
	}

	updated, err := h.service.UpdateProject(id, record)
	if err != nil {
		log.Error().Err(err).Int64("project_id", id).Msg("Failed to update project")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to update project")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a project.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Invalid record id")
		return
	}

	if err := h.service.DeleteProject(id); err != nil {
		log.Error().Err(err).Int64("project_id", id).Msg("Failed to delete project")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to delete project")
		return
	}
	respondMessage(w, http.StatusOK, "Project deleted successfully")
}
