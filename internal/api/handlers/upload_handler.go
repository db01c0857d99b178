package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// maxUploadBytes bounds the multipart form size.
const maxUploadBytes = 16 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// UploadHandler handles file uploads (avatars, documents).
type UploadHandler struct {
	dir string
}

// NewUploadHandler creates a new UploadHandler storing files under dir.
func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// Upload stores one multipart file under the upload directory and returns
// the URL it will be served from.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_body", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no_file", "No file selected")
		return
	}
	defer file.Close()

	// Basename only; the client has no say in directory layout.
	name := filepath.Base(header.Filename)
	ext := strings.ToLower(filepath.Ext(name))
	if name == "" || name == "." || !allowedExtensions[ext] {
		respondError(w, http.StatusBadRequest, "invalid_file_type", "Invalid file type")
		return
	}

	stored := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), name)
	path := filepath.Join(h.dir, stored)

	dst, err := os.Create(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to create uploaded file")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to write uploaded file")
		respondError(w, http.StatusInternalServerError, "internal_error", "Failed to store file")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "File uploaded successfully",
		"url":     "/uploads/" + stored,
	})
}
