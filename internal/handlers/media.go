// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogpress/internal/apperr"
	"blogpress/internal/models"
	"blogpress/internal/storage"
)

// maxUploadSize is the maximum allowed media upload size (50 MB).
const maxUploadSize = 50 << 20

// allowedUploadTypes maps accepted MIME types to the media kind they
// produce on a blog post.
var allowedUploadTypes = map[string]models.MediaType{
	"image/jpeg": models.MediaImage,
	"image/png":  models.MediaImage,
	"image/gif":  models.MediaImage,
	"image/webp": models.MediaImage,
	"video/mp4":  models.MediaVideo,
	"video/webm": models.MediaVideo,
}

// Media handles uploads feeding blog media items.
type Media struct {
	storage *storage.Client
}

// NewMedia creates a new Media handler group. storage may be nil when
// object storage is not configured; uploads then fail cleanly.
func NewMedia(storage *storage.Client) *Media {
	return &Media{storage: storage}
}

type uploadResponse struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Upload stores a multipart file and returns the public URL plus the
// media kind to embed in a blog's media items.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, r, apperr.Domain("Media storage is not configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, r, apperr.Validation([]string{"File too large. Maximum size is 50 MB"}))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, apperr.Validation([]string{"No file provided"}))
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		respondError(w, r, apperr.Validation([]string{"File too large. Maximum size is 50 MB"}))
		return
	}

	// Sniff the content type rather than trusting the client header.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		respondError(w, r, err)
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	mediaType, ok := allowedUploadTypes[contentType]
	if !ok {
		respondError(w, r, apperr.Validation([]string{fmt.Sprintf("File type %q is not allowed", contentType)}))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		respondError(w, r, err)
		return
	}

	now := time.Now()
	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("media/%d/%02d/%s%s", now.Year(), now.Month(), uuid.NewString(), ext)

	if err := h.storage.Upload(r.Context(), key, contentType, file, header.Size); err != nil {
		slog.Error("media upload failed", "key", key, "error", err)
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, uploadResponse{
		URL:  h.storage.FileURL(key),
		Type: string(mediaType),
	})
}

// Delete removes an uploaded object by its storage key. Reserved for
// moderation; the router guards it with the admin role.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		respondError(w, r, apperr.Domain("Media storage is not configured"))
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" || !strings.HasPrefix(key, "media/") {
		respondError(w, r, apperr.Validation([]string{"key must reference an uploaded media object"}))
		return
	}

	if err := h.storage.Delete(r.Context(), key); err != nil {
		slog.Error("media delete failed", "key", key, "error", err)
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
