package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bulatminnakhmetov/collection-tracker/internal/service/media"
)

const (
	defaultContentType = "application/octet-stream"

	// room for multipart boundaries and headers on top of the file itself
	multipartOverhead = 1 << 20
)

// MediaService defines the media operations used by the handler
type MediaService interface {
	UploadMedia(ctx context.Context, listingID int64, fileHeader media.UploadedFile) (string, error)
	DownloadMedia(ctx context.Context, fileName string) (*media.Media, error)
	DownloadMediaByListingID(ctx context.Context, listingID int64) (*media.Media, error)
}

// MediaHandler handles requests for media operations
type MediaHandler struct {
	service     MediaService
	maxFileSize int64
	log         zerolog.Logger
}

// NewMediaHandler creates a new instance of MediaHandler
func NewMediaHandler(service MediaService, maxFileSize int64, log zerolog.Logger) *MediaHandler {
	if maxFileSize <= 0 {
		maxFileSize = media.DefaultMaxFileSize
	}
	return &MediaHandler{
		service:     service,
		maxFileSize: maxFileSize,
		log:         log.With().Str("component", "media-handler").Logger(),
	}
}

// @Summary      Upload media
// @Description  Upload the media file of a listing, replacing the previous one
// @Tags         media
// @Accept       multipart/form-data
// @Produce      plain
// @Param        id     query     int   true  "Listing ID"
// @Param        media  formData  file  true  "File to upload"
// @Success      200    {string}  string  "file uploaded successfully : <name>"
// @Failure      400    {string}  string  "Invalid listing id or file"
// @Failure      413    {string}  string  "File too large"
// @Failure      500    {string}  string  "Internal server error"
// @Router       /media [post]
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	listingID, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "Could not parse form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		http.Error(w, "Could not get file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	message, err := h.service.UploadMedia(r.Context(), listingID, &media.FileHeaderWrapper{FileHeader: header})
	if err != nil {
		h.handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, message)
}

// @Summary      Download media by name
// @Description  Returns the decompressed bytes of the newest media stored under a file name
// @Tags         media
// @Produce      octet-stream
// @Param        fileName  path      string  true  "File name"
// @Success      200       {file}    file
// @Failure      404       {string}  string  "Media not found"
// @Failure      500       {string}  string  "Internal server error"
// @Router       /media/{fileName} [get]
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	fileName := chi.URLParam(r, "fileName")

	m, err := h.service.DownloadMedia(r.Context(), fileName)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeMedia(w, m)
}

// @Summary      Download media of a listing
// @Description  Returns the decompressed media bytes attached to a listing
// @Tags         media
// @Produce      octet-stream
// @Param        listingId  path      int  true  "Listing ID"
// @Success      200        {file}    file
// @Failure      400        {string}  string  "Invalid listing id"
// @Failure      404        {string}  string  "Media not found for listing"
// @Failure      500        {string}  string  "Internal server error"
// @Router       /media/listing/{listingId} [get]
func (h *MediaHandler) DownloadMediaByListingID(w http.ResponseWriter, r *http.Request) {
	listingIDStr := chi.URLParam(r, "listingId")
	listingID, err := strconv.ParseInt(listingIDStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid listing id", http.StatusBadRequest)
		return
	}

	m, err := h.service.DownloadMediaByListingID(r.Context(), listingID)
	if err != nil {
		if errors.Is(err, media.ErrMediaNotFound) {
			http.Error(w, fmt.Sprintf("Media not found for listing %d", listingID), http.StatusNotFound)
			return
		}
		h.handleError(w, err)
		return
	}

	writeMedia(w, m)
}

// handleError handles errors and returns appropriate HTTP status
func (h *MediaHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, media.ErrMediaNotFound):
		http.Error(w, "Media not found", http.StatusNotFound)
	case errors.Is(err, media.ErrFileTooBig):
		http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
	default:
		h.log.Error().Err(err).Msg("media request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeMedia(w http.ResponseWriter, m *media.Media) {
	w.Header().Set("Content-Type", contentType(m.Type))
	w.Header().Set("Content-Length", strconv.Itoa(len(m.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(m.Data)
}

// contentType normalizes a stored MIME type, falling back to a generic binary type
func contentType(stored string) string {
	mediaType, params, err := mime.ParseMediaType(stored)
	if err != nil || mediaType == "" {
		return defaultContentType
	}
	return mime.FormatMediaType(mediaType, params)
}
