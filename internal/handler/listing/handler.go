package listing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/bulatminnakhmetov/collection-tracker/internal/service/listing"
)

// ListingService defines the listing operations used by the handler
type ListingService interface {
	CreateListing(ctx context.Context, l *listing.Listing) (*listing.Listing, error)
	GetAllListings(ctx context.Context) ([]listing.Listing, error)
	GetListingsByOwner(ctx context.Context, email string) ([]listing.Listing, error)
	UpdateListing(ctx context.Context, id int64, req listing.UpdateRequest) (*listing.Listing, error)
	DeleteListing(ctx context.Context, id int64, ownerEmail string) error
}

type ListingHandler struct {
	service ListingService
	log     zerolog.Logger
}

func NewListingHandler(service ListingService, log zerolog.Logger) *ListingHandler {
	return &ListingHandler{
		service: service,
		log:     log.With().Str("component", "listing-handler").Logger(),
	}
}

// @Summary      Create listing
// @Description  Creates a listing. The id is assigned by the server.
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request  body      ListingDTO  true  "Listing data"
// @Success      200      {object}  ListingDTO
// @Failure      400      {string}  string  "Invalid request body"
// @Failure      500      {string}  string  "Internal server error"
// @Router       /addListing [post]
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req ListingDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.service.CreateListing(r.Context(), req.ToListing())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ToListingDTO(created))
}

// @Summary      List listings
// @Description  Returns every listing
// @Tags         listings
// @Produce      json
// @Success      200  {array}   ListingDTO
// @Failure      500  {string}  string  "Internal server error"
// @Router       /listings [get]
func (h *ListingHandler) GetAllListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.GetAllListings(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ToListingDTOs(listings))
}

// @Summary      List listings of an owner
// @Description  Returns the listings whose owner email matches exactly
// @Tags         listings
// @Produce      json
// @Param        email  path      string  true  "Owner email"
// @Success      200    {array}   ListingDTO
// @Failure      500    {string}  string  "Internal server error"
// @Router       /listings/user/{email} [get]
func (h *ListingHandler) GetListingsByOwner(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	listings, err := h.service.GetListingsByOwner(r.Context(), email)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ToListingDTOs(listings))
}

// @Summary      Update listing
// @Description  Applies the supplied fields when ownerEmail owns the listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Listing ID"
// @Param        request  body      UpdateListingRequest  true  "Fields to change"
// @Success      200      {object}  ListingDTO
// @Failure      400      {string}  string  "Owner email is required"
// @Failure      403      {string}  string  "Not the owner"
// @Failure      404      {string}  string  "Listing not found"
// @Failure      500      {string}  string  "Internal server error"
// @Router       /listings/{id} [put]
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	var req UpdateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateListing(r.Context(), id, req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, listing.ErrOwnerEmailRequired) {
			http.Error(w, "Owner email is required to update a listing.", http.StatusBadRequest)
			return
		}
		if errors.Is(err, listing.ErrNotOwner) {
			http.Error(w, "You can only edit your own listing.", http.StatusForbidden)
			return
		}
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ToListingDTO(updated))
}

// @Summary      Delete listing
// @Description  Deletes a listing and its media when ownerEmail owns it
// @Tags         listings
// @Param        id          path      int     true  "Listing ID"
// @Param        ownerEmail  query     string  true  "Owner email"
// @Success      204
// @Failure      400  {string}  string  "Owner email is required"
// @Failure      403  {string}  string  "Not the owner"
// @Failure      404  {string}  string  "Listing not found"
// @Failure      500  {string}  string  "Internal server error"
// @Router       /listings/{id} [delete]
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := listingID(w, r)
	if !ok {
		return
	}

	err := h.service.DeleteListing(r.Context(), id, r.URL.Query().Get("ownerEmail"))
	if err != nil {
		if errors.Is(err, listing.ErrOwnerEmailRequired) {
			http.Error(w, "Owner email is required to delete a listing.", http.StatusBadRequest)
			return
		}
		if errors.Is(err, listing.ErrNotOwner) {
			http.Error(w, "You can only delete your own listing.", http.StatusForbidden)
			return
		}
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleError handles errors and returns appropriate HTTP status
func (h *ListingHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listing.ErrListingNotFound):
		http.Error(w, "Listing not found.", http.StatusNotFound)
	default:
		h.log.Error().Err(err).Msg("listing request failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func listingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
