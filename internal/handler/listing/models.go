package listing

import (
	"github.com/bulatminnakhmetov/collection-tracker/internal/service/listing"
)

// Request models

// UpdateListingRequest holds the fields a listing update may change
type UpdateListingRequest struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	OwnerEmail  string   `json:"ownerEmail"`
}

// Response models

type ListingDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	OwnerEmail  string  `json:"ownerEmail"`
}

// Conversion functions

func (r UpdateListingRequest) ToServiceRequest() listing.UpdateRequest {
	return listing.UpdateRequest{
		Title:       r.Title,
		Price:       r.Price,
		Description: r.Description,
		OwnerEmail:  r.OwnerEmail,
	}
}

func (d ListingDTO) ToListing() *listing.Listing {
	return &listing.Listing{
		ID:          d.ID,
		Title:       d.Title,
		Price:       d.Price,
		Description: d.Description,
		OwnerEmail:  d.OwnerEmail,
	}
}

func ToListingDTO(l *listing.Listing) ListingDTO {
	return ListingDTO{
		ID:          l.ID,
		Title:       l.Title,
		Price:       l.Price,
		Description: l.Description,
		OwnerEmail:  l.OwnerEmail,
	}
}

func ToListingDTOs(listings []listing.Listing) []ListingDTO {
	dtos := make([]ListingDTO, 0, len(listings))
	for i := range listings {
		dtos = append(dtos, ToListingDTO(&listings[i]))
	}
	return dtos
}
