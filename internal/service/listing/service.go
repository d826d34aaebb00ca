package listing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	listingrepo "github.com/bulatminnakhmetov/collection-tracker/internal/repository/listing"
)

var (
	ErrOwnerEmailRequired = errors.New("owner email is required")
	ErrListingNotFound    = errors.New("listing not found")
	ErrNotOwner           = errors.New("listing belongs to another owner")
)

type Listing = listingrepo.Listing

// UpdateRequest carries a partial listing update. Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Description *string  `json:"description,omitempty"`
	OwnerEmail  string   `json:"ownerEmail"`
}

type ListingRepository interface {
	BeginTx(ctx context.Context) (*sql.Tx, error)
	Create(ctx context.Context, l *listingrepo.Listing) error
	FindAll(ctx context.Context) ([]listingrepo.Listing, error)
	FindByOwnerEmail(ctx context.Context, email string) ([]listingrepo.Listing, error)
	FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*listingrepo.Listing, error)
	Update(ctx context.Context, tx *sql.Tx, l *listingrepo.Listing) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
}

// MediaDeleter removes the media attached to a listing
type MediaDeleter interface {
	DeleteMediaByListingID(ctx context.Context, listingID int64) error
}

type ListingServiceImpl struct {
	listingRepository ListingRepository
	media             MediaDeleter
	log               zerolog.Logger
}

func NewListingService(listingRepo ListingRepository, media MediaDeleter, log zerolog.Logger) *ListingServiceImpl {
	return &ListingServiceImpl{
		listingRepository: listingRepo,
		media:             media,
		log:               log.With().Str("component", "listing-service").Logger(),
	}
}

// CreateListing persists a new listing. Any id in the input is ignored.
func (s *ListingServiceImpl) CreateListing(ctx context.Context, l *Listing) (*Listing, error) {
	created := *l
	created.ID = 0
	if err := s.listingRepository.Create(ctx, &created); err != nil {
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}
	return &created, nil
}

func (s *ListingServiceImpl) GetAllListings(ctx context.Context) ([]Listing, error) {
	listings, err := s.listingRepository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	return listings, nil
}

func (s *ListingServiceImpl) GetListingsByOwner(ctx context.Context, email string) ([]Listing, error) {
	listings, err := s.listingRepository.FindByOwnerEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get listings by owner: %w", err)
	}
	return listings, nil
}

// UpdateListing applies the non-nil fields of req when req.OwnerEmail owns the listing
func (s *ListingServiceImpl) UpdateListing(ctx context.Context, id int64, req UpdateRequest) (*Listing, error) {
	if strings.TrimSpace(req.OwnerEmail) == "" {
		return nil, ErrOwnerEmailRequired
	}

	var updated *Listing
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		existing, err := s.ownedListing(ctx, tx, id, req.OwnerEmail)
		if err != nil {
			return err
		}

		if req.Title != nil {
			existing.Title = *req.Title
		}
		if req.Price != nil {
			existing.Price = *req.Price
		}
		if req.Description != nil {
			existing.Description = *req.Description
		}

		if err := s.listingRepository.Update(ctx, tx, existing); err != nil {
			return mapRepoError(err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteListing removes the listing and then its media
func (s *ListingServiceImpl) DeleteListing(ctx context.Context, id int64, ownerEmail string) error {
	if strings.TrimSpace(ownerEmail) == "" {
		return ErrOwnerEmailRequired
	}

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := s.ownedListing(ctx, tx, id, ownerEmail); err != nil {
			return err
		}
		return mapRepoError(s.listingRepository.Delete(ctx, tx, id))
	})
	if err != nil {
		return err
	}

	// the listing stays deleted even if its media could not be removed
	if err := s.media.DeleteMediaByListingID(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("listing_id", id).Msg("failed to delete media of deleted listing")
	}
	return nil
}

func (s *ListingServiceImpl) ownedListing(ctx context.Context, tx *sql.Tx, id int64, ownerEmail string) (*Listing, error) {
	existing, err := s.listingRepository.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if existing.OwnerEmail != ownerEmail {
		return nil, ErrNotOwner
	}
	return existing, nil
}

func (s *ListingServiceImpl) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := s.listingRepository.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	return fn(tx)
}

func mapRepoError(err error) error {
	if errors.Is(err, listingrepo.ErrListingNotFound) {
		return ErrListingNotFound
	}
	return err
}
