package media

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

var (
	ErrMediaNotFound = errors.New("media not found")
)

// Media is a stored media record. Data holds the compressed blob unless the
// blob lives in object storage under StorageKey.
type Media struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ListingID  int64  `json:"listingId"`
	Data       []byte `json:"-"`
	StorageKey string `json:"-"`
}

// RepositoryImpl implements the media store on PostgreSQL
type RepositoryImpl struct {
	db *sql.DB
}

// NewRepository creates a new media repository
func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{
		db: db,
	}
}

// BeginTx starts a new transaction
func (r *RepositoryImpl) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// FindByName returns the newest media row with the given file name
func (r *RepositoryImpl) FindByName(ctx context.Context, tx *sql.Tx, name string) (*Media, error) {
	row := tx.QueryRowContext(ctx, `
        SELECT id, name, type, listing_id, mediadata, storage_key
        FROM media_data
        WHERE name = $1
        ORDER BY id DESC
        LIMIT 1
    `, name)
	return scanMedia(row)
}

// FindByListingID returns the media row of a listing
func (r *RepositoryImpl) FindByListingID(ctx context.Context, tx *sql.Tx, listingID int64) (*Media, error) {
	row := tx.QueryRowContext(ctx, `
        SELECT id, name, type, listing_id, mediadata, storage_key
        FROM media_data
        WHERE listing_id = $1
    `, listingID)
	return scanMedia(row)
}

// LockListing holds a transaction-scoped advisory lock on the listing id until tx ends.
// It serializes writers of a listing's media even while no row exists to lock.
func (r *RepositoryImpl) LockListing(ctx context.Context, tx *sql.Tx, listingID int64) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, listingID); err != nil {
		return errors.Wrap(err, "failed to lock listing media")
	}
	return nil
}

// FindByListingIDForUpdate returns the media row of a listing and locks it until tx ends
func (r *RepositoryImpl) FindByListingIDForUpdate(ctx context.Context, tx *sql.Tx, listingID int64) (*Media, error) {
	row := tx.QueryRowContext(ctx, `
        SELECT id, name, type, listing_id, mediadata, storage_key
        FROM media_data
        WHERE listing_id = $1
        FOR UPDATE
    `, listingID)
	return scanMedia(row)
}

// Save inserts the media row of a listing or overwrites the existing one
func (r *RepositoryImpl) Save(ctx context.Context, tx *sql.Tx, m *Media) error {
	err := tx.QueryRowContext(ctx, `
        INSERT INTO media_data (name, type, listing_id, mediadata, storage_key)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (listing_id) DO UPDATE
        SET name = EXCLUDED.name, type = EXCLUDED.type, mediadata = EXCLUDED.mediadata, storage_key = EXCLUDED.storage_key
        RETURNING id
    `, m.Name, m.Type, m.ListingID, m.Data, nullString(m.StorageKey)).Scan(&m.ID)
	if err != nil {
		return errors.Wrap(err, "failed to save media")
	}
	return nil
}

// DeleteByListingID removes the media of a listing and returns the object keys it referenced
func (r *RepositoryImpl) DeleteByListingID(ctx context.Context, tx *sql.Tx, listingID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, "DELETE FROM media_data WHERE listing_id = $1 RETURNING storage_key", listingID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to delete media")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key sql.NullString
		if err := rows.Scan(&key); err != nil {
			return nil, errors.Wrap(err, "failed to scan deleted media")
		}
		if key.Valid && key.String != "" {
			keys = append(keys, key.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate deleted media")
	}
	return keys, nil
}

func scanMedia(row *sql.Row) (*Media, error) {
	var (
		m          Media
		name       sql.NullString
		mediaType  sql.NullString
		storageKey sql.NullString
	)
	err := row.Scan(&m.ID, &name, &mediaType, &m.ListingID, &m.Data, &storageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, errors.Wrap(err, "failed to get media")
	}
	m.Name = name.String
	m.Type = mediaType.String
	m.StorageKey = storageKey.String
	return &m, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
