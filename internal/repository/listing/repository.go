package listing

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

var (
	ErrListingNotFound = errors.New("listing not found")
)

// Listing is a tracked collectible item
type Listing struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	OwnerEmail  string  `json:"ownerEmail"`
}

// RepositoryImpl stores listings in PostgreSQL
type RepositoryImpl struct {
	db *sql.DB
}

// NewRepository creates a new listing repository
func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{
		db: db,
	}
}

// BeginTx starts a new transaction
func (r *RepositoryImpl) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// Create inserts a listing; the id is assigned by the listing_id_seq sequence
func (r *RepositoryImpl) Create(ctx context.Context, l *Listing) error {
	err := r.db.QueryRowContext(ctx, `
        INSERT INTO listing (title, price, description, owner_email)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, l.Title, l.Price, l.Description, l.OwnerEmail).Scan(&l.ID)
	if err != nil {
		return errors.Wrap(err, "failed to create listing")
	}
	return nil
}

// FindAll returns every listing
func (r *RepositoryImpl) FindAll(ctx context.Context) ([]Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, price, description, owner_email
        FROM listing
        ORDER BY id
    `)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query listings")
	}
	return scanListings(rows)
}

// FindByOwnerEmail returns listings owned by email
func (r *RepositoryImpl) FindByOwnerEmail(ctx context.Context, email string) ([]Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, title, price, description, owner_email
        FROM listing
        WHERE owner_email = $1
        ORDER BY id
    `, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query listings by owner")
	}
	return scanListings(rows)
}

// FindByIDForUpdate returns a listing by id and locks its row until tx ends
func (r *RepositoryImpl) FindByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*Listing, error) {
	row := tx.QueryRowContext(ctx, `
        SELECT id, title, price, description, owner_email
        FROM listing
        WHERE id = $1
        FOR UPDATE
    `, id)
	return scanListing(row)
}

// Update overwrites the mutable fields of a listing
func (r *RepositoryImpl) Update(ctx context.Context, tx *sql.Tx, l *Listing) error {
	res, err := tx.ExecContext(ctx, `
        UPDATE listing
        SET title = $2, price = $3, description = $4
        WHERE id = $1
    `, l.ID, l.Title, l.Price, l.Description)
	if err != nil {
		return errors.Wrap(err, "failed to update listing")
	}
	return requireAffected(res)
}

// Delete removes a listing by id
func (r *RepositoryImpl) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM listing WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "failed to delete listing")
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read affected rows")
	}
	if n == 0 {
		return ErrListingNotFound
	}
	return nil
}

func scanListing(row *sql.Row) (*Listing, error) {
	var (
		l           Listing
		title       sql.NullString
		description sql.NullString
		ownerEmail  sql.NullString
	)
	err := row.Scan(&l.ID, &title, &l.Price, &description, &ownerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListingNotFound
		}
		return nil, errors.Wrap(err, "failed to get listing")
	}
	l.Title = title.String
	l.Description = description.String
	l.OwnerEmail = ownerEmail.String
	return &l, nil
}

func scanListings(rows *sql.Rows) ([]Listing, error) {
	defer rows.Close()

	listings := make([]Listing, 0)
	for rows.Next() {
		var (
			l           Listing
			title       sql.NullString
			description sql.NullString
			ownerEmail  sql.NullString
		)
		if err := rows.Scan(&l.ID, &title, &l.Price, &description, &ownerEmail); err != nil {
			return nil, errors.Wrap(err, "failed to scan listing")
		}
		l.Title = title.String
		l.Description = description.String
		l.OwnerEmail = ownerEmail.String
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate listings")
	}
	return listings, nil
}
