package collector

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// Collector is a registered account. Password holds a bcrypt hash.
type Collector struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

type PostgresCollectorRepository struct {
	db *sql.DB
}

// NewPostgresCollectorRepository creates a new collector repository
func NewPostgresCollectorRepository(db *sql.DB) *PostgresCollectorRepository {
	return &PostgresCollectorRepository{
		db: db,
	}
}

// CreateCollector inserts a collector and sets its generated id
func (r *PostgresCollectorRepository) CreateCollector(ctx context.Context, c *Collector) error {
	query := `
        INSERT INTO collector (name, email, password)
        VALUES ($1, $2, $3)
        RETURNING id
    `

	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Password).Scan(&c.ID)
	if err != nil {
		return errors.Wrap(err, "failed to create collector")
	}

	return nil
}

// GetCollectorsByEmail returns every collector registered with email.
// Emails are not unique, so more than one row may come back.
func (r *PostgresCollectorRepository) GetCollectorsByEmail(ctx context.Context, email string) ([]Collector, error) {
	query := `
        SELECT id, name, email, password
        FROM collector
        WHERE email = $1
        ORDER BY id
    `

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query collectors")
	}
	defer rows.Close()

	var collectors []Collector
	for rows.Next() {
		var (
			c        Collector
			name     sql.NullString
			password sql.NullString
		)
		if err := rows.Scan(&c.ID, &name, &c.Email, &password); err != nil {
			return nil, errors.Wrap(err, "failed to scan collector")
		}
		c.Name = name.String
		c.Password = password.String
		collectors = append(collectors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate collectors")
	}

	return collectors, nil
}
