package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound signals the requested profile does not exist.
var ErrNotFound = errors.New("directory: not found")

// Querier is the query surface shared by pgxpool.Pool and pgxmock.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository provides access to organization profiles.
type Repository struct {
	db Querier
}

func NewRepository(db Querier) *Repository {
	return &Repository{db: db}
}

const profileColumns = `id, kind, name, address, email, province, license_number, created_at`

func scanProfile(row pgx.Row) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.Kind,
		&p.Name,
		&p.Address,
		&p.Email,
		&p.Province,
		&p.LicenseNumber,
		&p.CreatedAt,
	)
	return p, err
}

// GetByID fetches one profile by its primary key.
func (r *Repository) GetByID(ctx context.Context, id string) (Profile, error) {
	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM organizations WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, fmt.Errorf("directory: query by id: %w", err)
	}
	return p, nil
}

// ListByKind fetches up to limit profiles of one kind ordered by name.
func (r *Repository) ListByKind(ctx context.Context, kind Kind, limit int) ([]Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, `
        SELECT `+profileColumns+`
        FROM organizations
        WHERE kind = $1
        ORDER BY name ASC
        LIMIT $2
    `, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("directory: list: %w", err)
	}
	defer rows.Close()

	profiles := make([]Profile, 0, limit)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("directory: scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("directory: iterate profiles: %w", err)
	}
	return profiles, nil
}

// Upsert inserts or refreshes a profile keyed by id.
func (r *Repository) Upsert(ctx context.Context, p Profile) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO organizations (id, kind, name, address, email, province, license_number)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE
        SET kind = EXCLUDED.kind,
            name = EXCLUDED.name,
            address = EXCLUDED.address,
            email = EXCLUDED.email,
            province = EXCLUDED.province,
            license_number = EXCLUDED.license_number
    `, p.ID, p.Kind, p.Name, p.Address, p.Email, p.Province, p.LicenseNumber)
	if err != nil {
		return fmt.Errorf("directory: upsert profile: %w", err)
	}
	return nil
}
