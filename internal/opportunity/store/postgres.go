package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"talentry/internal/opportunity/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Postgres persists listings in the opportunities table. Uniqueness per
// account rides the primary key; conditional create uses ON CONFLICT DO
// NOTHING so concurrent publishes race safely.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfAbsent(ctx context.Context, listing *models.Opportunity) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO opportunities (
			account_id, title, description, location, competencies,
			status, published_at, expires_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO NOTHING`,
		listing.AccountID.String(),
		listing.Title,
		listing.Description,
		listing.Location,
		pq.Array(listing.Competencies),
		string(listing.Status),
		listing.PublishedAt,
		listing.ExpiresAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create opportunity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create opportunity: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) FindByAccount(ctx context.Context, accountID id.AccountID) (*models.Opportunity, error) {
	var (
		listing      models.Opportunity
		competencies pq.StringArray
		status       string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT title, description, location, competencies,
		       status, published_at, expires_at, updated_at
		FROM opportunities
		WHERE account_id = $1`,
		accountID.String(),
	).Scan(
		&listing.Title,
		&listing.Description,
		&listing.Location,
		&competencies,
		&status,
		&listing.PublishedAt,
		&listing.ExpiresAt,
		&listing.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find opportunity: %w", err)
	}

	listing.AccountID = accountID
	listing.Competencies = competencies
	listing.Status = models.OpportunityStatus(status)
	return &listing, nil
}

func (s *Postgres) Update(ctx context.Context, listing *models.Opportunity) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE opportunities
		SET title = $2, description = $3, location = $4, competencies = $5,
		    status = $6, expires_at = $7, updated_at = $8
		WHERE account_id = $1`,
		listing.AccountID.String(),
		listing.Title,
		listing.Description,
		listing.Location,
		pq.Array(listing.Competencies),
		string(listing.Status),
		listing.ExpiresAt,
		listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update opportunity: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, accountID id.AccountID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM opportunities WHERE account_id = $1`,
		accountID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
