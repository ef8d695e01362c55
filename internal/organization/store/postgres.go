package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"talentry/internal/organization/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Postgres persists organizations in the organizations table. Uniqueness per
// account rides the primary key; conditional create uses ON CONFLICT DO
// NOTHING so concurrent establishes race safely.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfAbsent(ctx context.Context, org *models.Organization) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO organizations (
			account_id, name, industry, jurisdiction, established_at,
			contact_email, tier, verification, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id) DO NOTHING`,
		org.AccountID.String(),
		org.Name,
		org.Industry,
		org.Jurisdiction,
		org.EstablishedAt,
		org.ContactEmail,
		org.Tier,
		string(org.Verification),
		org.CreatedAt,
		org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create organization: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) FindByAccount(ctx context.Context, accountID id.AccountID) (*models.Organization, error) {
	var (
		org          models.Organization
		verification string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT name, industry, jurisdiction, established_at,
		       contact_email, tier, verification, created_at, updated_at
		FROM organizations
		WHERE account_id = $1`,
		accountID.String(),
	).Scan(
		&org.Name,
		&org.Industry,
		&org.Jurisdiction,
		&org.EstablishedAt,
		&org.ContactEmail,
		&org.Tier,
		&verification,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find organization: %w", err)
	}

	org.AccountID = accountID
	org.Verification = models.VerificationStatus(verification)
	return &org, nil
}

func (s *Postgres) Update(ctx context.Context, org *models.Organization) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE organizations
		SET name = $2, industry = $3, jurisdiction = $4, established_at = $5,
		    contact_email = $6, tier = $7, verification = $8, updated_at = $9
		WHERE account_id = $1`,
		org.AccountID.String(),
		org.Name,
		org.Industry,
		org.Jurisdiction,
		org.EstablishedAt,
		org.ContactEmail,
		org.Tier,
		string(org.Verification),
		org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, accountID id.AccountID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM organizations WHERE account_id = $1`,
		accountID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
