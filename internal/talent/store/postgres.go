package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"talentry/internal/talent/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Postgres persists profiles in the talent_profiles table. Uniqueness per
// account rides the primary key; conditional create uses ON CONFLICT DO
// NOTHING so concurrent establishes race safely.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateIfAbsent(ctx context.Context, profile *models.TalentProfile) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO talent_profiles (
			account_id, display_name, skills, location, narrative,
			experience_level, availability, created_at, last_active_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (account_id) DO NOTHING`,
		profile.AccountID.String(),
		profile.DisplayName,
		pq.Array(profile.Skills),
		profile.Location,
		profile.Narrative,
		profile.ExperienceLevel,
		string(profile.Availability),
		profile.CreatedAt,
		profile.LastActiveAt,
	)
	if err != nil {
		return fmt.Errorf("create talent profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create talent profile: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *Postgres) FindByAccount(ctx context.Context, accountID id.AccountID) (*models.TalentProfile, error) {
	var (
		profile      models.TalentProfile
		skills       pq.StringArray
		availability string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT display_name, skills, location, narrative,
		       experience_level, availability, created_at, last_active_at
		FROM talent_profiles
		WHERE account_id = $1`,
		accountID.String(),
	).Scan(
		&profile.DisplayName,
		&skills,
		&profile.Location,
		&profile.Narrative,
		&profile.ExperienceLevel,
		&availability,
		&profile.CreatedAt,
		&profile.LastActiveAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find talent profile: %w", err)
	}

	profile.AccountID = accountID
	profile.Skills = skills
	profile.Availability = models.AvailabilityStatus(availability)
	return &profile, nil
}

func (s *Postgres) Update(ctx context.Context, profile *models.TalentProfile) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE talent_profiles
		SET display_name = $2, skills = $3, location = $4, narrative = $5,
		    experience_level = $6, availability = $7, last_active_at = $8
		WHERE account_id = $1`,
		profile.AccountID.String(),
		profile.DisplayName,
		pq.Array(profile.Skills),
		profile.Location,
		profile.Narrative,
		profile.ExperienceLevel,
		string(profile.Availability),
		profile.LastActiveAt,
	)
	if err != nil {
		return fmt.Errorf("update talent profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update talent profile: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, accountID id.AccountID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM talent_profiles WHERE account_id = $1`,
		accountID.String(),
	)
	if err != nil {
		return fmt.Errorf("delete talent profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete talent profile: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
