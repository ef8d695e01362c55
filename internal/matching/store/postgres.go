package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"talentry/internal/matching/models"
	id "talentry/pkg/domain"
	"talentry/pkg/platform/sentinel"
)

// Postgres persists the matrix in the compatibility_records table. This store
// runs on pgx rather than database/sql: the pair key makes every write an
// upsert, and pgx binds the criteria text[] natively.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Upsert writes the record for its pair. Re-evaluations replace the previous
// cell wholesale, including criteria and the evaluation timestamp.
func (s *Postgres) Upsert(ctx context.Context, record *models.CompatibilityRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO compatibility_records (
			talent_id, opportunity_id, score, confidence, criteria, evaluated_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (talent_id, opportunity_id) DO UPDATE
		SET score        = EXCLUDED.score,
		    confidence   = EXCLUDED.confidence,
		    criteria     = EXCLUDED.criteria,
		    evaluated_at = EXCLUDED.evaluated_at`,
		record.TalentID.String(),
		record.OpportunityID.String(),
		record.Score,
		record.Confidence,
		record.Criteria,
		record.EvaluatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert compatibility record: %w", err)
	}
	return nil
}

func (s *Postgres) FindByPair(ctx context.Context, talentID, opportunityID id.AccountID) (*models.CompatibilityRecord, error) {
	record := models.CompatibilityRecord{
		TalentID:      talentID,
		OpportunityID: opportunityID,
	}
	err := s.pool.QueryRow(ctx, `
		SELECT score, confidence, criteria, evaluated_at
		FROM compatibility_records
		WHERE talent_id = $1 AND opportunity_id = $2`,
		talentID.String(),
		opportunityID.String(),
	).Scan(
		&record.Score,
		&record.Confidence,
		&record.Criteria,
		&record.EvaluatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find compatibility record: %w", err)
	}
	if record.Criteria == nil {
		record.Criteria = []string{}
	}
	return &record, nil
}
