// Package postgres persists audit events to the audit_events table.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"talentry/internal/audit"
	id "talentry/pkg/domain"
)

// Store implements audit.Store on database/sql. Events are written directly;
// durability beyond the database (Kafka) is the sink's job, not the store's.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	var accountID any
	if !event.AccountID.IsZero() {
		accountID = event.AccountID.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, category, account_id, subject, action, reason,
			request_id, client_ip, device_label, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		uuid.New(),
		string(event.Category),
		accountID,
		event.Subject,
		event.Action,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.DeviceLabel,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *Store) ListByAccount(ctx context.Context, accountID id.AccountID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, account_id, subject, action, reason,
		       request_id, client_ip, device_label, occurred_at
		FROM audit_events
		WHERE account_id = $1
		ORDER BY occurred_at ASC`,
		accountID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			event    audit.Event
			category string
			rawID    sql.NullString
		)
		if err := rows.Scan(
			&category,
			&rawID,
			&event.Subject,
			&event.Action,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
			&event.DeviceLabel,
			&event.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		if rawID.Valid {
			parsed, parseErr := id.ParseAccountID(rawID.String)
			if parseErr != nil {
				return nil, fmt.Errorf("scan audit account id: %w", parseErr)
			}
			event.AccountID = parsed
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
