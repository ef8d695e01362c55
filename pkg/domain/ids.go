// Package domain holds the typed identifiers shared across services.
//
// IDs are distinct types over uuid.UUID so an account ID can never be passed
// where an event ID is expected. Parse functions enforce the trust-boundary
// invariant: IDs must be valid, non-empty, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "talentry/pkg/domain-errors"
)

// AccountID identifies the owner of a registry record. Talent profiles,
// opportunities, and organizations are all keyed by the account that owns them.
type AccountID uuid.UUID

// EventID identifies an audit event.
type EventID uuid.UUID

// NewAccountID returns a random account ID.
func NewAccountID() AccountID {
	return AccountID(uuid.New())
}

// NewEventID returns a random event ID.
func NewEventID() EventID {
	return EventID(uuid.New())
}

func (id AccountID) String() string { return uuid.UUID(id).String() }
func (id EventID) String() string   { return uuid.UUID(id).String() }

// IsZero reports whether the ID is the nil UUID.
func (id AccountID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// ParseAccountID parses an account ID from its string form.
func ParseAccountID(value string) (AccountID, error) {
	parsed, err := parseID(value)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID(parsed), nil
}

// ParseEventID parses an event ID from its string form.
func ParseEventID(value string) (EventID, error) {
	parsed, err := parseID(value)
	if err != nil {
		return EventID{}, err
	}
	return EventID(parsed), nil
}

// parseID is the shared validation path so every ID type rejects the same
// inputs: empty strings, malformed UUIDs, and the nil UUID.
func parseID(value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be empty")
	}
	parsed, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}
