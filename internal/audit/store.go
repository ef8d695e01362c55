package audit

import (
	"context"

	id "talentry/pkg/domain"
)

// Store persists audit events. Implementations live under store/.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByAccount(ctx context.Context, accountID id.AccountID) ([]Event, error)
}

// Sink receives every delivered event in addition to the primary store.
// Publish failures do not block persistence.
type Sink interface {
	Publish(ctx context.Context, event Event) error
	Close()
}
