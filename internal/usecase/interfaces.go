package usecase

import (
	"context"

	"github.com/iho/txengine/internal/domain"
)

// LedgerRepository is the append-only store of accepted transactions.
type LedgerRepository interface {
	// Record inserts tx. It fails with domain.ErrDuplicateTransaction when the
	// id is already present, whichever client owns it.
	Record(ctx context.Context, tx *domain.Transaction) error
	// Lookup returns a copy of the transaction or domain.ErrTransactionNotFound.
	Lookup(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error)
	// UpdateState changes only the dispute state of a recorded transaction.
	UpdateState(ctx context.Context, id domain.TransactionID, state domain.DisputeState) error
	Len(ctx context.Context) int
}

// AccountRepository holds one snapshot per client.
type AccountRepository interface {
	// Get returns a copy of the client's snapshot or
	// domain.ErrAccountNotFound.
	Get(ctx context.Context, client domain.ClientID) (*domain.Account, error)
	// Save inserts or replaces a snapshot.
	Save(ctx context.Context, account *domain.Account) error
	// List returns snapshots in first-save order.
	List(ctx context.Context) ([]*domain.Account, error)
}

// EventSource yields parsed events in arrival order and io.EOF at the end.
// Rows that cannot be parsed are reported with domain.ErrMalformedRecord;
// the source stays usable after them.
type EventSource interface {
	Next(ctx context.Context) (*domain.Event, error)
}

// EventApplier applies one event to the run state.
type EventApplier interface {
	Apply(ctx context.Context, event *domain.Event) error
}
