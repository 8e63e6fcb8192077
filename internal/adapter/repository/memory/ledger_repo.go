package memory

import (
	"context"
	"fmt"

	"github.com/iho/txengine/internal/domain"
)

// LedgerRepository implements usecase.LedgerRepository in memory.
// Records are kept in insertion order and indexed by id.
type LedgerRepository struct {
	history []domain.Transaction
	index   map[domain.TransactionID]int
}

// NewLedgerRepository creates an empty LedgerRepository.
func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		index: make(map[domain.TransactionID]int),
	}
}

// Record appends tx unless its id is already present.
func (r *LedgerRepository) Record(ctx context.Context, tx *domain.Transaction) error {
	if existing, ok := r.index[tx.ID]; ok {
		return fmt.Errorf("%w: %d (owned by client %d)", domain.ErrDuplicateTransaction, tx.ID, r.history[existing].Client)
	}

	r.index[tx.ID] = len(r.history)
	r.history = append(r.history, *tx)
	return nil
}

// Lookup returns a copy of the transaction recorded under id.
func (r *LedgerRepository) Lookup(ctx context.Context, id domain.TransactionID) (*domain.Transaction, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
	}

	tx := r.history[i]
	return &tx, nil
}

// UpdateState sets the dispute state of the transaction recorded under id.
func (r *LedgerRepository) UpdateState(ctx context.Context, id domain.TransactionID, state domain.DisputeState) error {
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", domain.ErrTransactionNotFound, id)
	}

	r.history[i].State = state
	return nil
}

// Len returns the number of recorded transactions.
func (r *LedgerRepository) Len(ctx context.Context) int {
	return len(r.history)
}
