package memory

import (
	"context"
	"fmt"

	"github.com/iho/txengine/internal/domain"
)

// AccountRepository implements usecase.AccountRepository in memory.
type AccountRepository struct {
	accounts map[domain.ClientID]*domain.Account
	order    []domain.ClientID
}

// NewAccountRepository creates an empty AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[domain.ClientID]*domain.Account),
	}
}

// Get returns a copy of the client's account or domain.ErrAccountNotFound.
func (r *AccountRepository) Get(ctx context.Context, client domain.ClientID) (*domain.Account, error) {
	acc, ok := r.accounts[client]
	if !ok {
		return nil, fmt.Errorf("%w: client %d", domain.ErrAccountNotFound, client)
	}

	copied := *acc
	return &copied, nil
}

// Save stores account, inserting it on first save. A locked account cannot
// be unlocked.
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	current, ok := r.accounts[account.Client]
	if !ok {
		current = domain.NewAccount(account.Client)
		r.accounts[account.Client] = current
		r.order = append(r.order, account.Client)
	}
	if current.Locked && !account.Locked {
		return fmt.Errorf("client %d: locked account cannot be unlocked", account.Client)
	}

	*current = *account
	return nil
}

// List returns copies of all accounts in first-save order.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(r.order))
	for _, client := range r.order {
		copied := *r.accounts[client]
		accounts = append(accounts, &copied)
	}
	return accounts, nil
}
