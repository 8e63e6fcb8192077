package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/iho/txengine/internal/domain"
	"github.com/iho/txengine/internal/infrastructure/metrics"
)

// AccountPolicy tunes rules the event stream alone does not decide.
type AccountPolicy struct {
	// FreezeLocked rejects every event for a client whose account was
	// locked by a chargeback.
	FreezeLocked bool
}

// AccountUseCase applies events to the ledger and client snapshots. Each
// event is validated in full before anything is written: the new snapshot is
// computed as a value, the ledger is written, and the snapshot is saved last.
type AccountUseCase struct {
	ledgerRepo  LedgerRepository
	accountRepo AccountRepository
	policy      AccountPolicy
	metrics     *metrics.Metrics
}

func NewAccountUseCase(
	ledgerRepo LedgerRepository,
	accountRepo AccountRepository,
	policy AccountPolicy,
	metrics *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		policy:      policy,
		metrics:     metrics,
	}
}

// Apply validates event and applies it. A returned error for which
// domain.IsRejection is true means the event was discarded and no state
// changed. A client's snapshot is created by its first accepted event.
func (uc *AccountUseCase) Apply(ctx context.Context, event *domain.Event) error {
	account, err := uc.accountRepo.Get(ctx, event.Client)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		account = domain.NewAccount(event.Client)
	case err != nil:
		return err
	}

	if account.Locked && uc.policy.FreezeLocked {
		return fmt.Errorf("%w: client %d, %s %d", domain.ErrAccountLocked, event.Client, event.Type, event.Tx)
	}

	switch event.Type {
	case domain.EventDeposit:
		return uc.deposit(ctx, account, event)
	case domain.EventWithdrawal:
		return uc.withdraw(ctx, account, event)
	case domain.EventDispute:
		return uc.dispute(ctx, account, event)
	case domain.EventResolve:
		return uc.resolve(ctx, account, event)
	case domain.EventChargeback:
		return uc.chargeback(ctx, account, event)
	default:
		return fmt.Errorf("%w: unknown event type %q", domain.ErrMalformedRecord, event.Type)
	}
}

func (uc *AccountUseCase) deposit(ctx context.Context, account *domain.Account, event *domain.Event) error {
	amount, err := event.ParseAmount()
	if err != nil {
		return err
	}

	next, err := account.Deposit(amount)
	if err != nil {
		return fmt.Errorf("deposit %d: %w", event.Tx, err)
	}

	if err := uc.record(ctx, event, domain.KindDeposit, amount); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.DepositAmount.Observe(amount.Decimal().InexactFloat64())
	}

	return uc.accountRepo.Save(ctx, &next)
}

func (uc *AccountUseCase) withdraw(ctx context.Context, account *domain.Account, event *domain.Event) error {
	amount, err := event.ParseAmount()
	if err != nil {
		return err
	}

	next, err := account.Withdraw(amount)
	if err != nil {
		return fmt.Errorf("withdrawal %d: %w", event.Tx, err)
	}

	if err := uc.record(ctx, event, domain.KindWithdrawal, amount); err != nil {
		return err
	}

	return uc.accountRepo.Save(ctx, &next)
}

func (uc *AccountUseCase) record(ctx context.Context, event *domain.Event, kind domain.TransactionKind, amount domain.Money) error {
	tx, err := domain.NewTransaction(event.Tx, event.Client, kind, amount)
	if err != nil {
		return err
	}

	if err := uc.ledgerRepo.Record(ctx, tx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsRecorded.WithLabelValues(string(kind)).Inc()
	}

	return nil
}

func (uc *AccountUseCase) dispute(ctx context.Context, account *domain.Account, event *domain.Event) error {
	tx, err := uc.ledgerRepo.Lookup(ctx, event.Tx)
	if err != nil {
		return err
	}

	state, err := tx.Dispute(event.Client)
	if err != nil {
		return err
	}

	next, err := account.Hold(tx.Amount)
	if err != nil {
		return fmt.Errorf("dispute %d: %w", tx.ID, err)
	}

	return uc.commit(ctx, tx.ID, state, &next)
}

func (uc *AccountUseCase) resolve(ctx context.Context, account *domain.Account, event *domain.Event) error {
	tx, err := uc.ledgerRepo.Lookup(ctx, event.Tx)
	if err != nil {
		return err
	}

	state, err := tx.Resolve(event.Client)
	if err != nil {
		return err
	}

	next, err := account.Release(tx.Amount)
	if err != nil {
		return fmt.Errorf("resolve %d: %w", tx.ID, err)
	}

	return uc.commit(ctx, tx.ID, state, &next)
}

func (uc *AccountUseCase) chargeback(ctx context.Context, account *domain.Account, event *domain.Event) error {
	tx, err := uc.ledgerRepo.Lookup(ctx, event.Tx)
	if err != nil {
		return err
	}

	state, err := tx.Chargeback(event.Client)
	if err != nil {
		return err
	}

	next, err := account.Chargeback(tx.Amount)
	if err != nil {
		return fmt.Errorf("chargeback %d: %w", tx.ID, err)
	}

	if err := uc.commit(ctx, tx.ID, state, &next); err != nil {
		return err
	}

	if uc.metrics != nil && !account.Locked {
		uc.metrics.AccountsLocked.Inc()
	}

	return nil
}

func (uc *AccountUseCase) commit(ctx context.Context, id domain.TransactionID, state domain.DisputeState, next *domain.Account) error {
	if err := uc.ledgerRepo.UpdateState(ctx, id, state); err != nil {
		return err
	}
	return uc.accountRepo.Save(ctx, next)
}
