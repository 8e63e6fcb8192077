package domain

import "fmt"

// TransactionID identifies a transaction across all clients.
type TransactionID uint32

// ClientID identifies a client account.
type ClientID uint16

type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
)

// DisputeState is the dispute lifecycle position of a recorded transaction.
type DisputeState string

const (
	StateValid       DisputeState = "valid"
	StateDisputed    DisputeState = "disputed"
	StateChargedBack DisputeState = "charged_back"
)

// DisputeOp is an operation on the dispute lifecycle.
type DisputeOp string

const (
	OpDispute    DisputeOp = "dispute"
	OpResolve    DisputeOp = "resolve"
	OpChargeback DisputeOp = "chargeback"
)

// Transition returns the state reached by applying op to s.
//
//	valid    --dispute-->    disputed
//	disputed --resolve-->    valid
//	disputed --chargeback--> charged_back
//
// charged_back is terminal.
func (s DisputeState) Transition(op DisputeOp) (DisputeState, error) {
	switch {
	case op == OpDispute && s == StateValid:
		return StateDisputed, nil
	case op == OpResolve && s == StateDisputed:
		return StateValid, nil
	case op == OpChargeback && s == StateDisputed:
		return StateChargedBack, nil
	case op == OpDispute:
		return s, fmt.Errorf("%w: state is %s", ErrNotDisputable, s)
	case op == OpResolve, op == OpChargeback:
		return s, fmt.Errorf("%w: state is %s", ErrNotDisputed, s)
	default:
		return s, fmt.Errorf("%w: unknown operation %q", ErrNotDisputable, op)
	}
}

// Transaction is a recorded deposit or withdrawal. ID, Client, Kind and
// Amount never change after recording; State follows the dispute lifecycle.
type Transaction struct {
	ID     TransactionID
	Client ClientID
	Kind   TransactionKind
	Amount Money
	State  DisputeState
}

// NewTransaction builds a transaction in the valid state.
func NewTransaction(id TransactionID, client ClientID, kind TransactionKind, amount Money) (*Transaction, error) {
	if kind != KindDeposit && kind != KindWithdrawal {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}

	return &Transaction{
		ID:     id,
		Client: client,
		Kind:   kind,
		Amount: amount,
		State:  StateValid,
	}, nil
}

// Dispute returns the state after disputing t on behalf of client.
func (t *Transaction) Dispute(client ClientID) (DisputeState, error) {
	return t.next(OpDispute, client)
}

// Resolve returns the state after resolving a dispute on t.
func (t *Transaction) Resolve(client ClientID) (DisputeState, error) {
	return t.next(OpResolve, client)
}

// Chargeback returns the state after charging t back.
func (t *Transaction) Chargeback(client ClientID) (DisputeState, error) {
	return t.next(OpChargeback, client)
}

func (t *Transaction) next(op DisputeOp, client ClientID) (DisputeState, error) {
	if t.Client != client {
		return t.State, fmt.Errorf("%w: transaction %d belongs to client %d, not %d",
			ErrOwnershipMismatch, t.ID, t.Client, client)
	}

	if t.Kind != KindDeposit {
		return t.State, fmt.Errorf("%w: transaction %d is a %s", ErrNotDisputable, t.ID, t.Kind)
	}

	state, err := t.State.Transition(op)
	if err != nil {
		return t.State, fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	return state, nil
}
