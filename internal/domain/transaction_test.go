package domain

import (
	"errors"
	"testing"
)

func TestDisputeState_Transition(t *testing.T) {
	tests := []struct {
		from    DisputeState
		op      DisputeOp
		want    DisputeState
		wantErr error
	}{
		{StateValid, OpDispute, StateDisputed, nil},
		{StateDisputed, OpResolve, StateValid, nil},
		{StateDisputed, OpChargeback, StateChargedBack, nil},
		{StateDisputed, OpDispute, StateDisputed, ErrNotDisputable},
		{StateChargedBack, OpDispute, StateChargedBack, ErrNotDisputable},
		{StateValid, OpResolve, StateValid, ErrNotDisputed},
		{StateValid, OpChargeback, StateValid, ErrNotDisputed},
		{StateChargedBack, OpResolve, StateChargedBack, ErrNotDisputed},
		{StateChargedBack, OpChargeback, StateChargedBack, ErrNotDisputed},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_"+string(tt.op), func(t *testing.T) {
			got, err := tt.from.Transition(tt.op)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected state %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewTransaction(t *testing.T) {
	tx, err := NewTransaction(1, 2, KindDeposit, 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.State != StateValid {
		t.Errorf("expected initial state valid, got %s", tx.State)
	}

	if _, err := NewTransaction(1, 2, "transfer", 10000); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("expected ErrInvalidKind, got %v", err)
	}
	if _, err := NewTransaction(1, 2, KindDeposit, -1); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestTransaction_DisputeChecks(t *testing.T) {
	deposit := &Transaction{ID: 1, Client: 1, Kind: KindDeposit, Amount: 10000, State: StateValid}
	withdrawal := &Transaction{ID: 2, Client: 1, Kind: KindWithdrawal, Amount: 5000, State: StateValid}

	if _, err := deposit.Dispute(2); !errors.Is(err, ErrOwnershipMismatch) {
		t.Errorf("expected ErrOwnershipMismatch, got %v", err)
	}
	if _, err := withdrawal.Dispute(1); !errors.Is(err, ErrNotDisputable) {
		t.Errorf("expected ErrNotDisputable for withdrawal, got %v", err)
	}

	state, err := deposit.Dispute(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateDisputed {
		t.Errorf("expected disputed, got %s", state)
	}
	if deposit.State != StateValid {
		t.Errorf("Dispute must not mutate the transaction, state is %s", deposit.State)
	}
}

func TestTransaction_ResolveAndChargeback(t *testing.T) {
	disputed := &Transaction{ID: 1, Client: 1, Kind: KindDeposit, Amount: 10000, State: StateDisputed}

	if state, err := disputed.Resolve(1); err != nil || state != StateValid {
		t.Errorf("expected valid, got %s (%v)", state, err)
	}
	if state, err := disputed.Chargeback(1); err != nil || state != StateChargedBack {
		t.Errorf("expected charged_back, got %s (%v)", state, err)
	}
	if _, err := disputed.Chargeback(7); !errors.Is(err, ErrOwnershipMismatch) {
		t.Errorf("expected ErrOwnershipMismatch, got %v", err)
	}

	valid := &Transaction{ID: 3, Client: 1, Kind: KindDeposit, Amount: 10000, State: StateValid}
	if _, err := valid.Resolve(1); !errors.Is(err, ErrNotDisputed) {
		t.Errorf("expected ErrNotDisputed, got %v", err)
	}
	if _, err := valid.Chargeback(1); !errors.Is(err, ErrNotDisputed) {
		t.Errorf("expected ErrNotDisputed, got %v", err)
	}
}
