package domain

import "fmt"

// Account is the balance snapshot of one client.
// Total always equals Available + Held.
type Account struct {
	Client    ClientID
	Available Money
	Held      Money
	Total     Money
	Locked    bool
}

// NewAccount returns an empty, unlocked account for client.
func NewAccount(client ClientID) *Account {
	return &Account{Client: client}
}

// Deposit returns the account after crediting amount to available and total.
func (a Account) Deposit(amount Money) (Account, error) {
	available, err := a.Available.Add(amount)
	if err != nil {
		return a, fmt.Errorf("deposit available: %w", err)
	}
	total, err := a.Total.Add(amount)
	if err != nil {
		return a, fmt.Errorf("deposit total: %w", err)
	}

	a.Available = available
	a.Total = total
	return a, nil
}

// ValidateDebit checks that available funds cover amount.
func (a Account) ValidateDebit(amount Money) error {
	if a.Available < amount {
		return fmt.Errorf("%w: client %d has %s available, requested %s",
			ErrInsufficientFunds, a.Client, a.Available, amount)
	}
	return nil
}

// Withdraw returns the account after debiting amount from available and total.
func (a Account) Withdraw(amount Money) (Account, error) {
	if err := a.ValidateDebit(amount); err != nil {
		return a, err
	}

	available, err := a.Available.Sub(amount)
	if err != nil {
		return a, fmt.Errorf("withdraw available: %w", err)
	}
	total, err := a.Total.Sub(amount)
	if err != nil {
		return a, fmt.Errorf("withdraw total: %w", err)
	}

	a.Available = available
	a.Total = total
	return a, nil
}

// Hold moves amount from available to held. Available may go negative when
// the disputed funds were already withdrawn.
func (a Account) Hold(amount Money) (Account, error) {
	if err := move(amount, &a.Available, &a.Held); err != nil {
		return a, fmt.Errorf("hold: %w", err)
	}
	return a, nil
}

// Release moves amount from held back to available.
func (a Account) Release(amount Money) (Account, error) {
	if err := move(amount, &a.Held, &a.Available); err != nil {
		return a, fmt.Errorf("release: %w", err)
	}
	return a, nil
}

// Chargeback removes amount from held and total and locks the account.
func (a Account) Chargeback(amount Money) (Account, error) {
	held, err := a.Held.Sub(amount)
	if err != nil {
		return a, fmt.Errorf("chargeback held: %w", err)
	}
	total, err := a.Total.Sub(amount)
	if err != nil {
		return a, fmt.Errorf("chargeback total: %w", err)
	}

	a.Held = held
	a.Total = total
	a.Locked = true
	return a, nil
}

// Balanced reports whether Total == Available + Held.
func (a Account) Balanced() bool {
	sum, err := a.Available.Add(a.Held)
	return err == nil && sum == a.Total
}

// move transfers amount from one balance field to another. Neither field is
// written unless both results are in range.
func move(amount Money, from, to *Money) error {
	f, err := from.Sub(amount)
	if err != nil {
		return err
	}
	t, err := to.Add(amount)
	if err != nil {
		return err
	}

	*from = f
	*to = t
	return nil
}
