package domain

import (
	"fmt"
	"strings"
)

type EventType string

const (
	EventDeposit    EventType = "deposit"
	EventWithdrawal EventType = "withdrawal"
	EventDispute    EventType = "dispute"
	EventResolve    EventType = "resolve"
	EventChargeback EventType = "chargeback"
)

// ParseEventType parses a case-insensitive event type name.
func ParseEventType(s string) (EventType, error) {
	t := EventType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case EventDeposit, EventWithdrawal, EventDispute, EventResolve, EventChargeback:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown event type %q", ErrMalformedRecord, s)
	}
}

// Event is one parsed input row. Amount is kept as the raw decimal string so
// that amount validation is reported against the client that sent it.
type Event struct {
	Type   EventType
	Client ClientID
	Tx     TransactionID
	Amount string
}

// ParseAmount returns the event amount. Deposits and withdrawals must carry
// one.
func (e *Event) ParseAmount() (Money, error) {
	if strings.TrimSpace(e.Amount) == "" {
		return 0, fmt.Errorf("%w: %s %d has no amount", ErrInvalidAmount, e.Type, e.Tx)
	}
	return ParseMoney(e.Amount)
}
