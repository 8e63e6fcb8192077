package domain

import "errors"

var (
	// Input errors
	ErrMalformedRecord = errors.New("malformed record")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidKind     = errors.New("invalid transaction kind")

	// Money errors
	ErrOverflow = errors.New("arithmetic overflow")

	// Ledger errors
	ErrDuplicateTransaction = errors.New("transaction id already recorded")
	ErrTransactionNotFound  = errors.New("transaction not found")

	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrOwnershipMismatch = errors.New("transaction belongs to another client")
	ErrNotDisputable     = errors.New("transaction cannot be disputed")
	ErrNotDisputed       = errors.New("transaction is not under dispute")
	ErrAccountLocked     = errors.New("account is locked")
)

// Rejection reasons, used as log fields and metric labels.
const (
	ReasonMalformedRecord    = "malformed_record"
	ReasonDuplicateID        = "duplicate_id"
	ReasonInvalidAmount      = "invalid_amount"
	ReasonArithmeticOverflow = "arithmetic_overflow"
	ReasonInsufficientFunds  = "insufficient_funds"
	ReasonUnknownReference   = "unknown_reference"
	ReasonOwnershipMismatch  = "ownership_mismatch"
	ReasonNotDisputable      = "not_disputable"
	ReasonAccountLocked      = "account_locked"
	ReasonInternal           = "internal"
)

var reasons = []struct {
	err    error
	reason string
}{
	{ErrMalformedRecord, ReasonMalformedRecord},
	{ErrDuplicateTransaction, ReasonDuplicateID},
	{ErrInvalidAmount, ReasonInvalidAmount},
	{ErrInvalidKind, ReasonInvalidAmount},
	{ErrOverflow, ReasonArithmeticOverflow},
	{ErrInsufficientFunds, ReasonInsufficientFunds},
	{ErrTransactionNotFound, ReasonUnknownReference},
	{ErrOwnershipMismatch, ReasonOwnershipMismatch},
	{ErrNotDisputable, ReasonNotDisputable},
	{ErrNotDisputed, ReasonNotDisputable},
	{ErrAccountLocked, ReasonAccountLocked},
}

// Reason maps err to its rejection category. Errors outside the taxonomy
// map to ReasonInternal.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternal
}

// IsRejection reports whether err only affects the event that caused it.
func IsRejection(err error) bool {
	return err != nil && Reason(err) != ReasonInternal
}
