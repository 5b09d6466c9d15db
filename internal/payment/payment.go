// Package payment holds the money fields shared by every booking domain and
// the rule that derives a payment status from them.
package payment

import (
	"net/http"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusPartial  Status = "partial"
	StatusPaid     Status = "paid"
	StatusRefunded Status = "refunded"
)

var (
	ErrNonPositiveAmount = apperror.New(http.StatusBadRequest, "payment amount must be positive")
	ErrOverpayment       = apperror.New(http.StatusBadRequest, "payment exceeds outstanding amount")
)

// Derive computes the payment status from the total and the amount paid so
// far. Status is always derived, never stored independently of the amounts.
func Derive(totalCents, paidCents int64) Status {
	switch {
	case paidCents <= 0:
		return StatusPending
	case paidCents < totalCents:
		return StatusPartial
	default:
		return StatusPaid
	}
}

// Apply validates a payment of amountCents against the current amounts and
// returns the new paid total and derived status.
func Apply(totalCents, paidCents, amountCents int64) (int64, Status, error) {
	if amountCents <= 0 {
		return 0, "", ErrNonPositiveAmount
	}
	newPaid := paidCents + amountCents
	if newPaid > totalCents {
		return 0, "", ErrOverpayment
	}
	return newPaid, Derive(totalCents, newPaid), nil
}

// Settled reports whether the status clears a guest for check-out.
func Settled(s Status) bool {
	return s == StatusPaid || s == StatusRefunded
}
