package pool

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

// RefPrefix is the booking-reference prefix for pool bookings.
const RefPrefix = "PB"

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "pool booking not found")
	ErrSlotNotFound    = apperror.New(http.StatusNotFound, "time slot not found")
	ErrSlotInactive    = apperror.New(http.StatusBadRequest, "time slot is not active")
	ErrInvalidPersons  = apperror.New(http.StatusBadRequest, "persons must be positive")
	ErrDatePast        = apperror.New(http.StatusBadRequest, "cannot book a past date")
	ErrNotCancelled    = apperror.New(http.StatusBadRequest, "only cancelled bookings can be reactivated")
	ErrNotActive       = apperror.New(http.StatusBadRequest, "booking is not active")
	ErrTerminalState   = apperror.New(http.StatusConflict, "cannot delete a completed booking")
	ErrAlreadyTerminal = apperror.New(http.StatusConflict, "booking already completed or cancelled")

	// ErrCapacity is the sentinel wrapped by every capacity rejection, so
	// callers can errors.Is against it while the message still carries the
	// remaining-spots count.
	ErrCapacity = errors.New("not enough spots available")
)

// CapacityError builds the rejection carrying how many spots remain.
func CapacityError(remaining int) error {
	if remaining < 0 {
		remaining = 0
	}
	return &apperror.AppError{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("only %d spots available", remaining),
		Err:     ErrCapacity,
	}
}

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is a pool session booking: a party of Persons occupying one time
// slot on one calendar date.
type Booking struct {
	ID            string // UUID
	Ref           string // e.g. PB-482913-7
	SlotID        string
	SlotLabel     string
	Date          time.Time // calendar date, midnight UTC
	Persons       int
	Status        Status
	AmountCents   int64
	PaidCents     int64
	PaymentStatus payment.Status
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the booking currently consumes slot capacity.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

type Filter struct {
	SlotID    string
	Status    string
	DateFrom  *time.Time
	DateTo    *time.Time
	CreatedBy string
	Page      int
	PageSize  int
	SortOrder string
}
