package conference

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

// RefPrefix is the booking-reference prefix for conference bookings.
const RefPrefix = "CB"

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "conference booking not found")
	ErrHallNotFound  = apperror.New(http.StatusNotFound, "conference hall not found")
	ErrHallInactive  = apperror.New(http.StatusBadRequest, "conference hall is not active")
	ErrEmptyTitle    = apperror.New(http.StatusBadRequest, "title cannot be empty")
	ErrBadTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrTimePast      = apperror.New(http.StatusBadRequest, "cannot book a time in the past")
	ErrBadAttendees  = apperror.New(http.StatusBadRequest, "attendees must be positive")
	ErrNotPending    = apperror.New(http.StatusBadRequest, "only pending bookings can be approved")
	ErrNotApproved   = apperror.New(http.StatusBadRequest, "only approved bookings can be confirmed")
	ErrNotConfirmed  = apperror.New(http.StatusBadRequest, "only confirmed bookings can be completed")
	ErrNotEditable   = apperror.New(http.StatusBadRequest, "booking can no longer be changed")
	ErrNotCancelled  = apperror.New(http.StatusBadRequest, "only cancelled bookings can be reactivated")
	ErrNotActive     = apperror.New(http.StatusBadRequest, "booking is not active")
	ErrTerminalState = apperror.New(http.StatusConflict, "cannot delete a confirmed or completed booking")

	// ErrOccupied is the sentinel wrapped by every occupancy rejection, so
	// callers can errors.Is against it.
	ErrOccupied = errors.New("hall is occupied")

	ErrHallOccupied = &apperror.AppError{
		Code:    http.StatusConflict,
		Message: "hall is already booked for this time",
		Err:     ErrOccupied,
	}
)

// AttendeesError builds the rejection carrying the hall's attendee limit.
func AttendeesError(capacity int) error {
	return apperror.Newf(http.StatusBadRequest, "hall capacity is %d attendees", capacity)
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is a conference hall booking: one event holding a hall exclusively
// for the [StartsAt, EndsAt) window.
type Booking struct {
	ID            string // UUID
	Ref           string // e.g. CB-482913-7
	HallID        string
	HallCode      string
	HallName      string
	Title         string
	StartsAt      time.Time
	EndsAt        time.Time
	Attendees     int
	Status        Status
	InvoiceNumber string // assigned on approval, never regenerated
	ApprovedBy    string
	ApprovedAt    *time.Time
	AmountCents   int64
	PaidCents     int64
	PaymentStatus payment.Status
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the booking currently holds its hall window.
func (b *Booking) Active() bool {
	return b.Status != StatusCancelled
}

// Overlaps reports whether the booking's window intersects [start, end).
// Windows are half-open, so back-to-back bookings do not collide.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartsAt.Before(end) && b.EndsAt.After(start)
}

// BilledHours is the billable duration, rounded up to whole hours.
func BilledHours(start, end time.Time) int64 {
	d := end.Sub(start)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// FormatInvoiceNumber formats a drawn invoice sequence value.
func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

type Filter struct {
	HallID    string
	Status    string
	From      *time.Time
	To        *time.Time
	CreatedBy string
	Page      int
	PageSize  int
	SortOrder string
}
