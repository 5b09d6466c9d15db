package hotel

import (
	"errors"
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

// RefPrefix is the booking-reference prefix for room reservations.
const RefPrefix = "HR"

var (
	ErrNotFound       = apperror.New(http.StatusNotFound, "room reservation not found")
	ErrRoomNotFound   = apperror.New(http.StatusNotFound, "room not found")
	ErrEmptyGuest     = apperror.New(http.StatusBadRequest, "guest name cannot be empty")
	ErrBadDateRange   = apperror.New(http.StatusBadRequest, "check-in date must be before check-out date")
	ErrDatePast       = apperror.New(http.StatusBadRequest, "cannot reserve past dates")
	ErrBadGuests      = apperror.New(http.StatusBadRequest, "at least one adult is required")
	ErrNotConfirmed   = apperror.New(http.StatusBadRequest, "reservation is not in confirmed state")
	ErrNotCheckedIn   = apperror.New(http.StatusBadRequest, "guest is not checked in")
	ErrNotEditable    = apperror.New(http.StatusBadRequest, "reservation can no longer be changed")
	ErrNotReactivable = apperror.New(http.StatusBadRequest, "only cancelled or no-show reservations can be reactivated")
	ErrNotActive      = apperror.New(http.StatusBadRequest, "reservation is not active")
	ErrTerminalState  = apperror.New(http.StatusConflict, "cannot delete a confirmed or checked-out reservation")
	ErrGuestInHouse   = apperror.New(http.StatusConflict, "cannot delete a reservation while the guest is checked in")
	ErrRoomNotReady   = apperror.New(http.StatusConflict, "room is not ready for check-in")

	// ErrPaymentPending blocks check-out until the bill is settled or
	// refunded. The reservation and the room are left untouched.
	ErrPaymentPending = apperror.New(http.StatusConflict, "outstanding balance must be settled before check-out")

	// ErrUnavailable is the sentinel wrapped by every overlap rejection, so
	// callers can errors.Is against it.
	ErrUnavailable = errors.New("room is reserved")

	ErrRoomReserved = &apperror.AppError{
		Code:    http.StatusConflict,
		Message: "room is already reserved for these nights",
		Err:     ErrUnavailable,
	}
)

// OccupancyError builds the rejection carrying the room type's guest limit.
func OccupancyError(maxOccupancy int) error {
	return apperror.Newf(http.StatusBadRequest, "room sleeps at most %d guests", maxOccupancy)
}

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusCheckedIn  Status = "checked_in"
	StatusCheckedOut Status = "checked_out"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Reservation is a hotel stay: one room held for the [CheckInDate,
// CheckOutDate) night range. The range is half-open, so a departure and an
// arrival may share a date.
type Reservation struct {
	ID            string // UUID
	Ref           string // e.g. HR-482913-7
	RoomID        string
	RoomNumber    string
	RoomTypeCode  string
	GuestName     string
	CheckInDate   time.Time // calendar date, midnight UTC
	CheckOutDate  time.Time // calendar date, midnight UTC
	Adults        int
	Children      int
	Status        Status
	AmountCents   int64
	PaidCents     int64
	PaymentStatus payment.Status
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the reservation holds its room's night range.
// Checked-out, cancelled and no-show reservations free the range.
func (r *Reservation) Active() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCheckedIn
}

// Overlaps reports whether the reservation's nights intersect the half-open
// range [checkIn, checkOut).
func (r *Reservation) Overlaps(checkIn, checkOut time.Time) bool {
	return r.CheckInDate.Before(checkOut) && r.CheckOutDate.After(checkIn)
}

// Nights is the billable night count.
func Nights(checkIn, checkOut time.Time) int64 {
	return int64(checkOut.Sub(checkIn) / (24 * time.Hour))
}

// FreeRoom is a room with no active reservation over a requested night
// range, as returned by the availability search.
type FreeRoom struct {
	RoomID        string
	Number        string
	TypeCode      string
	TypeName      string
	BaseRateCents int64
}

type Filter struct {
	RoomID    string
	Status    string
	GuestName string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
	SortOrder string
}
