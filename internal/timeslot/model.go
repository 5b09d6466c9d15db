package timeslot

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "time slot not found")
	ErrEmptyLabel   = apperror.New(http.StatusBadRequest, "label cannot be empty")
	ErrBadCapacity  = apperror.New(http.StatusBadRequest, "max persons must be positive")
	ErrBadTimeRange = apperror.New(http.StatusBadRequest, "slot start must be before slot end")
	ErrDuplicate    = apperror.New(http.StatusConflict, "time slot with this label already exists")
)

// TimeSlot is a fixed pool session, e.g. "06:00-08:00". Slots are discrete
// buckets: a pool booking occupies exactly one slot on one calendar date.
type TimeSlot struct {
	ID         string // UUID
	Label      string // business key, e.g. "06:00-08:00"
	StartsAt   string // time of day, "HH:MM"
	EndsAt     string // time of day, "HH:MM"
	MaxPersons int
	PriceCents int64 // per person
	IsActive   bool
	CreatedAt  time.Time
}

// Filter defines parameters for listing time slots.
type Filter struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
