package hall

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "conference hall not found")
	ErrEmptyCode   = apperror.New(http.StatusBadRequest, "code cannot be empty")
	ErrEmptyName   = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrBadCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrCodeTaken   = apperror.New(http.StatusConflict, "conference hall with this code already exists")
	ErrNoPhoto     = apperror.New(http.StatusNotFound, "conference hall has no photo")
)

// ConferenceHall is a bookable meeting space. Capacity is the attendee limit
// a conference booking must stay within.
type ConferenceHall struct {
	ID              string // UUID
	Code            string // business key, e.g. "HALL-A"
	Name            string
	Capacity        int
	HourlyRateCents int64
	IsActive        bool
	PhotoPath       string // relative path inside the asset store, empty when none
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing conference halls.
type Filter struct {
	ActiveOnly  bool
	MinCapacity int
	Page        int
	PageSize    int
}
