package roomtype

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound     = apperror.New(http.StatusNotFound, "room type not found")
	ErrEmptyCode    = apperror.New(http.StatusBadRequest, "code cannot be empty")
	ErrEmptyName    = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrBadOccupancy = apperror.New(http.StatusBadRequest, "max occupancy must be positive")
	ErrCodeTaken    = apperror.New(http.StatusConflict, "room type with this code already exists")
)

// RoomType groups rooms sharing a nightly rate and an occupancy limit.
type RoomType struct {
	ID            string // UUID
	Code          string // business key, e.g. "DLX"
	Name          string
	BaseRateCents int64 // per night
	MaxOccupancy  int   // adults + children
	CreatedAt     time.Time
}

// Filter defines parameters for listing room types.
type Filter struct {
	Page     int
	PageSize int
}
