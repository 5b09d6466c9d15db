package room

import (
	"net/http"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound    = apperror.New(http.StatusNotFound, "room not found")
	ErrEmptyNumber = apperror.New(http.StatusBadRequest, "room number cannot be empty")
	ErrNumberTaken = apperror.New(http.StatusConflict, "room with this number already exists")
	ErrBadStatus   = apperror.New(http.StatusBadRequest, "invalid room status")
	ErrNoPhoto     = apperror.New(http.StatusNotFound, "room has no photo")
)

// Status is the housekeeping state of a physical room. It is distinct from
// reservation status: a reservation can be confirmed while the room is still
// occupied by the previous guest.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusCleaning    Status = "cleaning"
	StatusMaintenance Status = "maintenance"
)

// ValidStatus reports whether s is a known room status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusCleaning, StatusMaintenance:
		return true
	}
	return false
}

// Room is a physical hotel room.
type Room struct {
	ID         string // UUID
	Number     string // business key, e.g. "204"
	RoomTypeID string
	TypeCode   string
	TypeName   string
	Floor      int
	Status     Status
	PhotoPath  string // relative path inside the asset store, empty when none
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	RoomTypeID string
	Status     string
	Floor      int
	Page       int
	PageSize   int
}
