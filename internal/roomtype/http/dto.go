package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
)

type CreateRoomTypeRequest struct {
	Code          string `json:"code" binding:"required"`
	Name          string `json:"name" binding:"required"`
	BaseRateCents int64  `json:"base_rate_cents" binding:"min=0"`
	MaxOccupancy  int    `json:"max_occupancy" binding:"required,min=1"`
}

type UpdateRoomTypeRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=1"`
	BaseRateCents *int64  `json:"base_rate_cents" binding:"omitempty,min=0"`
	MaxOccupancy  *int    `json:"max_occupancy" binding:"omitempty,min=1"`
}

type RoomTypeResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	BaseRateCents int64     `json:"base_rate_cents"`
	MaxOccupancy  int       `json:"max_occupancy"`
	CreatedAt     time.Time `json:"created_at"`
}

// RoomTypeTag is the minimal embedding of a room type in room and
// reservation responses.
type RoomTypeTag struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewRoomTypeResponse(rt *roomtype.RoomType) RoomTypeResponse {
	return RoomTypeResponse{
		ID:            rt.ID,
		Code:          rt.Code,
		Name:          rt.Name,
		BaseRateCents: rt.BaseRateCents,
		MaxOccupancy:  rt.MaxOccupancy,
		CreatedAt:     rt.CreatedAt,
	}
}
