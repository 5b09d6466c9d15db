package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/room"
	rtHttp "github.com/sainamthip/resort-booking-backend/internal/roomtype/http"
)

type CreateRoomRequest struct {
	Number     string `json:"number" binding:"required"`
	RoomTypeID string `json:"room_type_id" binding:"required,uuid"`
	Floor      int    `json:"floor" binding:"min=0"`
}

type UpdateRoomRequest struct {
	RoomTypeID *string `json:"room_type_id" binding:"omitempty,uuid"`
	Floor      *int    `json:"floor" binding:"omitempty,min=0"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available occupied cleaning maintenance"`
}

type RoomResponse struct {
	ID        string             `json:"id"`
	Number    string             `json:"number"`
	Type      rtHttp.RoomTypeTag `json:"type"`
	Floor     int                `json:"floor"`
	Status    string             `json:"status"`
	HasPhoto  bool               `json:"has_photo"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// RoomTag is the minimal embedding of a room in reservation responses.
type RoomTag struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Number:    r.Number,
		Type:      rtHttp.RoomTypeTag{ID: r.RoomTypeID, Code: r.TypeCode, Name: r.TypeName},
		Floor:     r.Floor,
		Status:    string(r.Status),
		HasPhoto:  r.PhotoPath != "",
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
