package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/hall"
)

type CreateHallRequest struct {
	Code            string `json:"code" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Capacity        int    `json:"capacity" binding:"required,min=1"`
	HourlyRateCents int64  `json:"hourly_rate_cents" binding:"min=0"`
}

type UpdateHallRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1"`
	Capacity        *int    `json:"capacity" binding:"omitempty,min=1"`
	HourlyRateCents *int64  `json:"hourly_rate_cents" binding:"omitempty,min=0"`
	IsActive        *bool   `json:"is_active"`
}

type HallResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	Name            string    `json:"name"`
	Capacity        int       `json:"capacity"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	IsActive        bool      `json:"is_active"`
	HasPhoto        bool      `json:"has_photo"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HallTag is the minimal embedding of a hall in booking responses.
type HallTag struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

func NewHallResponse(h *hall.ConferenceHall) HallResponse {
	return HallResponse{
		ID:              h.ID,
		Code:            h.Code,
		Name:            h.Name,
		Capacity:        h.Capacity,
		HourlyRateCents: h.HourlyRateCents,
		IsActive:        h.IsActive,
		HasPhoto:        h.PhotoPath != "",
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}
