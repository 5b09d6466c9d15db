package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/timeslot"
)

type CreateSlotRequest struct {
	Label      string `json:"label" binding:"required"`
	StartsAt   string `json:"starts_at" binding:"required,len=5"`
	EndsAt     string `json:"ends_at" binding:"required,len=5"`
	MaxPersons int    `json:"max_persons" binding:"required,min=1"`
	PriceCents int64  `json:"price_cents" binding:"min=0"`
}

type UpdateSlotRequest struct {
	MaxPersons *int   `json:"max_persons" binding:"omitempty,min=1"`
	PriceCents *int64 `json:"price_cents" binding:"omitempty,min=0"`
	IsActive   *bool  `json:"is_active"`
}

type SlotResponse struct {
	ID         string    `json:"id"`
	Label      string    `json:"label"`
	StartsAt   string    `json:"starts_at"`
	EndsAt     string    `json:"ends_at"`
	MaxPersons int       `json:"max_persons"`
	PriceCents int64     `json:"price_cents"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// SlotTag is the minimal embedding of a slot in booking responses.
type SlotTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func NewSlotResponse(s *timeslot.TimeSlot) SlotResponse {
	return SlotResponse{
		ID:         s.ID,
		Label:      s.Label,
		StartsAt:   s.StartsAt,
		EndsAt:     s.EndsAt,
		MaxPersons: s.MaxPersons,
		PriceCents: s.PriceCents,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}
