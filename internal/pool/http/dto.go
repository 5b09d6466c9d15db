package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/request"
	"github.com/sainamthip/resort-booking-backend/internal/pool"
	tsHttp "github.com/sainamthip/resort-booking-backend/internal/timeslot/http"
)

type CreateBookingRequest struct {
	SlotID  string `json:"slot_id" binding:"required,uuid"`
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	Persons int    `json:"persons" binding:"required,min=1"`
}

type UpdateBookingRequest struct {
	SlotID  *string `json:"slot_id" binding:"omitempty,uuid"`
	Date    *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Persons *int    `json:"persons" binding:"omitempty,min=1"`
}

type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,min=1"`
}

type ListBookingsRequest struct {
	SlotID    string `form:"slot_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=booked completed cancelled"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	request.ListParams
}

type AvailabilityRequest struct {
	SlotID string `form:"slot_id" binding:"required,uuid"`
	Date   string `form:"date" binding:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	SlotID         string `json:"slot_id"`
	Date           string `json:"date"`
	RemainingSpots int    `json:"remaining_spots"`
}

type BookingResponse struct {
	ID            string         `json:"id"`
	Ref           string         `json:"ref"`
	Slot          tsHttp.SlotTag `json:"slot"`
	Date          string         `json:"date"`
	Persons       int            `json:"persons"`
	Status        string         `json:"status"`
	AmountCents   int64          `json:"amount_cents"`
	PaidCents     int64          `json:"paid_cents"`
	PaymentStatus string         `json:"payment_status"`
	CreatedBy     string         `json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *pool.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Ref:           b.Ref,
		Slot:          tsHttp.SlotTag{ID: b.SlotID, Label: b.SlotLabel},
		Date:          b.Date.Format("2006-01-02"),
		Persons:       b.Persons,
		Status:        string(b.Status),
		AmountCents:   b.AmountCents,
		PaidCents:     b.PaidCents,
		PaymentStatus: string(b.PaymentStatus),
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
