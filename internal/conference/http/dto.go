package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/conference"
	hallHttp "github.com/sainamthip/resort-booking-backend/internal/hall/http"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/request"
)

type CreateBookingRequest struct {
	HallID    string    `json:"hall_id" binding:"required,uuid"`
	Title     string    `json:"title" binding:"required"`
	StartsAt  time.Time `json:"starts_at" binding:"required"`
	EndsAt    time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
	Attendees int       `json:"attendees" binding:"required,min=1"`
}

type UpdateBookingRequest struct {
	HallID    *string    `json:"hall_id" binding:"omitempty,uuid"`
	Title     *string    `json:"title" binding:"omitempty,min=1"`
	StartsAt  *time.Time `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at"`
	Attendees *int       `json:"attendees" binding:"omitempty,min=1"`
}

type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,min=1"`
}

type ListBookingsRequest struct {
	HallID    string `form:"hall_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=pending approved confirmed completed cancelled"`
	From      string `form:"from" binding:"omitempty"`
	To        string `form:"to" binding:"omitempty"`
	request.ListParams
}

type AvailabilityRequest struct {
	HallID   string    `form:"hall_id" binding:"required,uuid"`
	StartsAt time.Time `form:"starts_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndsAt   time.Time `form:"ends_at" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

type AvailabilityResponse struct {
	HallID   string    `json:"hall_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Free     bool      `json:"free"`
}

type BookingResponse struct {
	ID            string            `json:"id"`
	Ref           string            `json:"ref"`
	Hall          hallHttp.HallTag  `json:"hall"`
	Title         string            `json:"title"`
	StartsAt      time.Time         `json:"starts_at"`
	EndsAt        time.Time         `json:"ends_at"`
	Attendees     int               `json:"attendees"`
	Status        string            `json:"status"`
	InvoiceNumber string            `json:"invoice_number,omitempty"`
	ApprovedBy    string            `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time        `json:"approved_at,omitempty"`
	AmountCents   int64             `json:"amount_cents"`
	PaidCents     int64             `json:"paid_cents"`
	PaymentStatus string            `json:"payment_status"`
	CreatedBy     string            `json:"created_by"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewBookingResponse(b *conference.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Ref:           b.Ref,
		Hall:          hallHttp.HallTag{ID: b.HallID, Code: b.HallCode, Name: b.HallName},
		Title:         b.Title,
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt,
		Attendees:     b.Attendees,
		Status:        string(b.Status),
		InvoiceNumber: b.InvoiceNumber,
		ApprovedBy:    b.ApprovedBy,
		ApprovedAt:    b.ApprovedAt,
		AmountCents:   b.AmountCents,
		PaidCents:     b.PaidCents,
		PaymentStatus: string(b.PaymentStatus),
		CreatedBy:     b.CreatedBy,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
