package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/hotel"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/request"
	roomHttp "github.com/sainamthip/resort-booking-backend/internal/room/http"
)

type CreateReservationRequest struct {
	RoomID       string `json:"room_id" binding:"required,uuid"`
	GuestName    string `json:"guest_name" binding:"required"`
	CheckInDate  string `json:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `json:"check_out_date" binding:"required,datetime=2006-01-02"`
	Adults       int    `json:"adults" binding:"required,min=1"`
	Children     int    `json:"children" binding:"min=0"`
}

type UpdateReservationRequest struct {
	RoomID       *string `json:"room_id" binding:"omitempty,uuid"`
	GuestName    *string `json:"guest_name" binding:"omitempty,min=1"`
	CheckInDate  *string `json:"check_in_date" binding:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date" binding:"omitempty,datetime=2006-01-02"`
	Adults       *int    `json:"adults" binding:"omitempty,min=1"`
	Children     *int    `json:"children" binding:"omitempty,min=0"`
}

type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,min=1"`
}

type ListReservationsRequest struct {
	RoomID    string `form:"room_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=confirmed checked_in checked_out cancelled no_show"`
	GuestName string `form:"guest_name"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	request.ListParams
}

type AvailabilityRequest struct {
	RoomID       string `form:"room_id" binding:"required,uuid"`
	CheckInDate  string `form:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `form:"check_out_date" binding:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Free         bool   `json:"free"`
}

type FreeRoomsRequest struct {
	CheckInDate  string `form:"check_in_date" binding:"required,datetime=2006-01-02"`
	CheckOutDate string `form:"check_out_date" binding:"required,datetime=2006-01-02"`
}

type FreeRoomResponse struct {
	RoomID        string `json:"room_id"`
	Number        string `json:"number"`
	TypeCode      string `json:"type_code"`
	TypeName      string `json:"type_name"`
	BaseRateCents int64  `json:"base_rate_cents"`
}

type ReservationResponse struct {
	ID            string           `json:"id"`
	Ref           string           `json:"ref"`
	Room          roomHttp.RoomTag `json:"room"`
	GuestName     string           `json:"guest_name"`
	CheckInDate   string           `json:"check_in_date"`
	CheckOutDate  string           `json:"check_out_date"`
	Nights        int64            `json:"nights"`
	Adults        int              `json:"adults"`
	Children      int              `json:"children"`
	Status        string           `json:"status"`
	AmountCents   int64            `json:"amount_cents"`
	PaidCents     int64            `json:"paid_cents"`
	PaymentStatus string           `json:"payment_status"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewReservationResponse(r *hotel.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		Ref:           r.Ref,
		Room:          roomHttp.RoomTag{ID: r.RoomID, Number: r.RoomNumber, Type: r.RoomTypeCode},
		GuestName:     r.GuestName,
		CheckInDate:   r.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  r.CheckOutDate.Format("2006-01-02"),
		Nights:        hotel.Nights(r.CheckInDate, r.CheckOutDate),
		Adults:        r.Adults,
		Children:      r.Children,
		Status:        string(r.Status),
		AmountCents:   r.AmountCents,
		PaidCents:     r.PaidCents,
		PaymentStatus: string(r.PaymentStatus),
		CreatedBy:     r.CreatedBy,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
