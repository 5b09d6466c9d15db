package http

import (
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/request"
	"github.com/sainamthip/resort-booking-backend/internal/restaurant"
)

type CreateSaleRequest struct {
	TableNumber string `json:"table_number" binding:"required"`
	Covers      int    `json:"covers" binding:"required,min=1"`
	SaleDate    string `json:"sale_date" binding:"omitempty,datetime=2006-01-02"`
	AmountCents int64  `json:"amount_cents" binding:"required,min=1"`
}

type UpdateSaleRequest struct {
	TableNumber *string `json:"table_number" binding:"omitempty,min=1"`
	Covers      *int    `json:"covers" binding:"omitempty,min=1"`
	AmountCents *int64  `json:"amount_cents" binding:"omitempty,min=1"`
}

type RecordPaymentRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,min=1"`
}

type ListSalesRequest struct {
	Status    string `form:"status" binding:"omitempty,oneof=open settled cancelled"`
	DateFrom  string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo    string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	request.ListParams
}

type SaleResponse struct {
	ID            string    `json:"id"`
	Ref           string    `json:"ref"`
	TableNumber   string    `json:"table_number"`
	Covers        int       `json:"covers"`
	SaleDate      string    `json:"sale_date"`
	Status        string    `json:"status"`
	AmountCents   int64     `json:"amount_cents"`
	PaidCents     int64     `json:"paid_cents"`
	PaymentStatus string    `json:"payment_status"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewSaleResponse(s *restaurant.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		Ref:           s.Ref,
		TableNumber:   s.TableNumber,
		Covers:        s.Covers,
		SaleDate:      s.SaleDate.Format("2006-01-02"),
		Status:        string(s.Status),
		AmountCents:   s.AmountCents,
		PaidCents:     s.PaidCents,
		PaymentStatus: string(s.PaymentStatus),
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func parseDate(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}
