package restaurant

import (
	"context"
	"strings"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/bookref"
)

type CreateRequest struct {
	TableNumber string
	Covers      int
	SaleDate    time.Time
	AmountCents int64
	CreatedBy   string
}

type UpdateRequest struct {
	TableNumber *string
	Covers      *int
	AmountCents *int64
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Sale, error)
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context, filter Filter) ([]*Sale, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Sale, error)

	// Settle closes a fully paid bill.
	Settle(ctx context.Context, id string) (*Sale, error)
	Cancel(ctx context.Context, id string) (*Sale, error)
	Reactivate(ctx context.Context, id string) (*Sale, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, amountCents int64) (*Sale, error)
}

type service struct {
	repo   Repository
	events event.Publisher
}

func NewService(repo Repository, events event.Publisher) Service {
	return &service{
		repo:   repo,
		events: events,
	}
}

// truncateDate normalizes a timestamp to its UTC calendar date.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Sale, error) {
	if strings.TrimSpace(req.TableNumber) == "" {
		return nil, ErrEmptyTable
	}
	if req.Covers <= 0 {
		return nil, ErrBadCovers
	}
	if req.AmountCents <= 0 {
		return nil, ErrBadAmount
	}

	saleDate := truncateDate(req.SaleDate)
	if req.SaleDate.IsZero() {
		saleDate = truncateDate(time.Now())
	}

	seq, err := s.repo.NextRefSeq(ctx)
	if err != nil {
		return nil, err
	}

	sale := &Sale{
		Ref:           bookref.New(RefPrefix, seq),
		TableNumber:   strings.TrimSpace(req.TableNumber),
		Covers:        req.Covers,
		SaleDate:      saleDate,
		Status:        StatusOpen,
		AmountCents:   req.AmountCents,
		PaymentStatus: payment.StatusPending,
		CreatedBy:     req.CreatedBy,
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "restaurant", event.BookingEvent{
		Action:      event.ActionCreated,
		BookingRef:  sale.Ref,
		Status:      string(sale.Status),
		AmountCents: sale.AmountCents,
		ActorID:     req.CreatedBy,
	})

	return sale, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Sale, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Sale, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != StatusOpen {
		return nil, ErrNotOpen
	}

	if req.TableNumber != nil {
		if strings.TrimSpace(*req.TableNumber) == "" {
			return nil, ErrEmptyTable
		}
		sale.TableNumber = strings.TrimSpace(*req.TableNumber)
	}
	if req.Covers != nil {
		if *req.Covers <= 0 {
			return nil, ErrBadCovers
		}
		sale.Covers = *req.Covers
	}
	if req.AmountCents != nil {
		if *req.AmountCents <= 0 {
			return nil, ErrBadAmount
		}
		if *req.AmountCents < sale.PaidCents {
			return nil, payment.ErrOverpayment
		}
		sale.AmountCents = *req.AmountCents
		sale.PaymentStatus = payment.Derive(sale.AmountCents, sale.PaidCents)
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Settle(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != StatusOpen {
		return nil, ErrNotOpen
	}
	if sale.PaymentStatus != payment.StatusPaid {
		return nil, ErrUnpaidBill
	}

	sale.Status = StatusSettled
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, sale)
	return sale, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != StatusOpen {
		return nil, ErrNotOpen
	}

	sale.Status = StatusCancelled
	if sale.PaidCents > 0 {
		sale.PaymentStatus = payment.StatusRefunded
	}

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, sale)
	return sale, nil
}

func (s *service) Reactivate(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != StatusCancelled {
		return nil, ErrNotCancelled
	}

	// No capacity resource behind a sale, so reactivation always succeeds.
	sale.Status = StatusOpen
	sale.PaymentStatus = payment.Derive(sale.AmountCents, sale.PaidCents)

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, sale)
	return sale, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale.Status == StatusSettled {
		return ErrTerminalState
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) RecordPayment(ctx context.Context, id string, amountCents int64) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.Status != StatusOpen {
		return nil, ErrNotOpen
	}

	newPaid, status, err := payment.Apply(sale.AmountCents, sale.PaidCents, amountCents)
	if err != nil {
		return nil, err
	}
	sale.PaidCents = newPaid
	sale.PaymentStatus = status

	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "restaurant", event.BookingEvent{
		Action:        event.ActionPaymentRecorded,
		BookingRef:    sale.Ref,
		PaymentStatus: string(sale.PaymentStatus),
		AmountCents:   amountCents,
	})
	return sale, nil
}

func (s *service) publishStatus(ctx context.Context, sale *Sale) {
	s.events.Publish(ctx, "restaurant", event.BookingEvent{
		Action:        event.ActionStatusChanged,
		BookingRef:    sale.Ref,
		Status:        string(sale.Status),
		PaymentStatus: string(sale.PaymentStatus),
	})
}
