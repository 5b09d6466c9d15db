package pool

import (
	"context"
	"errors"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/bookref"
	"github.com/sainamthip/resort-booking-backend/internal/timeslot"
)

type CreateRequest struct {
	SlotID    string
	Date      time.Time
	Persons   int
	CreatedBy string
}

type UpdateRequest struct {
	SlotID  *string
	Date    *time.Time
	Persons *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Reactivate(ctx context.Context, id string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, amountCents int64) (*Booking, error)

	// RemainingSpots returns how many persons a slot can still admit on a
	// date, derived live from active bookings.
	RemainingSpots(ctx context.Context, slotID string, date time.Time) (int, error)
}

type service struct {
	repo        Repository
	slotService timeslot.Service
	events      event.Publisher
}

func NewService(repo Repository, slotService timeslot.Service, events event.Publisher) Service {
	return &service{
		repo:        repo,
		slotService: slotService,
		events:      events,
	}
}

// truncateDate normalizes a timestamp to its UTC calendar date.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if req.Persons <= 0 {
		return nil, ErrInvalidPersons
	}

	date := truncateDate(req.Date)
	if date.Before(truncateDate(time.Now())) {
		return nil, ErrDatePast
	}

	slot, err := s.slotService.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, timeslot.ErrNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if !slot.IsActive {
		return nil, ErrSlotInactive
	}
	// Fast reject when the party alone exceeds the slot. The authoritative
	// check happens inside the admission statement.
	if req.Persons > slot.MaxPersons {
		return nil, CapacityError(0)
	}

	seq, err := s.repo.NextRefSeq(ctx)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		Ref:           bookref.New(RefPrefix, seq),
		SlotID:        slot.ID,
		SlotLabel:     slot.Label,
		Date:          date,
		Persons:       req.Persons,
		Status:        StatusBooked,
		AmountCents:   int64(req.Persons) * slot.PriceCents,
		PaymentStatus: payment.StatusPending,
		CreatedBy:     req.CreatedBy,
	}

	if err := s.repo.CreateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "pool", event.BookingEvent{
		Action:      event.ActionCreated,
		BookingRef:  b.Ref,
		SubjectID:   b.SlotID,
		Status:      string(b.Status),
		AmountCents: b.AmountCents,
		ActorID:     req.CreatedBy,
	})

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusBooked {
		return nil, ErrNotActive
	}

	changed := false

	if req.SlotID != nil && *req.SlotID != b.SlotID {
		slot, err := s.slotService.GetByID(ctx, *req.SlotID)
		if err != nil {
			if errors.Is(err, timeslot.ErrNotFound) {
				return nil, ErrSlotNotFound
			}
			return nil, err
		}
		if !slot.IsActive {
			return nil, ErrSlotInactive
		}
		b.SlotID = slot.ID
		b.SlotLabel = slot.Label
		changed = true
	}
	if req.Date != nil {
		date := truncateDate(*req.Date)
		if date.Before(truncateDate(time.Now())) {
			return nil, ErrDatePast
		}
		if !date.Equal(b.Date) {
			b.Date = date
			changed = true
		}
	}
	if req.Persons != nil && *req.Persons != b.Persons {
		if *req.Persons <= 0 {
			return nil, ErrInvalidPersons
		}
		b.Persons = *req.Persons
		changed = true
	}

	if !changed {
		return b, nil
	}

	// Price follows the (possibly new) slot and party size.
	slot, err := s.slotService.GetByID(ctx, b.SlotID)
	if err != nil {
		return nil, err
	}
	b.AmountCents = int64(b.Persons) * slot.PriceCents
	b.PaymentStatus = payment.Derive(b.AmountCents, b.PaidCents)

	// Re-admission against the new slot/date/party, excluding this booking's
	// own committed demand.
	if err := s.repo.UpdateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, "")
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusBooked {
		return nil, ErrAlreadyTerminal
	}

	b.Status = StatusCancelled
	if b.PaidCents > 0 {
		b.PaymentStatus = payment.StatusRefunded
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, "")
	return b, nil
}

func (s *service) Reactivate(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusCancelled {
		return nil, ErrNotCancelled
	}

	b.Status = StatusBooked
	b.PaymentStatus = payment.Derive(b.AmountCents, b.PaidCents)

	// The freed capacity may have been taken since cancellation, so the
	// booking goes back through admission and can fail with a capacity error.
	if err := s.repo.UpdateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, "")
	return b, nil
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusBooked {
		return nil, ErrNotActive
	}

	b.Status = StatusCompleted
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, "")
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == StatusCompleted {
		return ErrTerminalState
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) RecordPayment(ctx context.Context, id string, amountCents int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == StatusCancelled {
		return nil, ErrNotActive
	}

	newPaid, status, err := payment.Apply(b.AmountCents, b.PaidCents, amountCents)
	if err != nil {
		return nil, err
	}
	b.PaidCents = newPaid
	b.PaymentStatus = status

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "pool", event.BookingEvent{
		Action:        event.ActionPaymentRecorded,
		BookingRef:    b.Ref,
		SubjectID:     b.SlotID,
		PaymentStatus: string(b.PaymentStatus),
		AmountCents:   amountCents,
	})
	return b, nil
}

func (s *service) RemainingSpots(ctx context.Context, slotID string, date time.Time) (int, error) {
	slot, err := s.slotService.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, timeslot.ErrNotFound) {
			return 0, ErrSlotNotFound
		}
		return 0, err
	}

	committed, err := s.repo.CommittedPersons(ctx, slotID, truncateDate(date), "")
	if err != nil {
		return 0, err
	}

	remaining := slot.MaxPersons - committed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

func (s *service) publishStatus(ctx context.Context, b *Booking, actor string) {
	s.events.Publish(ctx, "pool", event.BookingEvent{
		Action:        event.ActionStatusChanged,
		BookingRef:    b.Ref,
		SubjectID:     b.SlotID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		ActorID:       actor,
	})
}
