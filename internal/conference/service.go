package conference

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/hall"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/bookref"
)

type CreateRequest struct {
	HallID    string
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	Attendees int
	CreatedBy string
}

type UpdateRequest struct {
	HallID    *string
	Title     *string
	StartsAt  *time.Time
	EndsAt    *time.Time
	Attendees *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)

	// Approve moves a pending booking to approved and assigns its invoice
	// number. The number is drawn from a sequence exactly once; re-approving
	// a reactivated booking keeps the original invoice.
	Approve(ctx context.Context, id, approverID string) (*Booking, error)
	Confirm(ctx context.Context, id string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	Reactivate(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, amountCents int64) (*Booking, error)

	// HallFree reports whether a hall is unclaimed for the whole window.
	HallFree(ctx context.Context, hallID string, start, end time.Time) (bool, error)
}

type service struct {
	repo        Repository
	hallService hall.Service
	events      event.Publisher
}

func NewService(repo Repository, hallService hall.Service, events event.Publisher) Service {
	return &service{
		repo:        repo,
		hallService: hallService,
		events:      events,
	}
}

func validateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrBadTimeRange
	}
	if end.Before(time.Now()) {
		return ErrTimePast
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrEmptyTitle
	}
	if req.Attendees <= 0 {
		return nil, ErrBadAttendees
	}
	if err := validateWindow(req.StartsAt, req.EndsAt); err != nil {
		return nil, err
	}

	h, err := s.hallService.GetByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, hall.ErrNotFound) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	if !h.IsActive {
		return nil, ErrHallInactive
	}
	// Fast reject; the authoritative check happens inside the admission
	// statement.
	if req.Attendees > h.Capacity {
		return nil, AttendeesError(h.Capacity)
	}

	seq, err := s.repo.NextRefSeq(ctx)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		Ref:           bookref.New(RefPrefix, seq),
		HallID:        h.ID,
		HallCode:      h.Code,
		HallName:      h.Name,
		Title:         strings.TrimSpace(req.Title),
		StartsAt:      req.StartsAt.UTC(),
		EndsAt:        req.EndsAt.UTC(),
		Attendees:     req.Attendees,
		Status:        StatusPending,
		AmountCents:   BilledHours(req.StartsAt, req.EndsAt) * h.HourlyRateCents,
		PaymentStatus: payment.StatusPending,
		CreatedBy:     req.CreatedBy,
	}

	if err := s.repo.CreateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "conference", event.BookingEvent{
		Action:      event.ActionCreated,
		BookingRef:  b.Ref,
		SubjectID:   b.HallID,
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
	if b.Status != StatusPending && b.Status != StatusApproved {
		return nil, ErrNotEditable
	}

	changed := false

	if req.HallID != nil && *req.HallID != b.HallID {
		h, err := s.hallService.GetByID(ctx, *req.HallID)
		if err != nil {
			if errors.Is(err, hall.ErrNotFound) {
				return nil, ErrHallNotFound
			}
			return nil, err
		}
		if !h.IsActive {
			return nil, ErrHallInactive
		}
		b.HallID = h.ID
		b.HallCode = h.Code
		b.HallName = h.Name
		changed = true
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrEmptyTitle
		}
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartsAt != nil && !req.StartsAt.UTC().Equal(b.StartsAt) {
		b.StartsAt = req.StartsAt.UTC()
		changed = true
	}
	if req.EndsAt != nil && !req.EndsAt.UTC().Equal(b.EndsAt) {
		b.EndsAt = req.EndsAt.UTC()
		changed = true
	}
	if req.Attendees != nil && *req.Attendees != b.Attendees {
		if *req.Attendees <= 0 {
			return nil, ErrBadAttendees
		}
		b.Attendees = *req.Attendees
		changed = true
	}

	if !changed {
		if req.Title != nil {
			if err := s.repo.Update(ctx, b); err != nil {
				return nil, err
			}
		}
		return b, nil
	}

	if err := validateWindow(b.StartsAt, b.EndsAt); err != nil {
		return nil, err
	}

	h, err := s.hallService.GetByID(ctx, b.HallID)
	if err != nil {
		return nil, err
	}
	if b.Attendees > h.Capacity {
		return nil, AttendeesError(h.Capacity)
	}
	b.AmountCents = BilledHours(b.StartsAt, b.EndsAt) * h.HourlyRateCents
	b.PaymentStatus = payment.Derive(b.AmountCents, b.PaidCents)

	// Re-admission against the new hall/window, excluding this booking's own
	// claim on the hall.
	if err := s.repo.UpdateAdmitted(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, "")
	return b, nil
}

func (s *service) Approve(ctx context.Context, id, approverID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, ErrNotPending
	}

	b.Status = StatusApproved
	now := time.Now().UTC()
	b.ApprovedBy = approverID
	b.ApprovedAt = &now

	// The invoice number is drawn once per booking. A booking that was
	// cancelled and reactivated comes back through approval with its invoice
	// already set, and keeps it.
	if b.InvoiceNumber == "" {
		seq, err := s.repo.NextInvoiceSeq(ctx)
		if err != nil {
			return nil, err
		}
		b.InvoiceNumber = FormatInvoiceNumber(seq)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, b, approverID)
	return b, nil
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusApproved {
		return nil, ErrNotApproved
	}

	b.Status = StatusConfirmed
	if err := s.repo.Update(ctx, b); err != nil {
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
	if b.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	b.Status = StatusCompleted
	if err := s.repo.Update(ctx, b); err != nil {
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
	if b.Status == StatusCompleted || b.Status == StatusCancelled {
		return nil, ErrNotActive
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

	// Back to the start of the approval chain. The hall window may have been
	// claimed since cancellation, so the booking goes back through admission.
	b.Status = StatusPending
	b.PaymentStatus = payment.Derive(b.AmountCents, b.PaidCents)

	if err := s.repo.UpdateAdmitted(ctx, b); err != nil {
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
	if b.Status == StatusConfirmed || b.Status == StatusCompleted {
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

	s.events.Publish(ctx, "conference", event.BookingEvent{
		Action:        event.ActionPaymentRecorded,
		BookingRef:    b.Ref,
		SubjectID:     b.HallID,
		PaymentStatus: string(b.PaymentStatus),
		AmountCents:   amountCents,
	})
	return b, nil
}

func (s *service) HallFree(ctx context.Context, hallID string, start, end time.Time) (bool, error) {
	if _, err := s.hallService.GetByID(ctx, hallID); err != nil {
		if errors.Is(err, hall.ErrNotFound) {
			return false, ErrHallNotFound
		}
		return false, err
	}
	if !start.Before(end) {
		return false, ErrBadTimeRange
	}
	return s.repo.WindowFree(ctx, hallID, start.UTC(), end.UTC(), "")
}

func (s *service) publishStatus(ctx context.Context, b *Booking, actor string) {
	s.events.Publish(ctx, "conference", event.BookingEvent{
		Action:        event.ActionStatusChanged,
		BookingRef:    b.Ref,
		SubjectID:     b.HallID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		ActorID:       actor,
	})
}
