package hotel

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/bookref"
	"github.com/sainamthip/resort-booking-backend/internal/room"
	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
)

type CreateRequest struct {
	RoomID       string
	GuestName    string
	CheckInDate  time.Time
	CheckOutDate time.Time
	Adults       int
	Children     int
	CreatedBy    string
}

type UpdateRequest struct {
	RoomID       *string
	GuestName    *string
	CheckInDate  *time.Time
	CheckOutDate *time.Time
	Adults       *int
	Children     *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Reservation, error)
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Reservation, error)

	// CheckIn admits the guest and marks the room occupied. The room must be
	// physically ready (not under cleaning or maintenance).
	CheckIn(ctx context.Context, id string) (*Reservation, error)

	// CheckOut releases the guest and sends the room to cleaning. It refuses
	// while the bill is unsettled, changing nothing.
	CheckOut(ctx context.Context, id string) (*Reservation, error)

	Cancel(ctx context.Context, id string) (*Reservation, error)
	MarkNoShow(ctx context.Context, id string) (*Reservation, error)
	Reactivate(ctx context.Context, id string) (*Reservation, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, amountCents int64) (*Reservation, error)

	// RoomFree reports whether no active reservation overlaps the night
	// range on the room.
	RoomFree(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error)

	// FreeRooms lists all rooms open for the night range.
	FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]FreeRoom, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	typeService roomtype.Service
	events      event.Publisher
}

func NewService(repo Repository, roomService room.Service, typeService roomtype.Service, events event.Publisher) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		typeService: typeService,
		events:      events,
	}
}

// truncateDate normalizes a timestamp to its UTC calendar date.
func truncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validateStay(checkIn, checkOut time.Time) error {
	if !checkIn.Before(checkOut) {
		return ErrBadDateRange
	}
	if checkIn.Before(truncateDate(time.Now())) {
		return ErrDatePast
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Reservation, error) {
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, ErrEmptyGuest
	}
	if req.Adults < 1 || req.Children < 0 {
		return nil, ErrBadGuests
	}

	checkIn := truncateDate(req.CheckInDate)
	checkOut := truncateDate(req.CheckOutDate)
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}

	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	rt, err := s.typeService.GetByID(ctx, rm.RoomTypeID)
	if err != nil {
		return nil, err
	}
	// Fast reject; the authoritative check happens inside the admission
	// statement.
	if req.Adults+req.Children > rt.MaxOccupancy {
		return nil, OccupancyError(rt.MaxOccupancy)
	}

	seq, err := s.repo.NextRefSeq(ctx)
	if err != nil {
		return nil, err
	}

	r := &Reservation{
		Ref:           bookref.New(RefPrefix, seq),
		RoomID:        rm.ID,
		RoomNumber:    rm.Number,
		RoomTypeCode:  rm.TypeCode,
		GuestName:     strings.TrimSpace(req.GuestName),
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		Adults:        req.Adults,
		Children:      req.Children,
		Status:        StatusConfirmed,
		AmountCents:   Nights(checkIn, checkOut) * rt.BaseRateCents,
		PaymentStatus: payment.StatusPending,
		CreatedBy:     req.CreatedBy,
	}

	if err := s.repo.CreateAdmitted(ctx, r); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "hotel", event.BookingEvent{
		Action:      event.ActionCreated,
		BookingRef:  r.Ref,
		SubjectID:   r.RoomID,
		Status:      string(r.Status),
		AmountCents: r.AmountCents,
		ActorID:     req.CreatedBy,
	})

	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Reservation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusConfirmed {
		return nil, ErrNotEditable
	}

	changed := false

	if req.RoomID != nil && *req.RoomID != r.RoomID {
		rm, err := s.roomService.GetByID(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, room.ErrNotFound) {
				return nil, ErrRoomNotFound
			}
			return nil, err
		}
		r.RoomID = rm.ID
		r.RoomNumber = rm.Number
		r.RoomTypeCode = rm.TypeCode
		changed = true
	}
	if req.GuestName != nil {
		if strings.TrimSpace(*req.GuestName) == "" {
			return nil, ErrEmptyGuest
		}
		r.GuestName = strings.TrimSpace(*req.GuestName)
	}
	if req.CheckInDate != nil {
		d := truncateDate(*req.CheckInDate)
		if !d.Equal(r.CheckInDate) {
			r.CheckInDate = d
			changed = true
		}
	}
	if req.CheckOutDate != nil {
		d := truncateDate(*req.CheckOutDate)
		if !d.Equal(r.CheckOutDate) {
			r.CheckOutDate = d
			changed = true
		}
	}
	if req.Adults != nil && *req.Adults != r.Adults {
		if *req.Adults < 1 {
			return nil, ErrBadGuests
		}
		r.Adults = *req.Adults
		changed = true
	}
	if req.Children != nil && *req.Children != r.Children {
		if *req.Children < 0 {
			return nil, ErrBadGuests
		}
		r.Children = *req.Children
		changed = true
	}

	if !changed {
		if req.GuestName != nil {
			if err := s.repo.Update(ctx, r); err != nil {
				return nil, err
			}
		}
		return r, nil
	}

	if err := validateStay(r.CheckInDate, r.CheckOutDate); err != nil {
		return nil, err
	}

	rm, err := s.roomService.GetByID(ctx, r.RoomID)
	if err != nil {
		return nil, err
	}
	rt, err := s.typeService.GetByID(ctx, rm.RoomTypeID)
	if err != nil {
		return nil, err
	}
	if r.Adults+r.Children > rt.MaxOccupancy {
		return nil, OccupancyError(rt.MaxOccupancy)
	}
	r.AmountCents = Nights(r.CheckInDate, r.CheckOutDate) * rt.BaseRateCents
	r.PaymentStatus = payment.Derive(r.AmountCents, r.PaidCents)

	// Re-admission against the new room/nights, excluding this reservation's
	// own claim on the room.
	if err := s.repo.UpdateAdmitted(ctx, r); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, r)
	return r, nil
}

func (s *service) CheckIn(ctx context.Context, id string) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	rm, err := s.roomService.GetByID(ctx, r.RoomID)
	if err != nil {
		return nil, err
	}
	if rm.Status != room.StatusAvailable {
		return nil, ErrRoomNotReady
	}

	r.Status = StatusCheckedIn
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	if _, err := s.roomService.SetStatus(ctx, r.RoomID, room.StatusOccupied); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, r)
	return r, nil
}

func (s *service) CheckOut(ctx context.Context, id string) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusCheckedIn {
		return nil, ErrNotCheckedIn
	}
	// The bill must be fully paid or refunded before departure. On refusal
	// neither the reservation nor the room moves.
	if !payment.Settled(r.PaymentStatus) {
		return nil, ErrPaymentPending
	}

	r.Status = StatusCheckedOut
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	if _, err := s.roomService.SetStatus(ctx, r.RoomID, room.StatusCleaning); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, r)
	return r, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Reservation, error) {
	return s.release(ctx, id, StatusCancelled)
}

func (s *service) MarkNoShow(ctx context.Context, id string) (*Reservation, error) {
	return s.release(ctx, id, StatusNoShow)
}

// release drops a confirmed reservation without the guest ever arriving.
func (s *service) release(ctx context.Context, id string, to Status) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}

	r.Status = to
	if r.PaidCents > 0 {
		r.PaymentStatus = payment.StatusRefunded
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	// An occupied room goes back to available only when no other active
	// reservation still covers tonight. Best effort: the release itself is
	// already committed, so failures here are logged, not returned.
	rm, err := s.roomService.GetByID(ctx, r.RoomID)
	switch {
	case err != nil:
		log.Printf("hotel: room %s lookup after releasing %s failed: %v", r.RoomID, r.Ref, err)
	case rm.Status == room.StatusOccupied:
		today := truncateDate(time.Now())
		free, err := s.repo.RangeFree(ctx, r.RoomID, today, today.AddDate(0, 0, 1), r.ID)
		if err != nil {
			log.Printf("hotel: overlap check after releasing %s failed: %v", r.Ref, err)
		} else if free {
			if _, err := s.roomService.SetStatus(ctx, r.RoomID, room.StatusAvailable); err != nil {
				return nil, err
			}
		}
	}

	s.publishStatus(ctx, r)
	return r, nil
}

func (s *service) Reactivate(ctx context.Context, id string) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusCancelled && r.Status != StatusNoShow {
		return nil, ErrNotReactivable
	}

	r.Status = StatusConfirmed
	r.PaymentStatus = payment.Derive(r.AmountCents, r.PaidCents)

	// The freed nights may have been taken since, so the reservation goes
	// back through admission and can fail with an availability error.
	if err := s.repo.UpdateAdmitted(ctx, r); err != nil {
		return nil, err
	}

	s.publishStatus(ctx, r)
	return r, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	switch r.Status {
	case StatusConfirmed, StatusCheckedOut:
		return ErrTerminalState
	case StatusCheckedIn:
		return ErrGuestInHouse
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) RecordPayment(ctx context.Context, id string, amountCents int64) (*Reservation, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == StatusCancelled || r.Status == StatusNoShow {
		return nil, ErrNotActive
	}

	newPaid, status, err := payment.Apply(r.AmountCents, r.PaidCents, amountCents)
	if err != nil {
		return nil, err
	}
	r.PaidCents = newPaid
	r.PaymentStatus = status

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.events.Publish(ctx, "hotel", event.BookingEvent{
		Action:        event.ActionPaymentRecorded,
		BookingRef:    r.Ref,
		SubjectID:     r.RoomID,
		PaymentStatus: string(r.PaymentStatus),
		AmountCents:   amountCents,
	})
	return r, nil
}

func (s *service) RoomFree(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	if _, err := s.roomService.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return false, ErrRoomNotFound
		}
		return false, err
	}
	in, out := truncateDate(checkIn), truncateDate(checkOut)
	if !in.Before(out) {
		return false, ErrBadDateRange
	}
	return s.repo.RangeFree(ctx, roomID, in, out, "")
}

func (s *service) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]FreeRoom, error) {
	in, out := truncateDate(checkIn), truncateDate(checkOut)
	if !in.Before(out) {
		return nil, ErrBadDateRange
	}
	return s.repo.FreeRooms(ctx, in, out)
}

func (s *service) publishStatus(ctx context.Context, r *Reservation) {
	s.events.Publish(ctx, "hotel", event.BookingEvent{
		Action:        event.ActionStatusChanged,
		BookingRef:    r.Ref,
		SubjectID:     r.RoomID,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
	})
}
