package pool

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/timeslot"
)

// fakeSlotService serves slots from a map.
type fakeSlotService struct {
	slots map[string]*timeslot.TimeSlot
}

func (f *fakeSlotService) GetByID(ctx context.Context, id string) (*timeslot.TimeSlot, error) {
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, timeslot.ErrNotFound
}

func (f *fakeSlotService) Create(ctx context.Context, req timeslot.CreateRequest) (*timeslot.TimeSlot, error) {
	panic("not used")
}

func (f *fakeSlotService) List(ctx context.Context, filter timeslot.Filter) ([]*timeslot.TimeSlot, int, error) {
	panic("not used")
}

func (f *fakeSlotService) Update(ctx context.Context, id string, req timeslot.UpdateRequest) (*timeslot.TimeSlot, error) {
	panic("not used")
}

func (f *fakeSlotService) Seed(ctx context.Context) error { panic("not used") }

// fakeRepo reimplements the admission contract in memory: aggregate active
// demand, compare against the slot's capacity, admit or reject atomically.
type fakeRepo struct {
	slots    map[string]int // slot id -> max persons
	bookings map[string]*Booking
	nextID   int
	nextSeq  int64
}

func newFakeRepo(slots map[string]int) *fakeRepo {
	return &fakeRepo{
		slots:    slots,
		bookings: map[string]*Booking{},
	}
}

func (r *fakeRepo) committed(slotID string, date time.Time, excludeID string) int {
	sum := 0
	for id, b := range r.bookings {
		if id == excludeID {
			continue
		}
		if b.SlotID == slotID && b.Date.Equal(date) && b.Status != StatusCancelled {
			sum += b.Persons
		}
	}
	return sum
}

func (r *fakeRepo) CreateAdmitted(ctx context.Context, b *Booking) error {
	max, ok := r.slots[b.SlotID]
	if !ok {
		return ErrSlotNotFound
	}
	committed := r.committed(b.SlotID, b.Date, "")
	if committed+b.Persons > max {
		return CapacityError(max - committed)
	}
	r.nextID++
	b.ID = fmt.Sprintf("pb-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAdmitted(ctx context.Context, b *Booking) error {
	max, ok := r.slots[b.SlotID]
	if !ok {
		return ErrSlotNotFound
	}
	committed := r.committed(b.SlotID, b.Date, b.ID)
	if committed+b.Persons > max {
		return CapacityError(max - committed)
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Booking, error) {
	if b, ok := r.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	panic("not used")
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) CommittedPersons(ctx context.Context, slotID string, date time.Time, excludeID string) (int, error) {
	if _, ok := r.slots[slotID]; !ok {
		return 0, ErrSlotNotFound
	}
	return r.committed(slotID, date, excludeID), nil
}

func (r *fakeRepo) NextRefSeq(ctx context.Context) (int64, error) {
	r.nextSeq++
	return r.nextSeq, nil
}

const slotID = "11111111-1111-1111-1111-111111111111"

func newTestService(maxPersons int) (Service, *fakeRepo) {
	repo := newFakeRepo(map[string]int{slotID: maxPersons})
	slots := &fakeSlotService{slots: map[string]*timeslot.TimeSlot{
		slotID: {ID: slotID, Label: "06:00-08:00", MaxPersons: maxPersons, PriceCents: 15000, IsActive: true},
	}}
	return NewService(repo, slots, event.NopPublisher{}), repo
}

func tomorrow() time.Time {
	return time.Now().UTC().AddDate(0, 0, 1)
}

func TestCreateAdmitsWithinCapacity(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 40, CreatedBy: "staff-1"})
	require.NoError(t, err)

	assert.Equal(t, StatusBooked, b.Status)
	assert.Equal(t, int64(40*15000), b.AmountCents)
	assert.Equal(t, payment.StatusPending, b.PaymentStatus)
	assert.True(t, bookrefLike(b.Ref), "unexpected ref %q", b.Ref)
}

func bookrefLike(ref string) bool {
	return len(ref) > 3 && ref[:3] == "PB-"
}

func TestCreateRejectsOverCapacityWithRemainingSpots(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()
	day := tomorrow()

	_, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 40, CreatedBy: "staff-1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 15, CreatedBy: "staff-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))
	assert.EqualError(t, err, "only 10 spots available")

	// An exact fit still goes through.
	_, err = svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 10, CreatedBy: "staff-1"})
	assert.NoError(t, err)
}

func TestCreateDisjointDatesDoNotInterfere(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 50, CreatedBy: "staff-1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow().AddDate(0, 0, 1), Persons: 50, CreatedBy: "staff-1"})
	assert.NoError(t, err)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 0})
	assert.ErrorIs(t, err, ErrInvalidPersons)

	_, err = svc.Create(ctx, CreateRequest{SlotID: slotID, Date: time.Now().AddDate(0, 0, -1), Persons: 2})
	assert.ErrorIs(t, err, ErrDatePast)

	_, err = svc.Create(ctx, CreateRequest{SlotID: "22222222-2222-2222-2222-222222222222", Date: tomorrow(), Persons: 2})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestCancelFreesCapacityAndReactivateRevalidates(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()
	day := tomorrow()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 30, CreatedBy: "staff-1"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// The freed 30 spots are taken by someone else.
	_, err = svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 45, CreatedBy: "staff-2"})
	require.NoError(t, err)

	// Reactivation must re-validate and fail: only 5 spots remain.
	_, err = svc.Reactivate(ctx, b.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))
	assert.EqualError(t, err, "only 5 spots available")
}

func TestReactivateSucceedsWhenCapacityStillFree(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 30, CreatedBy: "staff-1"})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	re, err := svc.Reactivate(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, re.Status)
}

func TestReactivateRequiresCancelled(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 5, CreatedBy: "staff-1"})
	require.NoError(t, err)

	_, err = svc.Reactivate(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotCancelled)
}

func TestUpdateExcludesOwnDemand(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()
	day := tomorrow()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 40, CreatedBy: "staff-1"})
	require.NoError(t, err)

	// Growing to 50 is fine because the booking's own 40 are excluded from
	// the committed sum.
	persons := 50
	updated, err := svc.Update(ctx, b.ID, UpdateRequest{Persons: &persons})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Persons)
	assert.Equal(t, int64(50*15000), updated.AmountCents)

	persons = 51
	_, err = svc.Update(ctx, b.ID, UpdateRequest{Persons: &persons})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacity))
}

func TestDeleteRejectsCompleted(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 5, CreatedBy: "staff-1"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, b.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestRecordPaymentDerivesStatus(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: tomorrow(), Persons: 2, CreatedBy: "staff-1"})
	require.NoError(t, err)
	total := b.AmountCents

	b, err = svc.RecordPayment(ctx, b.ID, total/2)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPartial, b.PaymentStatus)

	b, err = svc.RecordPayment(ctx, b.ID, total-total/2)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPaid, b.PaymentStatus)

	_, err = svc.RecordPayment(ctx, b.ID, 100)
	assert.ErrorIs(t, err, payment.ErrOverpayment)
}

func TestRemainingSpots(t *testing.T) {
	svc, _ := newTestService(50)
	ctx := context.Background()
	day := tomorrow()

	_, err := svc.Create(ctx, CreateRequest{SlotID: slotID, Date: day, Persons: 40, CreatedBy: "staff-1"})
	require.NoError(t, err)

	remaining, err := svc.RemainingSpots(ctx, slotID, day)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)
}
