package conference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/hall"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
)

type fakeHallService struct {
	halls map[string]*hall.ConferenceHall
}

func (f *fakeHallService) GetByID(ctx context.Context, id string) (*hall.ConferenceHall, error) {
	if h, ok := f.halls[id]; ok {
		return h, nil
	}
	return nil, hall.ErrNotFound
}

func (f *fakeHallService) Create(ctx context.Context, req hall.CreateRequest) (*hall.ConferenceHall, error) {
	panic("not used")
}

func (f *fakeHallService) List(ctx context.Context, filter hall.Filter) ([]*hall.ConferenceHall, int, error) {
	panic("not used")
}

func (f *fakeHallService) Update(ctx context.Context, id string, req hall.UpdateRequest) (*hall.ConferenceHall, error) {
	panic("not used")
}

func (f *fakeHallService) AttachPhoto(ctx context.Context, id string, content io.Reader) (*hall.ConferenceHall, error) {
	panic("not used")
}

func (f *fakeHallService) GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	panic("not used")
}

func (f *fakeHallService) Seed(ctx context.Context) error { panic("not used") }

// fakeRepo reimplements the admission contract in memory: the hall must
// exist, attendees must fit and no active booking may overlap the window.
type fakeRepo struct {
	capacities map[string]int // hall id -> capacity
	bookings   map[string]*Booking
	nextID     int
	refSeq     int64
	invoiceSeq int64
}

func newFakeRepo(capacities map[string]int) *fakeRepo {
	return &fakeRepo{
		capacities: capacities,
		bookings:   map[string]*Booking{},
	}
}

func (r *fakeRepo) occupied(hallID string, start, end time.Time, excludeID string) bool {
	for id, b := range r.bookings {
		if id == excludeID {
			continue
		}
		if b.HallID == hallID && b.Status != StatusCancelled && b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) admit(hallID string, attendees int, start, end time.Time, excludeID string) error {
	capacity, ok := r.capacities[hallID]
	if !ok {
		return ErrHallNotFound
	}
	if attendees > capacity {
		return AttendeesError(capacity)
	}
	if r.occupied(hallID, start, end, excludeID) {
		return ErrHallOccupied
	}
	return nil
}

func (r *fakeRepo) CreateAdmitted(ctx context.Context, b *Booking) error {
	if err := r.admit(b.HallID, b.Attendees, b.StartsAt, b.EndsAt, ""); err != nil {
		return err
	}
	r.nextID++
	b.ID = fmt.Sprintf("cb-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAdmitted(ctx context.Context, b *Booking) error {
	if err := r.admit(b.HallID, b.Attendees, b.StartsAt, b.EndsAt, b.ID); err != nil {
		return err
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

func (r *fakeRepo) WindowFree(ctx context.Context, hallID string, start, end time.Time, excludeID string) (bool, error) {
	if _, ok := r.capacities[hallID]; !ok {
		return false, ErrHallNotFound
	}
	return !r.occupied(hallID, start, end, excludeID), nil
}

func (r *fakeRepo) NextRefSeq(ctx context.Context) (int64, error) {
	r.refSeq++
	return r.refSeq, nil
}

func (r *fakeRepo) NextInvoiceSeq(ctx context.Context) (int64, error) {
	r.invoiceSeq++
	return r.invoiceSeq, nil
}

const hallID = "33333333-3333-3333-3333-333333333333"

func newTestService(capacity int) (Service, *fakeRepo) {
	repo := newFakeRepo(map[string]int{hallID: capacity})
	halls := &fakeHallService{halls: map[string]*hall.ConferenceHall{
		hallID: {ID: hallID, Code: "HALL-A", Name: "Grand Ballroom", Capacity: capacity, HourlyRateCents: 500000, IsActive: true},
	}}
	return NewService(repo, halls, event.NopPublisher{}), repo
}

func window(dayOffset, startHour, endHour int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, dayOffset)
	start := time.Date(day.Year(), day.Month(), day.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), endHour, 0, 0, 0, time.UTC)
	return start, end
}

func TestCreateAdmitsAndPricesByHour(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Annual Meeting", StartsAt: start, EndsAt: end,
		Attendees: 120, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, int64(3*500000), b.AmountCents)
	assert.Empty(t, b.InvoiceNumber)
}

func TestCreateRoundsPartialHoursUp(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, _ := window(1, 9, 10)
	end := start.Add(90 * time.Minute)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Workshop", StartsAt: start, EndsAt: end,
		Attendees: 20, CreatedBy: "staff-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2*500000), b.AmountCents)
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	_, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "First", StartsAt: start, EndsAt: end,
		Attendees: 50, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// Exactly equal window.
	_, err = svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Clone", StartsAt: start, EndsAt: end,
		Attendees: 50, CreatedBy: "staff-2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOccupied))

	// Partial overlap.
	_, err = svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Overlapping", StartsAt: start.Add(2 * time.Hour), EndsAt: end.Add(2 * time.Hour),
		Attendees: 50, CreatedBy: "staff-2",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOccupied))
}

func TestCreateAdmitsBackToBack(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	_, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Morning", StartsAt: start, EndsAt: end,
		Attendees: 50, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// Windows are half-open: the next booking may start exactly when the
	// previous one ends.
	_, err = svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Afternoon", StartsAt: end, EndsAt: end.Add(2 * time.Hour),
		Attendees: 50, CreatedBy: "staff-1",
	})
	assert.NoError(t, err)
}

func TestCreateRejectsAttendeesOverCapacity(t *testing.T) {
	svc, _ := newTestService(100)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	_, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Too Big", StartsAt: start, EndsAt: end,
		Attendees: 101, CreatedBy: "staff-1",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "hall capacity is 100 attendees")
}

func TestApproveAssignsInvoiceExactlyOnce(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Seminar", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	b, err = svc.Approve(ctx, b.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, b.Status)
	assert.Equal(t, "INV-000001", b.InvoiceNumber)
	assert.Equal(t, "manager-1", b.ApprovedBy)
	require.NotNil(t, b.ApprovedAt)

	// Cancel, reactivate, approve again: the invoice number survives.
	_, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	_, err = svc.Reactivate(ctx, b.ID)
	require.NoError(t, err)

	b, err = svc.Approve(ctx, b.ID, "manager-2")
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", b.InvoiceNumber)
}

func TestStatusChainGuards(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Gala", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// Cannot skip steps.
	_, err = svc.Confirm(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotApproved)
	_, err = svc.Complete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)

	_, err = svc.Approve(ctx, b.ID, "manager-1")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, b.ID, "manager-1")
	assert.ErrorIs(t, err, ErrNotPending)

	_, err = svc.Confirm(ctx, b.ID)
	require.NoError(t, err)
	b2, err := svc.Complete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, b2.Status)

	err = svc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrTerminalState)
}

func TestDeleteRejectsConfirmedBooking(t *testing.T) {
	svc, repo := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Gala", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.Approve(ctx, b.ID, "manager-1")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, b.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, ErrTerminalState)

	// The booking is untouched.
	stored, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, stored.Status)

	// A cancelled booking can still be deleted.
	_, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, b.ID))
}

func TestReactivateFailsWhenWindowTaken(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Original", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Replacement", StartsAt: start, EndsAt: end,
		Attendees: 40, CreatedBy: "staff-2",
	})
	require.NoError(t, err)

	_, err = svc.Reactivate(ctx, b.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOccupied))
}

func TestUpdateExcludesOwnWindow(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Shifting", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// Extending into its own window is fine.
	newEnd := end.Add(time.Hour)
	updated, err := svc.Update(ctx, b.ID, UpdateRequest{EndsAt: &newEnd})
	require.NoError(t, err)
	assert.Equal(t, int64(4*500000), updated.AmountCents)
}

func TestRecordPaymentAndCancelRefund(t *testing.T) {
	svc, _ := newTestService(300)
	ctx := context.Background()
	start, end := window(1, 9, 12)

	b, err := svc.Create(ctx, CreateRequest{
		HallID: hallID, Title: "Paid Event", StartsAt: start, EndsAt: end,
		Attendees: 80, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	b, err = svc.RecordPayment(ctx, b.ID, b.AmountCents/2)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPartial, b.PaymentStatus)

	b, err = svc.Cancel(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusRefunded, b.PaymentStatus)
}
