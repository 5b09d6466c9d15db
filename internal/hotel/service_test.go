package hotel

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
	"github.com/sainamthip/resort-booking-backend/internal/payment"
	"github.com/sainamthip/resort-booking-backend/internal/room"
	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
)

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (f *fakeRoomService) GetByID(ctx context.Context, id string) (*room.Room, error) {
	if r, ok := f.rooms[id]; ok {
		return r, nil
	}
	return nil, room.ErrNotFound
}

func (f *fakeRoomService) SetStatus(ctx context.Context, id string, status room.Status) (*room.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	r.Status = status
	return r, nil
}

func (f *fakeRoomService) Create(ctx context.Context, req room.CreateRequest) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	panic("not used")
}

func (f *fakeRoomService) Update(ctx context.Context, id string, req room.UpdateRequest) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) AttachPhoto(ctx context.Context, id string, content io.Reader) (*room.Room, error) {
	panic("not used")
}

func (f *fakeRoomService) GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	panic("not used")
}

func (f *fakeRoomService) Seed(ctx context.Context) error { panic("not used") }

type fakeTypeService struct {
	types map[string]*roomtype.RoomType
}

func (f *fakeTypeService) GetByID(ctx context.Context, id string) (*roomtype.RoomType, error) {
	if t, ok := f.types[id]; ok {
		return t, nil
	}
	return nil, roomtype.ErrNotFound
}

func (f *fakeTypeService) Create(ctx context.Context, req roomtype.CreateRequest) (*roomtype.RoomType, error) {
	panic("not used")
}

func (f *fakeTypeService) List(ctx context.Context, filter roomtype.Filter) ([]*roomtype.RoomType, int, error) {
	panic("not used")
}

func (f *fakeTypeService) Update(ctx context.Context, id string, req roomtype.UpdateRequest) (*roomtype.RoomType, error) {
	panic("not used")
}

func (f *fakeTypeService) Seed(ctx context.Context) error { panic("not used") }

// fakeRepo reimplements the admission contract in memory: the room must
// exist, the party must fit the type's occupancy and no active reservation
// may overlap the night range.
type fakeRepo struct {
	occupancy    map[string]int // room id -> max occupancy
	reservations map[string]*Reservation
	nextID       int
	refSeq       int64
}

func newFakeRepo(occupancy map[string]int) *fakeRepo {
	return &fakeRepo{
		occupancy:    occupancy,
		reservations: map[string]*Reservation{},
	}
}

func (r *fakeRepo) taken(roomID string, checkIn, checkOut time.Time, excludeID string) bool {
	for id, res := range r.reservations {
		if id == excludeID {
			continue
		}
		if res.RoomID == roomID && res.Active() && res.Overlaps(checkIn, checkOut) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) admit(roomID string, guests int, checkIn, checkOut time.Time, excludeID string) error {
	max, ok := r.occupancy[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	if guests > max {
		return OccupancyError(max)
	}
	if r.taken(roomID, checkIn, checkOut, excludeID) {
		return ErrRoomReserved
	}
	return nil
}

func (r *fakeRepo) CreateAdmitted(ctx context.Context, res *Reservation) error {
	if err := r.admit(res.RoomID, res.Adults+res.Children, res.CheckInDate, res.CheckOutDate, ""); err != nil {
		return err
	}
	r.nextID++
	res.ID = fmt.Sprintf("hr-%d", r.nextID)
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateAdmitted(ctx context.Context, res *Reservation) error {
	if err := r.admit(res.RoomID, res.Adults+res.Children, res.CheckInDate, res.CheckOutDate, res.ID); err != nil {
		return err
	}
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, res *Reservation) error {
	if _, ok := r.reservations[res.ID]; !ok {
		return ErrNotFound
	}
	cp := *res
	r.reservations[res.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	if res, ok := r.reservations[id]; ok {
		cp := *res
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	panic("not used")
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.reservations[id]; !ok {
		return ErrNotFound
	}
	delete(r.reservations, id)
	return nil
}

func (r *fakeRepo) RangeFree(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeID string) (bool, error) {
	if _, ok := r.occupancy[roomID]; !ok {
		return false, ErrRoomNotFound
	}
	return !r.taken(roomID, checkIn, checkOut, excludeID), nil
}

func (r *fakeRepo) FreeRooms(ctx context.Context, checkIn, checkOut time.Time) ([]FreeRoom, error) {
	var free []FreeRoom
	for id := range r.occupancy {
		if !r.taken(id, checkIn, checkOut, "") {
			free = append(free, FreeRoom{RoomID: id})
		}
	}
	return free, nil
}

func (r *fakeRepo) NextRefSeq(ctx context.Context) (int64, error) {
	r.refSeq++
	return r.refSeq, nil
}

const (
	roomID = "44444444-4444-4444-4444-444444444444"
	typeID = "55555555-5555-5555-5555-555555555555"
)

func newTestService() (Service, *fakeRoomService, *fakeRepo) {
	repo := newFakeRepo(map[string]int{roomID: 3})
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		roomID: {ID: roomID, Number: "204", RoomTypeID: typeID, TypeCode: "DLX", Status: room.StatusAvailable},
	}}
	types := &fakeTypeService{types: map[string]*roomtype.RoomType{
		typeID: {ID: typeID, Code: "DLX", Name: "Deluxe", BaseRateCents: 280000, MaxOccupancy: 3},
	}}
	return NewService(repo, rooms, types, event.NopPublisher{}), rooms, repo
}

func stay(fromOffset, nights int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, fromOffset)
	checkIn := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return checkIn, checkIn.AddDate(0, 0, nights)
}

func TestCreatePricesByNight(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 3)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 2, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, r.Status)
	assert.Equal(t, int64(3*280000), r.AmountCents)
	assert.Equal(t, payment.StatusPending, r.PaymentStatus)
}

func TestCreateRejectsOverlapButAllowsSharedTurnoverDate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 3)

	_, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "First Guest", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// Overlapping nights are rejected.
	_, err = svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Second Guest", CheckInDate: in.AddDate(0, 0, 1), CheckOutDate: out.AddDate(0, 0, 2),
		Adults: 1, CreatedBy: "staff-1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	// Night ranges are half-open: a new arrival on the departure date is
	// fine.
	_, err = svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Second Guest", CheckInDate: out, CheckOutDate: out.AddDate(0, 0, 2),
		Adults: 1, CreatedBy: "staff-1",
	})
	assert.NoError(t, err)
}

func TestCreateRejectsPartyOverOccupancy(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 2)

	_, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Big Family", CheckInDate: in, CheckOutDate: out,
		Adults: 2, Children: 2, CreatedBy: "staff-1",
	})
	require.Error(t, err)
	assert.EqualError(t, err, "room sleeps at most 3 guests")
}

func TestCheckInMarksRoomOccupied(t *testing.T) {
	svc, rooms, _ := newTestService()
	ctx := context.Background()
	in, out := stay(0, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	r, err = svc.CheckIn(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, r.Status)
	assert.Equal(t, room.StatusOccupied, rooms.rooms[roomID].Status)
}

func TestCheckInRefusedWhenRoomNotReady(t *testing.T) {
	svc, rooms, _ := newTestService()
	ctx := context.Background()
	in, out := stay(0, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	rooms.rooms[roomID].Status = room.StatusMaintenance

	_, err = svc.CheckIn(ctx, r.ID)
	assert.ErrorIs(t, err, ErrRoomNotReady)
}

func TestCheckOutBlockedUntilSettled(t *testing.T) {
	svc, rooms, repo := newTestService()
	ctx := context.Background()
	in, out := stay(0, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, r.ID)
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, r.ID, r.AmountCents/2)
	require.NoError(t, err)

	// Half-paid bill blocks departure and changes nothing.
	_, err = svc.CheckOut(ctx, r.ID)
	assert.ErrorIs(t, err, ErrPaymentPending)

	stored, err := repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedIn, stored.Status)
	assert.Equal(t, room.StatusOccupied, rooms.rooms[roomID].Status)

	// Settling the rest unblocks it and sends the room to cleaning.
	_, err = svc.RecordPayment(ctx, r.ID, r.AmountCents-r.AmountCents/2)
	require.NoError(t, err)

	r, err = svc.CheckOut(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCheckedOut, r.Status)
	assert.Equal(t, room.StatusCleaning, rooms.rooms[roomID].Status)
}

func TestCancelRefundsAndLeavesRoomAlone(t *testing.T) {
	svc, rooms, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, r.ID, r.AmountCents)
	require.NoError(t, err)

	r, err = svc.Cancel(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, r.Status)
	assert.Equal(t, payment.StatusRefunded, r.PaymentStatus)
	assert.Equal(t, room.StatusAvailable, rooms.rooms[roomID].Status)
}

func TestNoShowRequiresConfirmed(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(0, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, r.ID)
	require.NoError(t, err)

	_, err = svc.MarkNoShow(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestReactivateFailsWhenNightsTaken(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 3)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Original", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, r.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Replacement", CheckInDate: in, CheckOutDate: out,
		Adults: 2, CreatedBy: "staff-2",
	})
	require.NoError(t, err)

	_, err = svc.Reactivate(ctx, r.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestFreeRoomsHonorsNightRange(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(1, 3)

	_, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	free, err := svc.FreeRooms(ctx, in, out)
	require.NoError(t, err)
	assert.Empty(t, free)

	free, err = svc.FreeRooms(ctx, out, out.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Len(t, free, 1)

	_, err = svc.FreeRooms(ctx, out, in)
	assert.ErrorIs(t, err, ErrBadDateRange)
}

func TestDeleteGuards(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	in, out := stay(0, 2)

	r, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in, CheckOutDate: out,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	// A confirmed reservation holds admitted capacity and cannot be hard
	// deleted; it has to be cancelled first.
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrTerminalState)

	_, err = svc.CheckIn(ctx, r.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrGuestInHouse)

	_, err = svc.RecordPayment(ctx, r.ID, r.AmountCents)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, r.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, r.ID), ErrTerminalState)

	// A cancelled reservation no longer holds capacity and may go.
	in2, out2 := stay(5, 2)
	r2, err := svc.Create(ctx, CreateRequest{
		RoomID: roomID, GuestName: "Ada Lovelace", CheckInDate: in2, CheckOutDate: out2,
		Adults: 1, CreatedBy: "staff-1",
	})
	require.NoError(t, err)
	_, err = svc.Cancel(ctx, r2.ID)
	require.NoError(t, err)
	assert.NoError(t, svc.Delete(ctx, r2.ID))
}
