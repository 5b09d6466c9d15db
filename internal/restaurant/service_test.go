package restaurant

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sainamthip/resort-booking-backend/internal/event"
	"github.com/sainamthip/resort-booking-backend/internal/payment"
)

type fakeRepo struct {
	sales  map[string]*Sale
	nextID int
	refSeq int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{sales: map[string]*Sale{}}
}

func (r *fakeRepo) Create(ctx context.Context, s *Sale) error {
	r.nextID++
	s.ID = fmt.Sprintf("rs-%d", r.nextID)
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	if s, ok := r.sales[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Sale, int, error) {
	panic("not used")
}

func (r *fakeRepo) Update(ctx context.Context, s *Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return ErrNotFound
	}
	cp := *s
	r.sales[s.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sales[id]; !ok {
		return ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

func (r *fakeRepo) NextRefSeq(ctx context.Context) (int64, error) {
	r.refSeq++
	return r.refSeq, nil
}

func newTestService() Service {
	return NewService(newFakeRepo(), event.NopPublisher{})
}

func TestCreateOpensSale(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateRequest{
		TableNumber: "12", Covers: 4, AmountCents: 85000, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusOpen, s.Status)
	assert.Equal(t, payment.StatusPending, s.PaymentStatus)
	// Sale date defaults to today when omitted.
	assert.False(t, s.SaleDate.IsZero())
}

func TestSettleRequiresFullPayment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateRequest{
		TableNumber: "12", Covers: 4, AmountCents: 85000, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.Settle(ctx, s.ID)
	assert.ErrorIs(t, err, ErrUnpaidBill)

	_, err = svc.RecordPayment(ctx, s.ID, 40000)
	require.NoError(t, err)
	_, err = svc.Settle(ctx, s.ID)
	assert.ErrorIs(t, err, ErrUnpaidBill)

	_, err = svc.RecordPayment(ctx, s.ID, 45000)
	require.NoError(t, err)
	s, err = svc.Settle(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSettled, s.Status)

	// A settled sale takes no further payments or settling.
	_, err = svc.RecordPayment(ctx, s.ID, 1)
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = svc.Settle(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestCancelAndReactivate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateRequest{
		TableNumber: "3", Covers: 2, AmountCents: 30000, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, s.ID, 10000)
	require.NoError(t, err)

	s, err = svc.Cancel(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, s.Status)
	assert.Equal(t, payment.StatusRefunded, s.PaymentStatus)

	s, err = svc.Reactivate(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, s.Status)
	assert.Equal(t, payment.StatusPartial, s.PaymentStatus)
}

func TestUpdateCannotDropBelowPaid(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateRequest{
		TableNumber: "7", Covers: 2, AmountCents: 50000, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, s.ID, 30000)
	require.NoError(t, err)

	lower := int64(20000)
	_, err = svc.Update(ctx, s.ID, UpdateRequest{AmountCents: &lower})
	assert.ErrorIs(t, err, payment.ErrOverpayment)

	// Raising the bill re-derives the payment status.
	higher := int64(60000)
	s, err = svc.Update(ctx, s.ID, UpdateRequest{AmountCents: &higher})
	require.NoError(t, err)
	assert.Equal(t, payment.StatusPartial, s.PaymentStatus)
}

func TestDeleteGuardsSettled(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateRequest{
		TableNumber: "5", Covers: 2, AmountCents: 20000, CreatedBy: "staff-1",
	})
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, s.ID, 20000)
	require.NoError(t, err)
	_, err = svc.Settle(ctx, s.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, s.ID), ErrTerminalState)
}
