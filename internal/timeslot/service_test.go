package timeslot

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	slots  map[string]*TimeSlot // keyed by label
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slots: make(map[string]*TimeSlot)}
}

func (f *fakeRepo) Create(ctx context.Context, slot *TimeSlot) error {
	if _, ok := f.slots[slot.Label]; ok {
		return ErrDuplicate
	}
	f.nextID++
	slot.ID = fmt.Sprintf("slot-%d", f.nextID)
	f.slots[slot.Label] = slot
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	for _, s := range f.slots {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, filter Filter) ([]*TimeSlot, int, error) {
	var out []*TimeSlot
	for _, s := range f.slots {
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(ctx context.Context, slot *TimeSlot) error {
	for label, s := range f.slots {
		if s.ID == slot.ID {
			cp := *slot
			f.slots[label] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeRepo) UpsertByLabel(ctx context.Context, slot *TimeSlot) error {
	if _, ok := f.slots[slot.Label]; ok {
		return nil
	}
	return f.Create(ctx, slot)
}

func TestSeedIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx))
	assert.Len(t, repo.slots, len(defaultSlots))

	// An operator shrinks one slot after seeding.
	morning := repo.slots["06:00-08:00"]
	smaller := 20
	_, err := svc.Update(ctx, morning.ID, UpdateRequest{MaxPersons: &smaller})
	require.NoError(t, err)

	// Reseeding must not duplicate slots or restore the old capacity.
	require.NoError(t, svc.Seed(ctx))
	assert.Len(t, repo.slots, len(defaultSlots))
	assert.Equal(t, 20, repo.slots["06:00-08:00"].MaxPersons)
}

func TestCreateValidates(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRequest{Label: "  ", StartsAt: "06:00", EndsAt: "08:00", MaxPersons: 10})
	assert.ErrorIs(t, err, ErrEmptyLabel)

	_, err = svc.Create(ctx, CreateRequest{Label: "x", StartsAt: "06:00", EndsAt: "08:00", MaxPersons: 0})
	assert.ErrorIs(t, err, ErrBadCapacity)

	_, err = svc.Create(ctx, CreateRequest{Label: "x", StartsAt: "08:00", EndsAt: "06:00", MaxPersons: 10})
	assert.ErrorIs(t, err, ErrBadTimeRange)

	slot, err := svc.Create(ctx, CreateRequest{Label: " 06:00-08:00 ", StartsAt: "06:00", EndsAt: "08:00", MaxPersons: 50, PriceCents: 15000})
	require.NoError(t, err)
	assert.Equal(t, "06:00-08:00", slot.Label)
	assert.True(t, slot.IsActive)
}

func TestCreateRejectsDuplicateLabel(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	req := CreateRequest{Label: "06:00-08:00", StartsAt: "06:00", EndsAt: "08:00", MaxPersons: 50}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, ErrDuplicate)
}
