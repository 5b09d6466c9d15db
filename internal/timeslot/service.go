package timeslot

import (
	"context"
	"fmt"
	"strings"
)

type CreateRequest struct {
	Label      string
	StartsAt   string
	EndsAt     string
	MaxPersons int
	PriceCents int64
}

type UpdateRequest struct {
	MaxPersons *int
	PriceCents *int64
	IsActive   *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*TimeSlot, error)
	GetByID(ctx context.Context, id string) (*TimeSlot, error)
	List(ctx context.Context, filter Filter) ([]*TimeSlot, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*TimeSlot, error)

	// Seed upserts the default slot table by label. Running it twice is a
	// no-op: existing slots keep their capacity and price untouched.
	Seed(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// defaultSlots is the slot table seeded on first run.
var defaultSlots = []CreateRequest{
	{Label: "06:00-08:00", StartsAt: "06:00", EndsAt: "08:00", MaxPersons: 50, PriceCents: 15000},
	{Label: "08:00-10:00", StartsAt: "08:00", EndsAt: "10:00", MaxPersons: 50, PriceCents: 15000},
	{Label: "10:00-12:00", StartsAt: "10:00", EndsAt: "12:00", MaxPersons: 50, PriceCents: 20000},
	{Label: "14:00-16:00", StartsAt: "14:00", EndsAt: "16:00", MaxPersons: 50, PriceCents: 20000},
	{Label: "16:00-18:00", StartsAt: "16:00", EndsAt: "18:00", MaxPersons: 50, PriceCents: 20000},
	{Label: "18:00-20:00", StartsAt: "18:00", EndsAt: "20:00", MaxPersons: 40, PriceCents: 25000},
}

func validate(req CreateRequest) error {
	if strings.TrimSpace(req.Label) == "" {
		return ErrEmptyLabel
	}
	if req.MaxPersons <= 0 {
		return ErrBadCapacity
	}
	if req.StartsAt >= req.EndsAt {
		return ErrBadTimeRange
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*TimeSlot, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	slot := &TimeSlot{
		Label:      strings.TrimSpace(req.Label),
		StartsAt:   req.StartsAt,
		EndsAt:     req.EndsAt,
		MaxPersons: req.MaxPersons,
		PriceCents: req.PriceCents,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*TimeSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*TimeSlot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*TimeSlot, error) {
	slot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.MaxPersons != nil {
		if *req.MaxPersons <= 0 {
			return nil, ErrBadCapacity
		}
		slot.MaxPersons = *req.MaxPersons
	}
	if req.PriceCents != nil {
		slot.PriceCents = *req.PriceCents
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) Seed(ctx context.Context) error {
	for _, def := range defaultSlots {
		if err := validate(def); err != nil {
			return fmt.Errorf("invalid default slot %q: %w", def.Label, err)
		}
		slot := &TimeSlot{
			Label:      def.Label,
			StartsAt:   def.StartsAt,
			EndsAt:     def.EndsAt,
			MaxPersons: def.MaxPersons,
			PriceCents: def.PriceCents,
			IsActive:   true,
		}
		if err := s.repo.UpsertByLabel(ctx, slot); err != nil {
			return fmt.Errorf("seed slot %q: %w", def.Label, err)
		}
	}
	return nil
}
