package roomtype

import (
	"context"
	"fmt"
	"strings"
)

type CreateRequest struct {
	Code          string
	Name          string
	BaseRateCents int64
	MaxOccupancy  int
}

type UpdateRequest struct {
	Name          *string
	BaseRateCents *int64
	MaxOccupancy  *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*RoomType, error)
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error)

	// Seed upserts the default room type table by code. Running it twice is
	// a no-op: existing types keep their rate and occupancy untouched.
	Seed(ctx context.Context) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// defaultTypes is the room type table seeded on first run.
var defaultTypes = []CreateRequest{
	{Code: "STD", Name: "Standard", BaseRateCents: 180000, MaxOccupancy: 2},
	{Code: "DLX", Name: "Deluxe", BaseRateCents: 280000, MaxOccupancy: 3},
	{Code: "FAM", Name: "Family", BaseRateCents: 350000, MaxOccupancy: 5},
	{Code: "STE", Name: "Suite", BaseRateCents: 550000, MaxOccupancy: 4},
}

func validate(req CreateRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.MaxOccupancy <= 0 {
		return ErrBadOccupancy
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*RoomType, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	rt := &RoomType{
		Code:          strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:          strings.TrimSpace(req.Name),
		BaseRateCents: req.BaseRateCents,
		MaxOccupancy:  req.MaxOccupancy,
	}

	if err := s.repo.Create(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*RoomType, error) {
	rt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		rt.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseRateCents != nil {
		rt.BaseRateCents = *req.BaseRateCents
	}
	if req.MaxOccupancy != nil {
		if *req.MaxOccupancy <= 0 {
			return nil, ErrBadOccupancy
		}
		rt.MaxOccupancy = *req.MaxOccupancy
	}

	if err := s.repo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *service) Seed(ctx context.Context) error {
	for _, def := range defaultTypes {
		if err := validate(def); err != nil {
			return fmt.Errorf("invalid default room type %q: %w", def.Code, err)
		}
		rt := &RoomType{
			Code:          def.Code,
			Name:          def.Name,
			BaseRateCents: def.BaseRateCents,
			MaxOccupancy:  def.MaxOccupancy,
		}
		if err := s.repo.UpsertByCode(ctx, rt); err != nil {
			return fmt.Errorf("seed room type %q: %w", def.Code, err)
		}
	}
	return nil
}
