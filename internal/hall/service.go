package hall

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/storage"
)

type CreateRequest struct {
	Code            string
	Name            string
	Capacity        int
	HourlyRateCents int64
}

type UpdateRequest struct {
	Name            *string
	Capacity        *int
	HourlyRateCents *int64
	IsActive        *bool
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*ConferenceHall, error)
	GetByID(ctx context.Context, id string) (*ConferenceHall, error)
	List(ctx context.Context, filter Filter) ([]*ConferenceHall, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*ConferenceHall, error)

	// AttachPhoto normalizes the upload, stores it together with a thumbnail
	// and records the path on the hall. A later upload replaces both.
	AttachPhoto(ctx context.Context, id string, content io.Reader) (*ConferenceHall, error)
	GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error)

	// Seed upserts the default hall table by code. Running it twice is a
	// no-op: existing halls keep their capacity and rate untouched.
	Seed(ctx context.Context) error
}

const (
	photoMaxWidth  = 1600
	photoMaxHeight = 1200
	thumbMaxWidth  = 320
	thumbMaxHeight = 240
)

func thumbPath(path string) string {
	return strings.TrimSuffix(path, ".jpg") + "_thumb.jpg"
}

type service struct {
	repo   Repository
	store  storage.Storage
	images *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:   repo,
		store:  store,
		images: images,
	}
}

// defaultHalls is the hall table seeded on first run.
var defaultHalls = []CreateRequest{
	{Code: "HALL-A", Name: "Grand Ballroom", Capacity: 300, HourlyRateCents: 500000},
	{Code: "HALL-B", Name: "Garden Pavilion", Capacity: 150, HourlyRateCents: 300000},
	{Code: "HALL-C", Name: "Boardroom", Capacity: 24, HourlyRateCents: 120000},
}

func validate(req CreateRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return ErrEmptyCode
	}
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.Capacity <= 0 {
		return ErrBadCapacity
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*ConferenceHall, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	h := &ConferenceHall{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:            strings.TrimSpace(req.Name),
		Capacity:        req.Capacity,
		HourlyRateCents: req.HourlyRateCents,
		IsActive:        true,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ConferenceHall, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*ConferenceHall, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*ConferenceHall, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		h.Name = strings.TrimSpace(*req.Name)
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrBadCapacity
		}
		h.Capacity = *req.Capacity
	}
	if req.HourlyRateCents != nil {
		h.HourlyRateCents = *req.HourlyRateCents
	}
	if req.IsActive != nil {
		h.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) AttachPhoto(ctx context.Context, id string, content io.Reader) (*ConferenceHall, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read hall photo: %w", err)
	}

	normalized, err := s.images.Normalize(bytes.NewReader(raw), photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("halls/%s.jpg", h.ID)
	if err := s.store.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("store hall photo: %w", err)
	}

	thumb, err := s.images.Thumbnail(bytes.NewReader(raw), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, thumbPath(path), thumb); err != nil {
		return nil, fmt.Errorf("store hall thumbnail: %w", err)
	}

	h.PhotoPath = path
	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	h, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h.PhotoPath == "" {
		return nil, ErrNoPhoto
	}
	if thumb {
		return s.store.Get(ctx, thumbPath(h.PhotoPath))
	}
	return s.store.Get(ctx, h.PhotoPath)
}

func (s *service) Seed(ctx context.Context) error {
	for _, def := range defaultHalls {
		if err := validate(def); err != nil {
			return fmt.Errorf("invalid default hall %q: %w", def.Code, err)
		}
		h := &ConferenceHall{
			Code:            def.Code,
			Name:            def.Name,
			Capacity:        def.Capacity,
			HourlyRateCents: def.HourlyRateCents,
			IsActive:        true,
		}
		if err := s.repo.UpsertByCode(ctx, h); err != nil {
			return fmt.Errorf("seed hall %q: %w", def.Code, err)
		}
	}
	return nil
}
