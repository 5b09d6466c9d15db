package room

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sainamthip/resort-booking-backend/internal/pkg/storage"
	"github.com/sainamthip/resort-booking-backend/internal/roomtype"
)

type CreateRequest struct {
	Number     string
	RoomTypeID string
	Floor      int
}

type UpdateRequest struct {
	RoomTypeID *string
	Floor      *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)

	// SetStatus moves the room through its housekeeping states. The hotel
	// reservation flow drives this on check-in and check-out; housekeeping
	// drives cleaning and maintenance by hand.
	SetStatus(ctx context.Context, id string, status Status) (*Room, error)

	// AttachPhoto normalizes the upload, stores it together with a thumbnail
	// and records the path on the room. A later upload replaces both.
	AttachPhoto(ctx context.Context, id string, content io.Reader) (*Room, error)
	GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error)

	// Seed creates the default room inventory against the seeded room
	// types. Running it twice is a no-op.
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
	repo        Repository
	typeService roomtype.Service
	store       storage.Storage
	images      *storage.ImageProcessor
}

func NewService(repo Repository, typeService roomtype.Service, store storage.Storage, images *storage.ImageProcessor) Service {
	return &service{
		repo:        repo,
		typeService: typeService,
		store:       store,
		images:      images,
	}
}

// defaultRooms maps seeded room numbers to room type codes. The floor is the
// number's leading digit.
var defaultRooms = map[string]string{
	"101": "STD", "102": "STD", "103": "STD", "104": "DLX",
	"201": "STD", "202": "DLX", "203": "DLX", "204": "FAM",
	"301": "FAM", "302": "STE",
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.Number) == "" {
		return nil, ErrEmptyNumber
	}

	rt, err := s.typeService.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return nil, err
	}

	r := &Room{
		Number:     strings.TrimSpace(req.Number),
		RoomTypeID: rt.ID,
		TypeCode:   rt.Code,
		TypeName:   rt.Name,
		Floor:      req.Floor,
		Status:     StatusAvailable,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomTypeID != nil && *req.RoomTypeID != r.RoomTypeID {
		rt, err := s.typeService.GetByID(ctx, *req.RoomTypeID)
		if err != nil {
			return nil, err
		}
		r.RoomTypeID = rt.ID
		r.TypeCode = rt.Code
		r.TypeName = rt.Name
	}
	if req.Floor != nil {
		r.Floor = *req.Floor
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Room, error) {
	if !ValidStatus(status) {
		return nil, ErrBadStatus
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.Status = status
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) AttachPhoto(ctx context.Context, id string, content io.Reader) (*Room, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read room photo: %w", err)
	}

	normalized, err := s.images.Normalize(bytes.NewReader(raw), photoMaxWidth, photoMaxHeight)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("rooms/%s.jpg", r.ID)
	if err := s.store.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("store room photo: %w", err)
	}

	thumb, err := s.images.Thumbnail(bytes.NewReader(raw), thumbMaxWidth, thumbMaxHeight)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, thumbPath(path), thumb); err != nil {
		return nil, fmt.Errorf("store room thumbnail: %w", err)
	}

	r.PhotoPath = path
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetPhoto(ctx context.Context, id string, thumb bool) (io.ReadCloser, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.PhotoPath == "" {
		return nil, ErrNoPhoto
	}
	if thumb {
		return s.store.Get(ctx, thumbPath(r.PhotoPath))
	}
	return s.store.Get(ctx, r.PhotoPath)
}

func (s *service) Seed(ctx context.Context) error {
	// Resolve seeded type codes to ids; the room type seed must have run
	// first.
	types, _, err := s.typeService.List(ctx, roomtype.Filter{PageSize: 100})
	if err != nil {
		return fmt.Errorf("list room types for seeding: %w", err)
	}
	byCode := make(map[string]*roomtype.RoomType, len(types))
	for _, rt := range types {
		byCode[rt.Code] = rt
	}

	for number, code := range defaultRooms {
		rt, ok := byCode[code]
		if !ok {
			return fmt.Errorf("seed room %q: room type %q not seeded", number, code)
		}
		r := &Room{
			Number:     number,
			RoomTypeID: rt.ID,
			TypeCode:   rt.Code,
			TypeName:   rt.Name,
			Floor:      int(number[0] - '0'),
			Status:     StatusAvailable,
		}
		if err := s.repo.UpsertByNumber(ctx, r); err != nil {
			return fmt.Errorf("seed room %q: %w", number, err)
		}
	}
	return nil
}
