package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sainamthip/resort-booking-backend/internal/auth"
	"github.com/sainamthip/resort-booking-backend/internal/hotel"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/response"
)

type Handler struct {
	service hotel.Service
}

func NewHandler(service hotel.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := h.service.Create(c.Request.Context(), hotel.CreateRequest{
		RoomID:       body.RoomID,
		GuestName:    body.GuestName,
		CheckInDate:  parseDate(body.CheckInDate),
		CheckOutDate: parseDate(body.CheckOutDate),
		Adults:       body.Adults,
		Children:     body.Children,
		CreatedBy:    auth.GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewReservationResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) List(c *gin.Context) {
	var q ListReservationsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	filter := hotel.Filter{
		RoomID:    q.RoomID,
		Status:    q.Status,
		GuestName: q.GuestName,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortOrder: q.SortOrder,
	}
	if q.DateFrom != "" {
		d := parseDate(q.DateFrom)
		filter.DateFrom = &d
	}
	if q.DateTo != "" {
		d := parseDate(q.DateTo)
		filter.DateTo = &d
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, q.Page, q.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateReservationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := hotel.UpdateRequest{
		RoomID:    body.RoomID,
		GuestName: body.GuestName,
		Adults:    body.Adults,
		Children:  body.Children,
	}
	if body.CheckInDate != nil {
		d := parseDate(*body.CheckInDate)
		req.CheckInDate = &d
	}
	if body.CheckOutDate != nil {
		d := parseDate(*body.CheckOutDate)
		req.CheckOutDate = &d
	}

	r, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.transition(c, h.service.CheckIn)
}

func (h *Handler) CheckOut(c *gin.Context) {
	h.transition(c, h.service.CheckOut)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.transition(c, h.service.MarkNoShow)
}

func (h *Handler) Reactivate(c *gin.Context) {
	h.transition(c, h.service.Reactivate)
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id string) (*hotel.Reservation, error)) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	r, err := fn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RecordPayment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body RecordPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	r, err := h.service.RecordPayment(c.Request.Context(), id, body.AmountCents)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewReservationResponse(r))
}

func (h *Handler) Availability(c *gin.Context) {
	var q AvailabilityRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	free, err := h.service.RoomFree(c.Request.Context(), q.RoomID, parseDate(q.CheckInDate), parseDate(q.CheckOutDate))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, AvailabilityResponse{
		RoomID:       q.RoomID,
		CheckInDate:  q.CheckInDate,
		CheckOutDate: q.CheckOutDate,
		Free:         free,
	})
}

func (h *Handler) FreeRooms(c *gin.Context) {
	var q FreeRoomsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	rooms, err := h.service.FreeRooms(c.Request.Context(), parseDate(q.CheckInDate), parseDate(q.CheckOutDate))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FreeRoomResponse, len(rooms))
	for i, f := range rooms {
		items[i] = FreeRoomResponse{
			RoomID:        f.RoomID,
			Number:        f.Number,
			TypeCode:      f.TypeCode,
			TypeName:      f.TypeName,
			BaseRateCents: f.BaseRateCents,
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
