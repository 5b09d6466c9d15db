package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sainamthip/resort-booking-backend/internal/hall"
	"github.com/sainamthip/resort-booking-backend/internal/pkg/response"
)

// maxPhotoBytes caps photo uploads at 10 MiB before decoding.
const maxPhotoBytes = 10 << 20

type Handler struct {
	service hall.Service
}

func NewHandler(service hall.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	activeOnly := c.DefaultQuery("active_only", "false") == "true"
	minCapacity, _ := strconv.Atoi(c.DefaultQuery("min_capacity", "0"))

	halls, total, err := h.service.List(c.Request.Context(), hall.Filter{
		ActiveOnly:  activeOnly,
		MinCapacity: minCapacity,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]HallResponse, len(halls))
	for i, v := range halls {
		items[i] = NewHallResponse(v)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, page, pageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewHallResponse(v))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateHallRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	v, err := h.service.Create(c.Request.Context(), hall.CreateRequest{
		Code:            body.Code,
		Name:            body.Name,
		Capacity:        body.Capacity,
		HourlyRateCents: body.HourlyRateCents,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewHallResponse(v))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateHallRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	v, err := h.service.Update(c.Request.Context(), id, hall.UpdateRequest{
		Name:            body.Name,
		Capacity:        body.Capacity,
		HourlyRateCents: body.HourlyRateCents,
		IsActive:        body.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewHallResponse(v))
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "photo too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
		return
	}
	defer file.Close()

	v, err := h.service.AttachPhoto(c.Request.Context(), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewHallResponse(v))
}

func (h *Handler) GetPhoto(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	photo, err := h.service.GetPhoto(c.Request.Context(), id, c.Query("size") == "thumb")
	if err != nil {
		response.Error(c, err)
		return
	}
	defer photo.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, photo)
}

func (h *Handler) Seed(c *gin.Context) {
	if err := h.service.Seed(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
