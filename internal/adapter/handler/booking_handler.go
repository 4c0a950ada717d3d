package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/services"
)

type BookingHandler struct {
	svc *services.BookingService
}

func NewBookingHandler(svc *services.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "id", "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "", "invalid json body")
		return
	}

	resp, err := h.svc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// PUT /api/v1/bookings/:id
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req services.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "", "invalid json body")
		return
	}

	booking, err := h.svc.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// POST /api/v1/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.svc.CancelBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// POST /api/v1/bookings/:id/confirm (Admin)
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.svc.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// DELETE /api/v1/bookings/:id (Admin)
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// POST /api/v1/bookings/:id/archive
func (h *BookingHandler) ArchiveBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.ArchiveBooking(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GET /api/v1/bookings (Admin)
func (h *BookingHandler) GetAllBookings(c *gin.Context) {
	bookings, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GET /api/v1/bookings/mine
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	bookings, err := h.svc.GetMine(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GET /api/v1/bookings/unpaid (Admin)
func (h *BookingHandler) GetUnpaidBookings(c *gin.Context) {
	bookings, err := h.svc.GetUnpaid(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GET /api/v1/histories?booking_id=...
func (h *BookingHandler) GetHistories(c *gin.Context) {
	var bookingID *uuid.UUID
	if raw := c.Query("booking_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(c, "booking_id", "invalid booking id")
			return
		}
		bookingID = &id
	}

	rows, err := h.svc.GetHistories(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// GET /api/v1/histories/:id
func (h *BookingHandler) GetHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "id", "invalid history id")
		return
	}

	row, err := h.svc.GetHistoryByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}
