package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/services"
)

type billingRequest struct {
	BookingID uuid.UUID   `json:"booking_id"`
	Amount    json.Number `json:"amount"`
}

type BillingHandler struct {
	svc      *services.BillingService
	currency string
}

func NewBillingHandler(svc *services.BillingService, currency string) *BillingHandler {
	return &BillingHandler{svc: svc, currency: currency}
}

func (h *BillingHandler) bind(c *gin.Context) (uuid.UUID, domain.Money, bool) {
	var req billingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "", "invalid json body")
		return uuid.Nil, domain.Money{}, false
	}

	amount, err := domain.ParseMoney(req.Amount.String(), h.currency)
	if err != nil {
		badRequest(c, "amount", err.Error())
		return uuid.Nil, domain.Money{}, false
	}

	return req.BookingID, amount, true
}

// POST /api/v1/billings (Admin)
func (h *BillingHandler) CreateBilling(c *gin.Context) {
	bookingID, amount, ok := h.bind(c)
	if !ok {
		return
	}

	billing, err := h.svc.CreateBilling(c.Request.Context(), services.CreateBillingRequest{BookingID: bookingID, Amount: amount})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, billing)
}

// PUT /api/v1/billings/:id (Admin)
func (h *BillingHandler) UpdateBilling(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	bookingID, amount, ok := h.bind(c)
	if !ok {
		return
	}

	billing, err := h.svc.UpdateBilling(c.Request.Context(), id, services.UpdateBillingRequest{BookingID: bookingID, Amount: amount})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, billing)
}

// DELETE /api/v1/billings/:id (Admin)
func (h *BillingHandler) DeleteBilling(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBilling(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GET /api/v1/billings (Admin)
func (h *BillingHandler) GetAllBillings(c *gin.Context) {
	views, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GET /api/v1/billings/mine
func (h *BillingHandler) GetMyBillings(c *gin.Context) {
	views, err := h.svc.GetMine(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// GET /api/v1/billings/:id
func (h *BillingHandler) GetBilling(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
