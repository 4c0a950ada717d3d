package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/parking_booking/internal/core/services"
)

type SlotHandler struct {
	svc *services.SlotService
}

func NewSlotHandler(svc *services.SlotService) *SlotHandler {
	return &SlotHandler{svc: svc}
}

// GET /api/v1/locations/:id/slots?available=true
func (h *SlotHandler) GetSlots(c *gin.Context) {
	locationID, ok := pathID(c)
	if !ok {
		return
	}

	slots, err := h.svc.ListSlots(c.Request.Context(), locationID, c.Query("available") == "true")
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}
