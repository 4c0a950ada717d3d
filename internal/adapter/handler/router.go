package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/adapter/identity"
	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type Handlers struct {
	Bookings *BookingHandler
	Billings *BillingHandler
	Slots    *SlotHandler
}

func NewRouter(h Handlers, tokens *identity.Tokens, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(Recovery(logger), RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	adminOnly := RequireRole(domain.RoleAdmin)

	api := router.Group("/api/v1", Authenticate(tokens))
	{
		bookings := api.Group("/bookings")
		bookings.POST("", h.Bookings.CreateBooking)
		bookings.GET("", adminOnly, h.Bookings.GetAllBookings)
		bookings.GET("/mine", h.Bookings.GetMyBookings)
		bookings.GET("/unpaid", adminOnly, h.Bookings.GetUnpaidBookings)
		bookings.GET("/:id", h.Bookings.GetBooking)
		bookings.PUT("/:id", h.Bookings.UpdateBooking)
		bookings.DELETE("/:id", adminOnly, h.Bookings.DeleteBooking)
		bookings.POST("/:id/cancel", h.Bookings.CancelBooking)
		bookings.POST("/:id/confirm", adminOnly, h.Bookings.ConfirmBooking)
		bookings.POST("/:id/archive", h.Bookings.ArchiveBooking)

		histories := api.Group("/histories")
		histories.GET("", h.Bookings.GetHistories)
		histories.GET("/:id", h.Bookings.GetHistory)

		billings := api.Group("/billings")
		billings.POST("", adminOnly, h.Billings.CreateBilling)
		billings.GET("", adminOnly, h.Billings.GetAllBillings)
		billings.GET("/mine", h.Billings.GetMyBillings)
		billings.GET("/:id", h.Billings.GetBilling)
		billings.PUT("/:id", adminOnly, h.Billings.UpdateBilling)
		billings.DELETE("/:id", adminOnly, h.Billings.DeleteBilling)

		api.GET("/locations/:id/slots", h.Slots.GetSlots)
	}

	return router
}
