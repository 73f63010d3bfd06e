package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trainslot/internal/api"
	"trainslot/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// BookSlot godoc
// @Summary      Book an availability slot
// @Description  Reserves the full slot for the calling client.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Schedule ID"
// @Success      201         {object}  BookSlotResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      409         {object}  api.ErrorResponse
// @Failure      503         {object}  api.ErrorResponse
// @Router       /schedules/{scheduleID}/book [post]
func (h *Handler) BookSlot(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	scheduleID, ok := api.IntParam(c, "scheduleID")
	if !ok {
		return
	}

	// full-slot booking only at the HTTP surface; partial intervals are a
	// service-level extension point
	resp, err := h.service.CreateBooking(c.Request.Context(), clientID, scheduleID, nil)
	if err != nil {
		api.DomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListMyBookings godoc
// @Summary      List the calling client's bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Booking
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	bookings, err := h.service.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// CancelBooking godoc
// @Summary      Cancel a booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  CancelBookingResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	clientID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	bookingID, ok := api.IntParam(c, "bookingID")
	if !ok {
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), clientID, bookingID); err != nil {
		api.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking cancelled successfully"})
}
