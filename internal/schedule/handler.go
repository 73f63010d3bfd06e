package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trainslot/internal/api"
	"trainslot/internal/auth"
	"trainslot/internal/interval"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateSlot godoc
// @Summary      Publish an availability window
// @Description  Creates a weekly availability slot for the calling trainer.
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateSlotRequest  true  "Slot details"
// @Success      201      {object}  Slot
// @Failure      400      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      503      {object}  api.ErrorResponse
// @Router       /schedules [post]
func (h *Handler) CreateSlot(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	slot, err := h.service.CreateSlot(c.Request.Context(), trainerID, req)
	if err != nil {
		api.DomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListMySlots godoc
// @Summary      List the calling trainer's availability
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  Slot
// @Router       /schedules/my [get]
func (h *Handler) ListMySlots(c *gin.Context) {
	trainerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	slots, err := h.service.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list schedules"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// ListSlots godoc
// @Summary      Browse availability
// @Description  Lists availability slots, optionally filtered by trainer, gym or weekday.
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        trainer_id   query    int     false  "Trainer ID"
// @Param        gym_id       query    int     false  "Gym ID"
// @Param        day_of_week  query    string  false  "Weekday name"
// @Success      200  {array}  Slot
// @Failure      400  {object}  api.ErrorResponse
// @Router       /schedules [get]
func (h *Handler) ListSlots(c *gin.Context) {
	var filter Filter

	if v := c.Query("trainer_id"); v != "" {
		id, ok := api.IntQuery(c, "trainer_id")
		if !ok {
			return
		}
		filter.TrainerID = id
	}
	if v := c.Query("gym_id"); v != "" {
		id, ok := api.IntQuery(c, "gym_id")
		if !ok {
			return
		}
		filter.GymID = id
	}
	if v := c.Query("day_of_week"); v != "" {
		day, err := interval.ParseWeekday(v)
		if err != nil {
			api.DomainError(c, err)
			return
		}
		filter.Day = day
	}

	slots, err := h.service.ListSlots(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list schedules"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// GetSlot godoc
// @Summary      Get an availability slot
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID  path      int  true  "Schedule ID"
// @Success      200         {object}  Slot
// @Failure      404         {object}  api.ErrorResponse
// @Router       /schedules/{scheduleID} [get]
func (h *Handler) GetSlot(c *gin.Context) {
	id, ok := api.IntParam(c, "scheduleID")
	if !ok {
		return
	}

	slot, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		api.DomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}
