package event

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
	eventService "github.com/alumnihub/portal-api/internal/service/event"
)

type Handler struct {
	service    *eventService.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service *eventService.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/registrations", h.ListRegistrations)
		events.GET("/:id", h.GetEvent)
		events.POST("/:id/register", h.RegisterForEvent)
	}
}

func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list events"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(events))
}

func (h *Handler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid event ID"))
		return
	}

	event, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("event not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get event"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(event))
}

func (h *Handler) RegisterForEvent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid event ID"))
		return
	}

	if err := h.service.Register(c.Request.Context(), userID, eventID); err != nil {
		switch {
		case errors.Is(err, eventService.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, handler.NewErrorResponse("already registered for event"))
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("event not found"))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to register"))
		}
		return
	}

	payload, err := json.Marshal(gin.H{"user_id": userID, "event_id": eventID})
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal registration for event")
	} else {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: model.EventTypeEventRegistration,
			Payload:   payload,
		}); err != nil {
			log.Warn().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(gin.H{"event_id": eventID}))
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	regs, err := h.service.ListRegistrations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list registrations"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(regs))
}
