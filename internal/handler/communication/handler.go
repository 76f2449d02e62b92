package communication

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
	communicationService "github.com/alumnihub/portal-api/internal/service/communication"
)

type Handler struct {
	service    *communicationService.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service *communicationService.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	comms := r.Group("/communications")
	{
		comms.GET("", h.ListCommunications)
		comms.POST("/generate", h.Generate)
		comms.PUT("/:id/read", h.MarkRead)
		comms.PUT("/:id/unread", h.MarkUnread)
		comms.DELETE("/:id", h.Dismiss)
	}
}

// Generate runs the notification rules for the caller. The daily watermark
// makes repeat calls cheap.
func (h *Handler) Generate(c *gin.Context) {
	email := middleware.UserEmail(c)

	list, err := h.service.Generate(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to generate communications"))
		return
	}

	payload, err := json.Marshal(gin.H{"email": email, "count": len(list)})
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal generation summary for event")
	} else {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: model.EventTypeCommunicationsGenerate,
			Payload:   payload,
		}); err != nil {
			log.Warn().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) ListCommunications(c *gin.Context) {
	opts := communicationService.ListOptions{
		UnreadOnly: c.Query("unread_only") == "true",
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid limit"))
			return
		}
		opts.Limit = limit
	}

	list, err := h.service.List(c.Request.Context(), middleware.UserEmail(c), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list communications"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) MarkRead(c *gin.Context) {
	h.setRead(c, true)
}

func (h *Handler) MarkUnread(c *gin.Context) {
	h.setRead(c, false)
}

func (h *Handler) setRead(c *gin.Context, read bool) {
	list, err := h.service.MarkRead(c.Request.Context(), middleware.UserEmail(c), c.Param("id"), read)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update communication"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}

func (h *Handler) Dismiss(c *gin.Context) {
	list, err := h.service.Dismiss(c.Request.Context(), middleware.UserEmail(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to dismiss communication"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(list))
}
