package feedback

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
	feedbackService "github.com/alumnihub/portal-api/internal/service/feedback"
)

type Handler struct {
	service    *feedbackService.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service *feedbackService.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	feedback := r.Group("/feedback")
	{
		feedback.GET("", h.ListFeedback)
		feedback.POST("", h.SubmitFeedback)
	}
}

type submitRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	fb, err := h.service.Submit(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to submit feedback"))
		return
	}

	payload, err := json.Marshal(fb)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal feedback for event")
	} else {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: model.EventTypeFeedbackSubmitted,
			Payload:   payload,
		}); err != nil {
			log.Warn().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(fb))
}

func (h *Handler) ListFeedback(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	items, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list feedback"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}
