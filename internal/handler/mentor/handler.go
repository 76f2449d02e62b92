package mentor

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
	mentorService "github.com/alumnihub/portal-api/internal/service/mentor"
)

type Handler struct {
	service    *mentorService.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service *mentorService.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	mentors := r.Group("/mentors")
	{
		mentors.GET("", h.ListMentors)
		mentors.GET("/requests", h.ListRequests)
		mentors.POST("/requests", h.CreateRequest)
		mentors.GET("/offers", h.ListOffers)
		mentors.POST("/offers", h.RegisterOffer)
		mentors.GET("/:id", h.GetMentor)
	}
}

func (h *Handler) ListMentors(c *gin.Context) {
	mentors, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list mentors"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(mentors))
}

func (h *Handler) GetMentor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid mentor ID"))
		return
	}

	mentor, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("mentor not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to get mentor"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(mentor))
}

type createRequestRequest struct {
	MentorID    string `json:"mentor_id" binding:"required,uuid"`
	CareerField string `json:"career_field"`
	GradYear    string `json:"grad_year" binding:"omitempty,gradyear"`
}

func (h *Handler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	mentorID, _ := uuid.Parse(req.MentorID)

	created, err := h.service.CreateRequest(c.Request.Context(), userID, mentorService.RequestInput{
		MentorID:    mentorID,
		CareerField: req.CareerField,
		GradYear:    req.GradYear,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("mentor not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create mentor request"))
		return
	}

	h.publishEvent(c, model.EventTypeMentorRequestCreated, created)

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) ListRequests(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	reqs, err := h.service.ListRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list mentor requests"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(reqs))
}

type registerOfferRequest struct {
	Name      string `json:"name" binding:"required"`
	FocusArea string `json:"focus_area"`
}

func (h *Handler) RegisterOffer(c *gin.Context) {
	var req registerOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	offer := model.MentorOffer{
		Name:      req.Name,
		FocusArea: req.FocusArea,
		Email:     middleware.UserEmail(c),
	}
	if err := h.service.RegisterOffer(c.Request.Context(), offer); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to register mentor offer"))
		return
	}

	h.publishEvent(c, model.EventTypeMentorOfferPublished, offer)

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(offer))
}

func (h *Handler) ListOffers(c *gin.Context) {
	offers, err := h.service.ListOffers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list mentor offers"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(offers))
}

func (h *Handler) publishEvent(c *gin.Context, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to marshal outbox payload")
		return
	}
	if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
		EventType: eventType,
		Payload:   payload,
	}); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}
