package donation

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/model"
	"github.com/alumnihub/portal-api/internal/repository"
	communicationService "github.com/alumnihub/portal-api/internal/service/communication"
	donationService "github.com/alumnihub/portal-api/internal/service/donation"
)

type Handler struct {
	service    *donationService.Service
	commSvc    *communicationService.Service
	outboxRepo repository.OutboxRepository
}

func NewHandler(service *donationService.Service, commSvc *communicationService.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{service: service, commSvc: commSvc, outboxRepo: outboxRepo}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	donations := r.Group("/donations")
	{
		donations.GET("", h.ListDonations)
		donations.POST("", h.CreateDonation)
		donations.POST("/local", h.AddLocalDonation)
		donations.PUT("/goal", h.SetGoal)
	}
}

type createDonationRequest struct {
	Fund   string  `json:"fund" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handler) CreateDonation(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	donation, err := h.service.Create(c.Request.Context(), userID, donationService.CreateInput{
		Fund:   req.Fund,
		Amount: req.Amount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to record donation"))
		return
	}

	payload, err := json.Marshal(donation)
	if err != nil {
		log.Warn().Err(err).Msg("failed to marshal donation for event")
	} else {
		if err := h.outboxRepo.Create(c.Request.Context(), &model.OutboxEvent{
			EventType: model.EventTypeDonationRecorded,
			Payload:   payload,
		}); err != nil {
			log.Warn().Err(err).Msg("failed to create outbox event")
		}
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(donation))
}

func (h *Handler) ListDonations(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	donations, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list donations"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(donations))
}

type localDonationRequest struct {
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date"`
}

// AddLocalDonation records a manual donation entry that the donation goal
// notification rule merges with the source-of-record rows.
func (h *Handler) AddLocalDonation(c *gin.Context) {
	var req localDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry := model.LocalDonation{Amount: req.Amount, Date: req.Date}
	if err := h.commSvc.AddLocalDonation(c.Request.Context(), middleware.UserEmail(c), entry); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to add donation entry"))
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

type setGoalRequest struct {
	Goal float64 `json:"goal" binding:"required,gt=0"`
}

func (h *Handler) SetGoal(c *gin.Context) {
	var req setGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.commSvc.SetDonationGoal(c.Request.Context(), middleware.UserEmail(c), req.Goal); err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to set donation goal"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"goal": req.Goal}))
}
