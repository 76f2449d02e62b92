package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	dashboardService "github.com/alumnihub/portal-api/internal/service/dashboard"
)

type Handler struct {
	service *dashboardService.Service
}

func NewHandler(service *dashboardService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.GetStats)
}

func (h *Handler) GetStats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	stats, err := h.service.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to compute dashboard stats"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
