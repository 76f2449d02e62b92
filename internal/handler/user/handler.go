package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alumnihub/portal-api/internal/handler"
	"github.com/alumnihub/portal-api/internal/middleware"
	"github.com/alumnihub/portal-api/internal/repository"
	userService "github.com/alumnihub/portal-api/internal/service/user"
)

type Handler struct {
	service *userService.Service
}

func NewHandler(service *userService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	profile := r.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, handler.NewErrorResponse("user not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to load profile"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

type updateProfileRequest struct {
	FullName    *string `json:"full_name"`
	GradYear    *string `json:"grad_year" binding:"omitempty"`
	CareerField *string `json:"career_field"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("unauthorized"))
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	user, err := h.service.Update(c.Request.Context(), userID, userService.UpdateInput{
		FullName:    req.FullName,
		GradYear:    req.GradYear,
		CareerField: req.CareerField,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to update profile"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}
