package housekeeping

import (
	"net/http"

	"luxurystay/internal/domain"
	"luxurystay/internal/middleware"
	"luxurystay/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	tasks := protected.Group("/tasks")
	tasks.Use(middleware.StaffOnly())
	{
		tasks.GET("", h.List)
		tasks.POST("", h.Create)
		tasks.PUT("/:id/status", h.UpdateStatus)
		tasks.DELETE("/completed", h.ClearCompleted)
		tasks.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	tasks, err := h.service.List(c.Request.Context(), domain.TaskStatus(c.Query("status")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tasks": tasks})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.Create(c.Request.Context(), middleware.CurrentPrincipal(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"task": t})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	t, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"task": t})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) ClearCompleted(c *gin.Context) {
	n, err := h.service.ClearCompleted(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": n})
}
