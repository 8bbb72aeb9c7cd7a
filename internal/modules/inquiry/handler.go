package inquiry

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

// RegisterPublicRoutes exposes the contact form.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/inquiries", h.Create)
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	inquiries := protected.Group("/inquiries")
	inquiries.Use(middleware.StaffOnly())
	{
		inquiries.GET("", h.List)
		inquiries.PUT("/:id/status", h.UpdateStatus)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"inquiry": in})
}

func (h *Handler) List(c *gin.Context) {
	list, err := h.service.List(c.Request.Context(), domain.InquiryStatus(c.Query("status")))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"inquiries": list})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	in, err := h.service.UpdateStatus(c.Request.Context(), middleware.CurrentPrincipal(c), c.Param("id"), req.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"inquiry": in})
}
