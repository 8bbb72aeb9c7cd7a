package chat

import (
	"net/http"

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
	chat := protected.Group("/chat")
	{
		chat.GET("/history/:userId", h.History)
		chat.PUT("/read/:userId", h.MarkRead)
		chat.GET("/partners", h.Partners)
		chat.GET("/unread", h.Unread)
	}
}

func (h *Handler) History(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	messages, err := h.service.History(c.Request.Context(), me.UserID, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

func (h *Handler) MarkRead(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	n, err := h.service.MarkRead(c.Request.Context(), me.UserID, c.Param("userId"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": n})
}

func (h *Handler) Partners(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	partners, err := h.service.Partners(c.Request.Context(), me.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"partners": partners})
}

func (h *Handler) Unread(c *gin.Context) {
	me := middleware.CurrentPrincipal(c)
	n, err := h.service.UnreadCount(c.Request.Context(), me.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": n})
}
